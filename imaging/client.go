package imaging

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/medicalimaging"
)

// API is the subset of the HealthImaging data plane consumed by this module.
type API interface {
	GetImageSetMetadata(ctx context.Context, params *medicalimaging.GetImageSetMetadataInput, optFns ...func(*medicalimaging.Options)) (*medicalimaging.GetImageSetMetadataOutput, error)
	GetImageFrame(ctx context.Context, params *medicalimaging.GetImageFrameInput, optFns ...func(*medicalimaging.Options)) (*medicalimaging.GetImageFrameOutput, error)
}

const (
	defaultRegion = "us-east-1"

	maxAttempts           = 3
	dialTimeout           = 30 * time.Second
	responseHeaderTimeout = 60 * time.Second
)

// ResolveRegion returns the effective region: the explicit value if set,
// otherwise AWS_REGION from the environment, otherwise us-east-1.
func ResolveRegion(region string) string {
	if region != "" {
		return region
	}
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	return defaultRegion
}

// NewClient builds a HealthImaging client with the module's transport policy:
// adaptive retry mode with at most 3 attempts, 30s dial timeout and 60s
// response header timeout. The policy is fixed at construction; nothing above
// this layer retries.
func NewClient(ctx context.Context, region string) (*medicalimaging.Client, error) {
	httpClient := awshttp.NewBuildableClient().
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = dialTimeout
		}).
		WithTransportOptions(func(tr *http.Transport) {
			tr.ResponseHeaderTimeout = responseHeaderTimeout
		})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(ResolveRegion(region)),
		config.WithHTTPClient(httpClient),
		config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewAdaptiveMode(), maxAttempts)
		}),
	)
	if err != nil {
		return nil, err
	}

	return medicalimaging.NewFromConfig(cfg), nil
}
