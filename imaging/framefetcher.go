package imaging

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/medicalimaging"
	"github.com/aws/aws-sdk-go-v2/service/medicalimaging/types"
	"golang.org/x/time/rate"
)

// FrameFetcher retrieves per-frame pixel payloads.
type FrameFetcher struct {
	api     API
	limiter *rate.Limiter
}

// FrameFetcherOption configures a FrameFetcher.
type FrameFetcherOption func(*FrameFetcher)

// WithRateLimit caps frame fetches at rps requests per second. Fetching
// stays strictly sequential; the limiter only spaces out the calls.
// rps <= 0 disables the limiter.
func WithRateLimit(rps float64) FrameFetcherOption {
	return func(f *FrameFetcher) {
		if rps > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewFrameFetcher creates a FrameFetcher on top of an injected client.
func NewFrameFetcher(api API, opts ...FrameFetcherOption) *FrameFetcher {
	f := &FrameFetcher{api: api}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchFrame issues one GetImageFrame call and returns the raw encoded
// payload. The bytes are opaque to this module: no pixel format decoding or
// validation happens here. Remote failures surface as *RemoteError.
func (f *FrameFetcher) FetchFrame(ctx context.Context, datastoreID, imageSetID, frameID string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	out, err := f.api.GetImageFrame(ctx, &medicalimaging.GetImageFrameInput{
		DatastoreId: aws.String(datastoreID),
		ImageSetId:  aws.String(imageSetID),
		ImageFrameInformation: &types.ImageFrameInformation{
			ImageFrameId: aws.String(frameID),
		},
	})
	if err != nil {
		return nil, remoteError("GetImageFrame", err)
	}
	defer func() { _ = out.ImageFrameBlob.Close() }()

	data, err := io.ReadAll(out.ImageFrameBlob)
	if err != nil {
		return nil, remoteError("GetImageFrame", err)
	}
	return data, nil
}
