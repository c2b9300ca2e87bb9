package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/ahipix/artifact"
	miniostore "github.com/hupe1980/ahipix/artifact/minio"
	s3store "github.com/hupe1980/ahipix/artifact/s3"
	"github.com/hupe1980/ahipix/imaging"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// storeFromURL builds the remote artifact store for an upload destination.
//
//	s3://bucket/prefix              Amazon S3
//	s3+http://host/bucket/prefix    S3-compatible endpoint, plaintext
//	s3+https://host/bucket/prefix   S3-compatible endpoint, TLS
func storeFromURL(ctx context.Context, raw, region string) (artifact.Store, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse upload URL: %w", err)
	}

	switch u.Scheme {
	case "s3":
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(imaging.ResolveRegion(region)))
		if err != nil {
			return nil, err
		}
		prefix := strings.TrimPrefix(u.Path, "/")
		return s3store.NewStore(awss3.NewFromConfig(cfg), u.Host, prefix), nil

	case "s3+http", "s3+https":
		bucket, prefix, ok := splitBucketPath(u.Path)
		if !ok {
			return nil, fmt.Errorf("upload URL %q is missing a bucket", raw)
		}
		client, err := newMinioClient(u)
		if err != nil {
			return nil, err
		}
		return miniostore.NewStore(client, bucket, prefix), nil

	default:
		return nil, fmt.Errorf("unsupported upload URL scheme %q", u.Scheme)
	}
}

func splitBucketPath(path string) (bucket, prefix string, ok bool) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(path, "/")
	return bucket, prefix, true
}

func newMinioClient(u *url.URL) (*minio.Client, error) {
	accessKeyID := os.Getenv("AWS_ACCESS_KEY_ID")
	if accessKeyID == "" {
		return nil, fmt.Errorf("AWS_ACCESS_KEY_ID not set")
	}
	secretAccessKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if secretAccessKey == "" {
		return nil, fmt.Errorf("AWS_SECRET_ACCESS_KEY not set")
	}

	return minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: u.Scheme == "s3+https",
	})
}
