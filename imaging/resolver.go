package imaging

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/medicalimaging"
	"github.com/klauspost/compress/gzip"
)

// Resolver retrieves and decodes image set metadata documents.
type Resolver struct {
	api API
}

// NewResolver creates a Resolver on top of an injected HealthImaging client.
func NewResolver(api API) *Resolver {
	return &Resolver{api: api}
}

// Resolve issues one GetImageSetMetadata call, decompresses the returned
// blob and decodes it into the typed metadata tree.
//
// Remote failures surface as *RemoteError, undecodable documents as
// *DecodeError. Both are fatal to a run; the transport's retry policy is the
// only retry layer.
func (r *Resolver) Resolve(ctx context.Context, datastoreID, imageSetID string) (*ImageSetMetadata, error) {
	out, err := r.api.GetImageSetMetadata(ctx, &medicalimaging.GetImageSetMetadataInput{
		DatastoreId: aws.String(datastoreID),
		ImageSetId:  aws.String(imageSetID),
	})
	if err != nil {
		return nil, remoteError("GetImageSetMetadata", err)
	}
	defer func() { _ = out.ImageSetMetadataBlob.Close() }()

	blob, err := io.ReadAll(out.ImageSetMetadataBlob)
	if err != nil {
		return nil, remoteError("GetImageSetMetadata", err)
	}

	doc, err := gunzip(blob)
	if err != nil {
		return nil, &DecodeError{Stage: "gunzip", cause: err}
	}

	return DecodeImageSetMetadata(doc)
}

var gzipMagic = []byte{0x1f, 0x8b}

// gunzip decompresses a gzip payload; payloads without the gzip magic are
// returned as-is. The service documents the metadata blob as gzip but the
// sniff keeps already-decompressed documents (e.g. test fixtures) working.
func gunzip(blob []byte) ([]byte, error) {
	if !bytes.HasPrefix(blob, gzipMagic) {
		return blob, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()
	return io.ReadAll(zr)
}
