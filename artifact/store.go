package artifact

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when an artifact does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store persists the named artifacts of a pipeline step.
type Store interface {
	// Put writes an artifact atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error

	// Open opens an artifact for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// List returns the names of all artifacts under the prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Copy copies every artifact under src into dst, one by one. Used to mirror
// a completed run's output directory to remote storage.
func Copy(ctx context.Context, dst, src Store) error {
	names, err := src.List(ctx, "")
	if err != nil {
		return err
	}
	for _, name := range names {
		r, err := src.Open(ctx, name)
		if err != nil {
			return err
		}
		data, err := io.ReadAll(r)
		_ = r.Close()
		if err != nil {
			return err
		}
		if err := dst.Put(ctx, name, data); err != nil {
			return err
		}
	}
	return nil
}
