// Package fetcher orchestrates one fetch run: resolve the image set
// metadata, persist it verbatim, enumerate the frames, fetch and persist
// each frame sequentially, and write the manifest.
//
// Failure handling has exactly two tiers. Setup errors (metadata resolution,
// output store writes for metadata/manifest) abort the run. Per-frame errors
// are recorded in the manifest and never abort the batch; that conversion is
// the only failure-isolation boundary in the system.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/ahipix/artifact"
	"github.com/hupe1980/ahipix/codec"
	"github.com/hupe1980/ahipix/imaging"
	"github.com/hupe1980/ahipix/manifest"
)

// ErrMissingIdentifier is returned when the datastore or image set ID is
// empty.
var ErrMissingIdentifier = errors.New("datastore and image set identifiers must not be empty")

const defaultExtension = "htj2k"

// Fetcher runs the fetch/manifest procedure against one output store.
type Fetcher struct {
	resolver *imaging.Resolver
	frames   *imaging.FrameFetcher
	store    artifact.Store
	codec    codec.Codec
	logger   *slog.Logger

	maxFrames int
	extension string
}

// New creates a Fetcher. api is the HealthImaging client (constructed once,
// with the transport retry policy baked in); store receives every artifact
// the run produces.
func New(api imaging.API, store artifact.Store, opts ...Option) *Fetcher {
	o := options{
		codec:     codec.Default,
		logger:    slog.Default(),
		extension: defaultExtension,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Fetcher{
		resolver:  imaging.NewResolver(api),
		frames:    imaging.NewFrameFetcher(api, imaging.WithRateLimit(o.rateLimit)),
		store:     store,
		codec:     o.codec,
		logger:    o.logger,
		maxFrames: o.maxFrames,
		extension: o.extension,
	}
}

// Run executes one fetch run and returns its manifest.
//
// The returned manifest holds one entry per enumerated frame, in enumeration
// order. Per-frame failures are recorded, not returned; a non-nil error
// means the run aborted during setup and nothing beyond already-written
// artifacts exists in the store.
func (f *Fetcher) Run(ctx context.Context, datastoreID, imageSetID string) (*manifest.Manifest, error) {
	if datastoreID == "" || imageSetID == "" {
		return nil, ErrMissingIdentifier
	}

	f.logger.Info("starting fetch", "datastoreID", datastoreID, "imageSetID", imageSetID)

	meta, err := f.resolver.Resolve(ctx, datastoreID, imageSetID)
	if err != nil {
		return nil, err
	}

	if err := f.store.Put(ctx, manifest.MetadataFileName, meta.Raw); err != nil {
		return nil, fmt.Errorf("persist metadata: %w", err)
	}

	descs := imaging.Enumerate(meta, f.maxFrames)
	f.logger.Info("enumerated frames", "count", len(descs), "maxFrames", f.maxFrames)

	m := manifest.New(datastoreID, imageSetID, len(descs))
	for i, d := range descs {
		f.logger.Debug("fetching frame", "index", i+1, "total", len(descs), "frameID", d.FrameID)

		res := f.fetchOne(ctx, datastoreID, imageSetID, d)
		if !res.OK() {
			f.logger.Error("frame failed", "frameID", d.FrameID, "error", res.Error)
		}
		m.Append(res)
	}

	data, err := m.Encode(f.codec)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := f.store.Put(ctx, manifest.FileName, data); err != nil {
		return nil, fmt.Errorf("persist manifest: %w", err)
	}

	f.logger.Info("fetch complete", "frames", len(m.Frames), "failed", m.Failed())
	return m, nil
}

// fetchOne fetches and persists a single frame. Any failure is folded into
// the returned result instead of propagating.
func (f *Fetcher) fetchOne(ctx context.Context, datastoreID, imageSetID string, d imaging.FrameDescriptor) manifest.FrameResult {
	data, err := f.frames.FetchFrame(ctx, datastoreID, imageSetID, d.FrameID)
	if err != nil {
		return manifest.Failure(d, err)
	}

	filename := fmt.Sprintf("%s_%s_%s.%s", d.SeriesID, d.InstanceID, d.FrameID, f.extension)
	if err := f.store.Put(ctx, filename, data); err != nil {
		return manifest.Failure(d, err)
	}

	return manifest.Success(d, filename, int64(len(data)))
}
