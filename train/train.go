// Package train is the placeholder training step of the pipeline.
//
// It deliberately trains nothing: it inspects the fetch step's output
// (file counts, total bytes, the manifest's frame count), simulates the
// requested epochs in the log, and records a model info artifact so the
// pipeline has a stage-two output to wire up. Swap this package's Run for
// real training logic.
package train

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/ahipix/artifact"
	"github.com/hupe1980/ahipix/codec"
	"github.com/hupe1980/ahipix/manifest"
)

// ModelInfoFileName is the artifact recorded in the model store.
const ModelInfoFileName = "model_info.json"

// ModelInfo is the placeholder model artifact.
type ModelInfo struct {
	ModelType   string `json:"modelType"`
	Epochs      int    `json:"epochs"`
	InputFiles  int    `json:"inputFiles"`
	InputBytes  int64  `json:"inputBytes"`
	TotalFrames int    `json:"totalFrames,omitempty"`
	ImageSetID  string `json:"imageSetId,omitempty"`
	Status      string `json:"status"`
}

// Trainer inspects fetched data and records a placeholder model artifact.
type Trainer struct {
	data   artifact.Store
	model  artifact.Store
	codec  codec.Codec
	logger *slog.Logger
}

// New creates a Trainer reading from data and writing to model.
func New(data, model artifact.Store, c codec.Codec, logger *slog.Logger) *Trainer {
	if c == nil {
		c = codec.Default
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer{data: data, model: model, codec: c, logger: logger}
}

// Run inspects the input artifacts, "trains" for the given epochs, and
// writes the model info artifact. Returns the recorded info.
func (t *Trainer) Run(ctx context.Context, epochs int) (*ModelInfo, error) {
	if epochs < 1 {
		epochs = 1
	}

	names, err := t.data.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list input artifacts: %w", err)
	}

	info := &ModelInfo{
		ModelType: "placeholder",
		Epochs:    epochs,
		Status:    "placeholder - replace with real model",
	}

	for _, name := range names {
		size, err := t.size(ctx, name)
		if err != nil {
			return nil, err
		}
		info.InputFiles++
		info.InputBytes += size
	}
	t.logger.Info("inspected training input", "files", info.InputFiles, "bytes", info.InputBytes)

	if m, err := t.loadManifest(ctx); err == nil {
		info.TotalFrames = m.TotalFrames
		info.ImageSetID = m.ImageSetID
		t.logger.Info("manifest found", "totalFrames", m.TotalFrames, "imageSetID", m.ImageSetID)
	} else if !errors.Is(err, artifact.ErrNotFound) {
		return nil, err
	}

	for epoch := 1; epoch <= epochs; epoch++ {
		t.logger.Info("epoch complete", "epoch", epoch, "of", epochs)
	}

	data, err := t.codec.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode model info: %w", err)
	}
	if err := t.model.Put(ctx, ModelInfoFileName, data); err != nil {
		return nil, fmt.Errorf("persist model info: %w", err)
	}

	return info, nil
}

func (t *Trainer) size(ctx context.Context, name string) (int64, error) {
	r, err := t.data.Open(ctx, name)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Close() }()
	return io.Copy(io.Discard, r)
}

func (t *Trainer) loadManifest(ctx context.Context) (*manifest.Manifest, error) {
	r, err := t.data.Open(ctx, manifest.FileName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return manifest.Decode(data, t.codec)
}
