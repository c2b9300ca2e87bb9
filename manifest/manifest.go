// Package manifest defines the JSON summary of a fetch run.
//
// The manifest is the contract between the fetch step and everything
// downstream: one entry per attempted frame, in processing order, each
// either a success record (filename + size) or an error record.
package manifest

import (
	"github.com/hupe1980/ahipix/codec"
	"github.com/hupe1980/ahipix/imaging"
)

const (
	// FileName is the well-known manifest filename inside the output
	// directory.
	FileName = "manifest.json"

	// MetadataFileName is the well-known filename of the verbatim image set
	// metadata document inside the output directory.
	MetadataFileName = "metadata.json"
)

// FrameResult is the outcome of fetching and persisting one frame.
// Exactly one of (Filename, Size) or Error is populated.
type FrameResult struct {
	FrameID    string `json:"frameId"`
	SeriesID   string `json:"seriesId"`
	InstanceID string `json:"instanceId"`
	Filename   string `json:"filename,omitempty"`
	Size       int64  `json:"size,omitempty"`
	Error      string `json:"error,omitempty"`
}

// OK reports whether the frame was fetched and persisted.
func (r FrameResult) OK() bool { return r.Error == "" }

// Success builds the result record for a persisted frame.
func Success(d imaging.FrameDescriptor, filename string, size int64) FrameResult {
	return FrameResult{
		FrameID:    d.FrameID,
		SeriesID:   d.SeriesID,
		InstanceID: d.InstanceID,
		Filename:   filename,
		Size:       size,
	}
}

// Failure builds the result record for a frame whose fetch or write failed.
func Failure(d imaging.FrameDescriptor, err error) FrameResult {
	return FrameResult{
		FrameID:    d.FrameID,
		SeriesID:   d.SeriesID,
		InstanceID: d.InstanceID,
		Error:      err.Error(),
	}
}

// Manifest summarizes one fetch run.
type Manifest struct {
	DatastoreID string        `json:"datastoreId"`
	ImageSetID  string        `json:"imageSetId"`
	TotalFrames int           `json:"totalFrames"`
	Frames      []FrameResult `json:"frames"`
}

// New creates a manifest for a run over total enumerated frames.
func New(datastoreID, imageSetID string, total int) *Manifest {
	return &Manifest{
		DatastoreID: datastoreID,
		ImageSetID:  imageSetID,
		TotalFrames: total,
		Frames:      make([]FrameResult, 0, total),
	}
}

// Append records the outcome of one frame, in processing order.
func (m *Manifest) Append(r FrameResult) {
	m.Frames = append(m.Frames, r)
}

// Failed returns the number of error records.
func (m *Manifest) Failed() int {
	n := 0
	for _, r := range m.Frames {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Encode serializes the manifest with the given codec (codec.Default when
// nil).
func (m *Manifest) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(m)
}

// Decode parses a manifest previously written by Encode.
func Decode(data []byte, c codec.Codec) (*Manifest, error) {
	if c == nil {
		c = codec.Default
	}
	var m Manifest
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
