package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/medicalimaging"
	"github.com/hupe1980/ahipix/artifact"
	"github.com/hupe1980/ahipix/imaging"
	"github.com/hupe1980/ahipix/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `{
  "DatastoreID": "ds-1",
  "ImageSetID": "is-1",
  "Study": {
    "Series": {
      "s1": {
        "Instances": {
          "i1": {"ImageFrames": [{"ID": "f1"}, {"ID": "f2"}]},
          "i2": {"ImageFrames": [{"ID": "f3"}]}
        }
      }
    }
  }
}`

// fakeAPI is an in-memory HealthImaging service.
type fakeAPI struct {
	metadata    []byte
	metadataErr error
	frames      map[string][]byte
	frameErr    map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		metadata: []byte(testDoc),
		frames: map[string][]byte{
			"f1": {0x01},
			"f2": {0x02, 0x02},
			"f3": {0x03, 0x03, 0x03},
		},
		frameErr: map[string]error{},
	}
}

func (f *fakeAPI) GetImageSetMetadata(_ context.Context, _ *medicalimaging.GetImageSetMetadataInput, _ ...func(*medicalimaging.Options)) (*medicalimaging.GetImageSetMetadataOutput, error) {
	if f.metadataErr != nil {
		return nil, f.metadataErr
	}
	return &medicalimaging.GetImageSetMetadataOutput{
		ImageSetMetadataBlob: io.NopCloser(bytes.NewReader(f.metadata)),
	}, nil
}

func (f *fakeAPI) GetImageFrame(_ context.Context, params *medicalimaging.GetImageFrameInput, _ ...func(*medicalimaging.Options)) (*medicalimaging.GetImageFrameOutput, error) {
	id := aws.ToString(params.ImageFrameInformation.ImageFrameId)
	if err := f.frameErr[id]; err != nil {
		return nil, err
	}
	data, ok := f.frames[id]
	if !ok {
		return nil, fmt.Errorf("unknown frame %s", id)
	}
	return &medicalimaging.GetImageFrameOutput{
		ImageFrameBlob: io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func TestFetcher_Run(t *testing.T) {
	ctx := context.Background()
	store := artifact.NewMemoryStore()

	m, err := New(newFakeAPI(), store).Run(ctx, "ds-1", "is-1")
	require.NoError(t, err)

	assert.Equal(t, "ds-1", m.DatastoreID)
	assert.Equal(t, "is-1", m.ImageSetID)
	assert.Equal(t, 3, m.TotalFrames)
	require.Len(t, m.Frames, 3)
	assert.Equal(t, 0, m.Failed())

	// One result per descriptor, in enumeration order.
	assert.Equal(t, "f1", m.Frames[0].FrameID)
	assert.Equal(t, "f2", m.Frames[1].FrameID)
	assert.Equal(t, "f3", m.Frames[2].FrameID)
	assert.Equal(t, "s1_i1_f1.htj2k", m.Frames[0].Filename)
	assert.Equal(t, int64(2), m.Frames[1].Size)

	// The metadata document is persisted verbatim.
	raw, ok := store.Get(manifest.MetadataFileName)
	require.True(t, ok)
	assert.Equal(t, []byte(testDoc), raw)

	// One payload artifact per successful frame.
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"manifest.json", "metadata.json",
		"s1_i1_f1.htj2k", "s1_i1_f2.htj2k", "s1_i2_f3.htj2k",
	}, names)
}

func TestFetcher_Run_FrameFailureDoesNotHaltBatch(t *testing.T) {
	ctx := context.Background()
	store := artifact.NewMemoryStore()

	api := newFakeAPI()
	api.frameErr["f2"] = errors.New("throttled")

	m, err := New(api, store).Run(ctx, "ds-1", "is-1")
	require.NoError(t, err)

	require.Len(t, m.Frames, 3)
	assert.True(t, m.Frames[0].OK())
	assert.False(t, m.Frames[1].OK())
	assert.True(t, m.Frames[2].OK())
	assert.Contains(t, m.Frames[1].Error, "throttled")
	assert.Empty(t, m.Frames[1].Filename)
	assert.Equal(t, 1, m.Failed())

	// No payload artifact for the failed frame.
	_, ok := store.Get("s1_i1_f2.htj2k")
	assert.False(t, ok)
	_, ok = store.Get("s1_i2_f3.htj2k")
	assert.True(t, ok)
}

func TestFetcher_Run_MaxFrames(t *testing.T) {
	tests := []struct {
		name      string
		maxFrames int
		want      int
	}{
		{name: "unlimited", maxFrames: 0, want: 3},
		{name: "head of enumeration order", maxFrames: 2, want: 2},
		{name: "beyond total", maxFrames: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := artifact.NewMemoryStore()
			f := New(newFakeAPI(), store, WithMaxFrames(tt.maxFrames))

			m, err := f.Run(context.Background(), "ds-1", "is-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.TotalFrames)
			assert.Len(t, m.Frames, tt.want)
			assert.Equal(t, "f1", m.Frames[0].FrameID)
		})
	}
}

func TestFetcher_Run_ResolveFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := artifact.NewMemoryStore()

	api := newFakeAPI()
	api.metadataErr = errors.New("access denied")

	_, err := New(api, store).Run(ctx, "ds-1", "is-1")
	require.Error(t, err)

	var re *imaging.RemoteError
	assert.ErrorAs(t, err, &re)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFetcher_Run_MissingIdentifiers(t *testing.T) {
	f := New(newFakeAPI(), artifact.NewMemoryStore())

	_, err := f.Run(context.Background(), "", "is-1")
	assert.ErrorIs(t, err, ErrMissingIdentifier)

	_, err = f.Run(context.Background(), "ds-1", "")
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestFetcher_Run_ManifestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := artifact.NewMemoryStore()

	_, err := New(newFakeAPI(), store).Run(ctx, "ds-1", "is-1")
	require.NoError(t, err)

	data, ok := store.Get(manifest.FileName)
	require.True(t, ok)

	m, err := manifest.Decode(data, nil)
	require.NoError(t, err)
	assert.Equal(t, m.TotalFrames, len(m.Frames))
	for _, r := range m.Frames {
		if r.OK() {
			assert.NotEmpty(t, r.Filename)
			assert.Positive(t, r.Size)
		} else {
			assert.NotEmpty(t, r.Error)
			assert.Empty(t, r.Filename)
		}
	}
}
