package manifest

import (
	"errors"
	"testing"

	"github.com/hupe1980/ahipix/codec"
	"github.com/hupe1980/ahipix/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var desc = imaging.FrameDescriptor{FrameID: "f1", SeriesID: "s1", InstanceID: "i1"}

func TestFrameResult(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := Success(desc, "s1_i1_f1.htj2k", 1024)
		assert.True(t, r.OK())
		assert.Equal(t, "s1_i1_f1.htj2k", r.Filename)
		assert.Equal(t, int64(1024), r.Size)
		assert.Empty(t, r.Error)
	})

	t.Run("failure", func(t *testing.T) {
		r := Failure(desc, errors.New("boom"))
		assert.False(t, r.OK())
		assert.Equal(t, "boom", r.Error)
		assert.Empty(t, r.Filename)
		assert.Zero(t, r.Size)
	})
}

func TestManifest_RoundTrip(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.JSONIndent{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			m := New("ds-1", "is-1", 2)
			m.Append(Success(desc, "s1_i1_f1.htj2k", 10))
			m.Append(Failure(imaging.FrameDescriptor{FrameID: "f2", SeriesID: "s1", InstanceID: "i1"}, errors.New("throttled")))

			data, err := m.Encode(c)
			require.NoError(t, err)

			got, err := Decode(data, c)
			require.NoError(t, err)
			assert.Equal(t, m, got)
			assert.Equal(t, got.TotalFrames, len(got.Frames))
			assert.Equal(t, 1, got.Failed())
		})
	}
}

func TestManifest_JSONFieldNames(t *testing.T) {
	m := New("ds-1", "is-1", 1)
	m.Append(Success(desc, "s1_i1_f1.htj2k", 10))

	data, err := m.Encode(codec.JSON{})
	require.NoError(t, err)

	s := string(data)
	for _, field := range []string{
		`"datastoreId"`, `"imageSetId"`, `"totalFrames"`, `"frames"`,
		`"frameId"`, `"seriesId"`, `"instanceId"`, `"filename"`, `"size"`,
	} {
		assert.Contains(t, s, field)
	}
	// Success entries carry no error field.
	assert.NotContains(t, s, `"error"`)
}
