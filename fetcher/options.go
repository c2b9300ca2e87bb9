package fetcher

import (
	"log/slog"

	"github.com/hupe1980/ahipix/codec"
)

type options struct {
	codec     codec.Codec
	logger    *slog.Logger
	maxFrames int
	extension string
	rateLimit float64
}

// Option configures a Fetcher.
type Option func(*options)

// WithCodec configures the codec used for the manifest artifact.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures the run's logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxFrames truncates enumeration to the first n frames in document
// order. n == 0 (the default) fetches all frames. Truncation is a policy
// knob, not an error: the dropped tail is discarded silently.
func WithMaxFrames(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxFrames = n
		}
	}
}

// WithExtension overrides the payload filename extension.
// Defaults to "htj2k", the frame encoding HealthImaging serves.
func WithExtension(ext string) Option {
	return func(o *options) {
		if ext != "" {
			o.extension = ext
		}
	}
}

// WithRateLimit caps frame fetches at rps requests per second.
// rps <= 0 (the default) disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(o *options) {
		o.rateLimit = rps
	}
}
