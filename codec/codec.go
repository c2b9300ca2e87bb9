// Package codec centralizes artifact encoding.
//
// The manifest and model artifacts written by one pipeline step are read
// back by later steps, so codec selection is a compatibility boundary: every
// step of a pipeline must agree on it.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "json-indent":
		return JSONIndent{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

// Default is the codec used for on-disk artifacts. Indented JSON keeps
// manifest.json and metadata.json readable during debugging; the cost is
// irrelevant at one write per run.
var Default Codec = JSONIndent{}
