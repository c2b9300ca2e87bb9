package imaging

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ImageSetMetadata is the decoded image set metadata document.
// Immutable once decoded; a run holds exactly one for its whole lifetime.
type ImageSetMetadata struct {
	SchemaVersion string
	DatastoreID   string
	ImageSetID    string
	Study         Study

	// Raw is the verbatim decompressed document, kept so the run can persist
	// the metadata exactly as the service returned it.
	Raw []byte
}

// Study groups the series of one imaging study in document order.
type Study struct {
	Series []Series
}

// Series is one series of a study with its instances in document order.
type Series struct {
	ID        string
	Instances []Instance
}

// Instance is one instance of a series with its frame references in
// document order.
type Instance struct {
	ID          string
	ImageFrames []ImageFrame
}

// ImageFrame is a reference to one fetchable pixel data frame.
type ImageFrame struct {
	ID string `json:"ID"`
}

// DecodeImageSetMetadata parses a decompressed metadata document.
//
// The document's Series and Instances levels are JSON objects keyed by ID;
// a plain map decode would lose their order, so both levels are walked with
// a token decoder that keeps document order. Any absent or null level
// contributes zero children. Unknown fields are skipped.
func DecodeImageSetMetadata(data []byte) (*ImageSetMetadata, error) {
	meta := &ImageSetMetadata{Raw: data}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, &DecodeError{Stage: "parse", cause: err}
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, &DecodeError{Stage: "parse", cause: err}
		}
		switch key {
		case "SchemaVersion":
			// Emitted as a number by some document versions and a string by
			// others; normalize to its textual form.
			var v any
			if err = dec.Decode(&v); err == nil && v != nil {
				meta.SchemaVersion = fmt.Sprint(v)
			}
		case "DatastoreID":
			err = dec.Decode(&meta.DatastoreID)
		case "ImageSetID":
			err = dec.Decode(&meta.ImageSetID)
		case "Study":
			err = decodeStudy(dec, &meta.Study)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return nil, &DecodeError{Stage: "parse", cause: err}
		}
	}

	return meta, nil
}

func decodeStudy(dec *json.Decoder, study *Study) error {
	null, err := objectOrNull(dec)
	if err != nil || null {
		return err
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		if key != "Series" {
			if err := skipValue(dec); err != nil {
				return err
			}
			continue
		}
		if study.Series, err = decodeSeriesMap(dec); err != nil {
			return err
		}
	}
	return closeDelim(dec)
}

func decodeSeriesMap(dec *json.Decoder) ([]Series, error) {
	null, err := objectOrNull(dec)
	if err != nil || null {
		return nil, err
	}
	var out []Series
	for dec.More() {
		id, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		s := Series{ID: id}
		if err := decodeSeries(dec, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, closeDelim(dec)
}

func decodeSeries(dec *json.Decoder, s *Series) error {
	null, err := objectOrNull(dec)
	if err != nil || null {
		return err
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		if key != "Instances" {
			if err := skipValue(dec); err != nil {
				return err
			}
			continue
		}
		if s.Instances, err = decodeInstanceMap(dec); err != nil {
			return err
		}
	}
	return closeDelim(dec)
}

func decodeInstanceMap(dec *json.Decoder) ([]Instance, error) {
	null, err := objectOrNull(dec)
	if err != nil || null {
		return nil, err
	}
	var out []Instance
	for dec.More() {
		id, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		inst := Instance{ID: id}
		if err := decodeInstance(dec, &inst); err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, closeDelim(dec)
}

func decodeInstance(dec *json.Decoder, inst *Instance) error {
	null, err := objectOrNull(dec)
	if err != nil || null {
		return err
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		if key != "ImageFrames" {
			if err := skipValue(dec); err != nil {
				return err
			}
			continue
		}
		// Frame entries carry more fields than the ID (checksums, pixel value
		// ranges); only the ID is addressable, the rest is dropped here.
		if err := dec.Decode(&inst.ImageFrames); err != nil {
			return err
		}
	}
	return closeDelim(dec)
}

// objectOrNull consumes the opening '{' of an object value, or a JSON null.
// Returns true when the value was null.
func objectOrNull(dec *json.Decoder) (bool, error) {
	tok, err := dec.Token()
	if err != nil {
		return false, err
	}
	if tok == nil {
		return true, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return false, fmt.Errorf("expected object, got %v", tok)
	}
	return false, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func closeDelim(dec *json.Decoder) error {
	_, err := dec.Token()
	return err
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}
