// Package codec encodes the catalog manifests written next to score blobs.
//
// Manifests are self-describing: every document is a JSON object whose
// "codec" field names the codec that wrote it, so Decode can read catalogs
// written with a different default than the current one.
package codec

import (
	"errors"
	"fmt"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ErrUnknown is returned for a codec name without a built-in implementation.
var ErrUnknown = errors.New("codec: unknown codec")

// Lookup returns the built-in codec registered under name.
func Lookup(name string) (Codec, error) {
	switch name {
	case "json":
		return JSON{}, nil
	case "go-json":
		return GoJSON{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
}

// Decode reads a self-describing document into v with the codec named by its
// "codec" field and returns that codec. A missing field selects Default.
func Decode(data []byte, v any) (Codec, error) {
	var head struct {
		Codec string `json:"codec"`
	}
	// Every built-in codec writes JSON, so the field is readable with any.
	if err := (JSON{}).Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("codec: read header: %w", err)
	}

	c := Default
	if head.Codec != "" {
		var err error
		if c, err = Lookup(head.Codec); err != nil {
			return nil, err
		}
	}
	if err := c.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("codec: %s: %w", c.Name(), err)
	}
	return c, nil
}
