package codec

import (
	"encoding/json"
)

// JSON is the standard-library codec. With Indent set, catalogs are written
// one field per line, which keeps them diffable when checked in next to
// tuning runs.
type JSON struct {
	Indent string
}

// Marshal encodes v, indenting when Indent is set.
func (c JSON) Marshal(v any) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

// Unmarshal decodes data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json". Indentation does not change the name.
func (JSON) Name() string { return "json" }

// Default is the codec used for new catalogs.
var Default Codec = GoJSON{}
