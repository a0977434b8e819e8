package utils

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson indents any value, or raw JSON bytes, with two spaces.
func PrettyJson(in any) string {
	var value any = in
	if raw, ok := in.([]byte); ok {
		if err := json.Unmarshal(raw, &value); err != nil {
			return string(raw)
		}
	}

	compact, err := json.Marshal(value)
	if err != nil {
		return ""
	}

	// jsoniter's MarshalIndent loses a level on arrays nested in maps.
	var out bytes.Buffer
	if err := stdjson.Indent(&out, compact, "", "  "); err != nil {
		return ""
	}

	return out.String()
}
