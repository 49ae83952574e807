package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// encodeYAML renders v through its JSON form so that YAML keys and
// omissions match the JSON output exactly.
func encodeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return fmt.Errorf("failed to decode intermediate JSON: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(numbers(tree)); err != nil {
		return err
	}
	return enc.Close()
}

// numbers replaces json.Number leaves with int64 or float64 so that YAML
// prints integers without an exponent.
func numbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = numbers(child)
		}
		return val
	case []any:
		for i, child := range val {
			val[i] = numbers(child)
		}
		return val
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	}
	return v
}
