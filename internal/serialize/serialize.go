// Package serialize encodes templates and manifests for artifact
// output.
package serialize

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format selects the template encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// ToJSON renders v as indented JSON with a trailing newline.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ToYAML renders v as YAML. Values are round-tripped through their JSON
// encoding first so custom marshalers (intrinsic functions in
// particular) produce the same shapes in both formats.
func ToYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

// Encode renders v in the requested format.
func Encode(v any, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return ToYAML(v)
	default:
		return ToJSON(v)
	}
}
