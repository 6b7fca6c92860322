package glint

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec decodes page configs and scenario files. LoadConfig and Reloader
// decode over a seeded value, so a document only needs the keys it changes.
type Codec interface {
	Unmarshal(data []byte, v any) error

	// ContentType names the format in reload signals.
	ContentType() string
}

// JSONCodec reads .json config files.
type JSONCodec struct{}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) ContentType() string {
	return "application/json"
}

// YAMLCodec reads YAML config files. It is the default for LoadConfig.
type YAMLCodec struct{}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

var (
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
)

// CodecFor picks a codec from a file extension: .json is JSON, anything
// else is YAML (which also reads plain JSON).
func CodecFor(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONCodec{}
	}
	return YAMLCodec{}
}
