package loop

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ErrSchema indicates the config file schema could not be generated.
var ErrSchema = errors.New("generate schema")

// Schema returns the JSON Schema of the YAML config file, indented with two
// spaces. Objects reject unknown keys to match strict decoding.
func Schema() ([]byte, error) {
	s, err := jsonschema.For[File](nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}

	s.Schema = "https://json-schema.org/draft/2020-12/schema"
	s.Title = "ferrisfollow config"

	closed := &jsonschema.Schema{Not: &jsonschema.Schema{}}
	s.AdditionalProperties = closed

	if g, ok := s.Properties["glyphs"]; ok {
		g.AdditionalProperties = closed
	}

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}

	return append(out, '\n'), nil
}
