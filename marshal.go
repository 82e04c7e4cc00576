package strspan

import "gopkg.in/yaml.v3"

var _ yaml.Marshaler = Span[String]{}

// MarshalText encodes the span's bytes as text. JSON encoders use it to
// write a span as a string.
func (s Span[T]) MarshalText() ([]byte, error) {
	return s.Bytes(), nil
}

// MarshalYAML encodes the span as a YAML string scalar.
func (s Span[T]) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
