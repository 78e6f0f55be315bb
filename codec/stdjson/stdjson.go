// Package stdjson provides a Codec backed by encoding/json, for
// environments that prefer the standard library over speed.
package stdjson

import (
	"encoding/json"

	"github.com/cinatic/jsons/codec"
)

type stdCodec struct{}

func (stdCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (stdCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// New creates a Codec that delegates to encoding/json.
func New() codec.Codec {
	return stdCodec{}
}
