// Package gojson provides a Codec backed by github.com/goccy/go-json.
package gojson

import (
	"github.com/goccy/go-json"

	"github.com/cinatic/jsons/codec"
)

type gojsonCodec struct {
	encodeOptions []json.EncodeOptionFunc
	decodeOptions []json.DecodeOptionFunc
}

func (c *gojsonCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalWithOption(v, c.encodeOptions...)
}

func (c *gojsonCodec) Unmarshal(data []byte, v any) error {
	return json.UnmarshalWithOption(data, v, c.decodeOptions...)
}

// New creates a Codec with the given encode and decode options. Both can
// be left nil.
func New(encodeOptions []json.EncodeOptionFunc, decodeOptions []json.DecodeOptionFunc) codec.Codec {
	return &gojsonCodec{
		encodeOptions: encodeOptions,
		decodeOptions: decodeOptions,
	}
}
