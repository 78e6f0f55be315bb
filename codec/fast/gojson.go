//go:build !amd64 || (amd64 && !(linux || windows || darwin))

package fast

import (
	"github.com/cinatic/jsons/codec"
	"github.com/cinatic/jsons/codec/gojson"
)

// New creates the fastest Codec for this platform with the default
// configuration.
func New() codec.Codec {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates the fastest Codec for this platform with the
// given configuration.
func NewWithConfig(config Config) codec.Codec {
	return gojson.New(config.GoJSON.EncodeOptions, config.GoJSON.DecodeOptions)
}

// Type returns the codec selected for this build target.
func Type() CodecType {
	return CodecTypeGoJSON
}
