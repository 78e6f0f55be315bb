//go:build amd64 && (linux || windows || darwin)

package fast

import (
	"github.com/cinatic/jsons/codec"
	"github.com/cinatic/jsons/codec/sonic"
)

// New creates the fastest Codec for this platform with the default
// configuration.
func New() codec.Codec {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates the fastest Codec for this platform with the
// given configuration.
func NewWithConfig(config Config) codec.Codec {
	return sonic.New(config.SonicConfig)
}

// Type returns the codec selected for this build target.
func Type() CodecType {
	return CodecTypeSonic
}
