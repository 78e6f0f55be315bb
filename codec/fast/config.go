// Package fast selects the fastest JSON codec available for the target
// platform at build time: sonic on amd64 linux, windows and darwin,
// go-json everywhere else.
package fast

import (
	"github.com/bytedance/sonic"
	"github.com/goccy/go-json"
)

type Config struct {
	// Configuration of the sonic codec. Only used on platforms
	// supported by sonic.
	SonicConfig sonic.Config

	// Configuration of the go-json codec. Used on all other platforms.
	GoJSON GoJSONConfig
}

type GoJSONConfig struct {
	EncodeOptions []json.EncodeOptionFunc
	DecodeOptions []json.DecodeOptionFunc
}

func DefaultConfig() Config {
	return Config{
		SonicConfig: sonic.Config{
			// Decoded strings must not alias the input buffer, loaded
			// values may outlive it.
			CopyString:       true,
			CompactMarshaler: true,
			EscapeHTML:       true,
		},
		GoJSON: GoJSONConfig{},
	}
}
