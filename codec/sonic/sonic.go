//go:build amd64 && (linux || windows || darwin)

package sonic

import (
	"github.com/bytedance/sonic"

	"github.com/cinatic/jsons/codec"
)

type Config = sonic.Config

type sonicCodec struct {
	api sonic.API
}

func (c *sonicCodec) Marshal(v any) ([]byte, error) {
	return c.api.Marshal(v)
}

func (c *sonicCodec) Unmarshal(data []byte, v any) error {
	return c.api.Unmarshal(data, v)
}

// New creates a Codec from a frozen sonic configuration.
func New(config Config) codec.Codec {
	return &sonicCodec{
		api: config.Froze(),
	}
}
