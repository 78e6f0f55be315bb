package stdjson_test

import (
	"testing"

	"github.com/cinatic/jsons/codec/stdjson"
	"gotest.tools/v3/assert"
)

func TestRoundTrip(t *testing.T) {
	codec := stdjson.New()

	encoded, err := codec.Marshal([]any{"a", float64(1)})
	assert.NilError(t, err)

	var decoded any
	err = codec.Unmarshal(encoded, &decoded)
	assert.NilError(t, err)
	assert.DeepEqual(t, decoded, []any{"a", float64(1)})
}
