// Package codec defines the pluggable JSON text codec used at the
// string and byte boundaries of the conversion engine.
//
// Implementations live in the subpackages: gojson and sonic wrap the
// corresponding libraries, stdjson wraps encoding/json, and fast picks
// the fastest codec available for the platform at build time.
package codec

// A Codec turns values into JSON text and back.
//
// The engine relies on the encoding/json-compatible contract: objects
// decode into map[string]any, arrays into []any and numbers into
// float64.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}
