package jsons

import (
	"fmt"
	"reflect"
)

// Dump serializes a value into a JSON-compatible form: maps, slices,
// strings, numbers, booleans or nil. Nested values of registered types
// go through the same dispatch as the top-level one.
func Dump(obj any, opts *Options) (any, error) {
	return dumpValue(obj, nil, opts.norm())
}

// DumpAs serializes obj as if it were of type cls, keeping only the
// fields cls exposes. cls must be a struct type. When the runtime type
// of obj differs from cls, it is recorded in the embedded metadata so
// that Load can rebuild the original value.
func DumpAs(obj any, cls reflect.Type, opts *Options) (any, error) {
	opts = opts.norm()
	if cls == nil {
		return dumpValue(obj, nil, opts)
	}
	if cls.Kind() != reflect.Struct {
		return nil, SerializationError{
			Value:  obj,
			Target: cls,
			Err:    fmt.Errorf("invalid override %s: only struct types expose a fixed set of fields", displayName(cls)),
		}
	}
	return dumpValue(obj, cls, opts)
}

// Dumps serializes to JSON text through the configured codec.
func Dumps(obj any, opts *Options) (string, error) {
	opts = opts.norm()
	dumped, err := Dump(obj, opts)
	if err != nil {
		return "", err
	}
	encoded, err := opts.textCodec().Marshal(dumped)
	if err != nil {
		return "", SerializationError{Value: obj, Target: nil, Err: err}
	}
	return string(encoded), nil
}

// Dumpb is Dumps with the result encoded in the character set named by
// the options.
func Dumpb(obj any, opts *Options) ([]byte, error) {
	opts = opts.norm()
	text, err := Dumps(obj, opts)
	if err != nil {
		return nil, err
	}
	encoded, err := encodeText(text, opts.Encoding)
	if err != nil {
		return nil, SerializationError{Value: obj, Target: nil, Err: err}
	}
	return encoded, nil
}

// dumpValue dispatches a single value: nil short-circuit, converter
// lookup on the override or runtime type, and single wrapping of
// converter errors.
func dumpValue(obj any, cls reflect.Type, opts *Options) (any, error) {
	if obj == nil {
		return nil, nil
	}
	fork := opts.forkInst()

	typ := cls
	if typ == nil {
		typ = reflect.TypeOf(obj)
	}
	serializer, err := fork.lookupSerializer(typ)
	if err != nil {
		return nil, err
	}

	out, err := serializer(obj, typ, opts)
	if err != nil {
		if isStructured(err) {
			return nil, err
		}
		return nil, SerializationError{Value: obj, Target: typ, Err: err}
	}
	return out, nil
}
