package jsons

import (
	"fmt"
	"reflect"
)

// Load deserializes a JSON-compatible value (maps, slices, strings,
// numbers, booleans, nil) into an instance of the target type.
//
// target may be:
//   - nil: the type is recovered from the metadata embedded in the
//     value when present, otherwise from its runtime shape;
//   - a reflect.Type: the declared type. A concrete type wins over
//     embedded metadata; an interface type defers to metadata naming
//     one of its implementations;
//   - a string: a forward reference, resolved against the names
//     announced on the fork.
//
// Without Strict, nil input loads as nil and a value that already has
// the declared type is returned unchanged. With Strict, nil input is an
// error and every value is rebuilt.
func Load(value any, target any, opts *Options) (any, error) {
	opts = opts.norm()
	declared, declaredName, err := normalizeTarget(target)
	if err != nil {
		return nil, err
	}
	return loadValue(value, declared, declaredName, opts)
}

// Loads decodes JSON text with the configured codec, then loads the
// result. A decode failure is reported as a DecodeError carrying the
// raw text.
func Loads(text string, target any, opts *Options) (any, error) {
	opts = opts.norm()
	declared, declaredName, err := normalizeTarget(target)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := opts.textCodec().Unmarshal([]byte(text), &decoded); err != nil {
		return nil, DecodeError{Text: text, Target: declared, Err: err}
	}
	return loadValue(decoded, declared, declaredName, opts)
}

// Loadb decodes raw bytes using the character encoding named by the
// options, then behaves like Loads. A nil slice is rejected; an empty
// one is merely invalid JSON.
func Loadb(data []byte, target any, opts *Options) (any, error) {
	opts = opts.norm()
	declared, _, err := normalizeTarget(target)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, InvalidInputError{
			Value:  data,
			Target: declared,
			Reason: "cannot load nil bytes",
		}
	}
	text, err := decodeText(data, opts.Encoding)
	if err != nil {
		return nil, DecodeError{Text: string(data), Target: declared, Err: err}
	}
	return Loads(text, target, opts)
}

// loadValue is the engine behind Load: skip checks, input validation,
// type resolution, dispatch, and single wrapping of converter errors.
func loadValue(value any, declared reflect.Type, declaredName string, opts *Options) (any, error) {
	fork := opts.forkInst()

	if !opts.Strict {
		if value == nil {
			return nil, nil
		}
		if declared != nil && reflect.TypeOf(value) == declared {
			return value, nil
		}
	}
	// The universal target accepts anything as it is, even nil under
	// Strict.
	if declared == anyType {
		return value, nil
	}
	if value == nil {
		return nil, InvalidInputError{
			Value:  value,
			Target: declared,
			Reason: fmt.Sprintf("cannot load nil as %s in strict mode", displayName(declared)),
		}
	}
	if kind := reflect.TypeOf(value).Kind(); !jsonCompatible(kind) {
		return nil, InvalidInputError{
			Value:  value,
			Target: declared,
			Reason: fmt.Sprintf("invalid input of type %s: only strings, booleans, numbers, arrays and objects can be loaded", displayName(reflect.TypeOf(value))),
		}
	}

	resolved, err := resolveType(value, declared, declaredName, opts, fork)
	if err != nil {
		return nil, err
	}

	deserializer, err := fork.lookupDeserializer(resolved.typ)
	if err != nil {
		return nil, err
	}

	out, err := deserializer(value, resolved.typ, opts.child(resolved.classes, resolved.inferred))
	if err != nil {
		if isStructured(err) {
			return nil, err
		}
		return nil, DeserializationError{Value: value, Target: resolved.typ, Err: err}
	}
	return out, nil
}
