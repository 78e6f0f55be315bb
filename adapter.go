package jsons

import (
	"fmt"
	"reflect"
)

// An Adapter binds the engines to one Go type, giving a value a typed
// to/from JSON pair without writing per-type wrapper methods. Build one
// with MakeAdapter and keep it, adapters are cheap and stateless.
//
// With an interface type parameter, loading relies on embedded metadata
// to pick the concrete implementation: dump with the Verbose option, or
// through interface-typed fields, to produce it.
type Adapter[T any] struct {
	typ  reflect.Type
	opts *Options
}

// MakeAdapter builds an adapter for T that uses the given options on
// every call. nil means defaults.
func MakeAdapter[T any](opts *Options) Adapter[T] {
	return Adapter[T]{
		typ:  reflect.TypeOf((*T)(nil)).Elem(),
		opts: opts.norm(),
	}
}

// Load deserializes a JSON-compatible value into a T.
func (a Adapter[T]) Load(value any) (T, error) {
	loaded, err := loadValue(value, a.typ, "", a.opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return castTo[T](loaded, a.typ)
}

// Dump serializes a T into a JSON-compatible value.
func (a Adapter[T]) Dump(value T) (any, error) {
	return Dump(value, a.opts)
}

// FromJSON decodes JSON bytes into a T.
func (a Adapter[T]) FromJSON(data []byte) (T, error) {
	loaded, err := Loadb(data, a.typ, a.opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return castTo[T](loaded, a.typ)
}

// ToJSON encodes a T as JSON bytes.
func (a Adapter[T]) ToJSON(value T) ([]byte, error) {
	return Dumpb(value, a.opts)
}

// ToJSON encodes a value as JSON bytes through a throwaway adapter.
func ToJSON[T any](value T, opts *Options) ([]byte, error) {
	return MakeAdapter[T](opts).ToJSON(value)
}

// FromJSON decodes JSON bytes into a T through a throwaway adapter.
func FromJSON[T any](data []byte, opts *Options) (T, error) {
	return MakeAdapter[T](opts).FromJSON(data)
}

func castTo[T any](value any, typ reflect.Type) (T, error) {
	var zero T
	if value == nil {
		return zero, nil
	}
	cast, ok := value.(T)
	if ok {
		return cast, nil
	}
	reflected := reflect.ValueOf(value)
	if reflected.CanConvert(typ) {
		if converted, ok := reflected.Convert(typ).Interface().(T); ok {
			return converted, nil
		}
	}
	// An interface satisfied through the pointer type only.
	if typ.Kind() == reflect.Interface && reflect.PointerTo(reflected.Type()).Implements(typ) {
		boxed := reflect.New(reflected.Type())
		boxed.Elem().Set(reflected)
		if cast, ok := boxed.Interface().(T); ok {
			return cast, nil
		}
	}
	return zero, DeserializationError{
		Value:  value,
		Target: typ,
		Err:    fmt.Errorf("the loaded value has type %s", displayName(reflect.TypeOf(value))),
	}
}
