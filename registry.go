package jsons

import (
	"reflect"
)

// A Serializer converts a value into a JSON-compatible form: maps,
// slices, strings, numbers, booleans or nil.
//
// typ is the type the value is dumped as: its runtime type, or the
// override passed to DumpAs. Custom serializers usually ignore it.
//
// Dispatch picks the serializer of the exact type first, then scans the
// fallback candidates in registration order (the first matching
// registration wins; a candidate matches when it is an interface the
// type implements, or a type it is assignable to), and finally falls
// back to the converter registered for the type's kind.
type Serializer func(obj any, typ reflect.Type, opts *Options) (any, error)

// A Deserializer builds a value of the resolved type from a
// JSON-compatible form. Dispatch follows the same three steps as for
// serializers.
type Deserializer func(value any, typ reflect.Type, opts *Options) (any, error)

func (f *Fork) lookupSerializer(typ reflect.Type) (Serializer, error) {
	if fn, ok := f.serializers[typ]; ok {
		return fn, nil
	}
	for _, base := range f.serializerBases {
		if matchesBase(typ, base) {
			return f.serializers[base], nil
		}
	}
	if fn, ok := f.kindSerializers[typ.Kind()]; ok {
		return fn, nil
	}
	return nil, LookupError{Operation: "dump", Type: typ}
}

func (f *Fork) lookupDeserializer(typ reflect.Type) (Deserializer, error) {
	if fn, ok := f.deserializers[typ]; ok {
		return fn, nil
	}
	for _, base := range f.deserializerBases {
		if matchesBase(typ, base) {
			return f.deserializers[base], nil
		}
	}
	if fn, ok := f.kindDeserializers[typ.Kind()]; ok {
		return fn, nil
	}
	return nil, LookupError{Operation: "load", Type: typ}
}

// matchesBase reports whether a converter registered for base can
// handle typ: base is an interface that typ (or *typ) implements, or a
// type typ is assignable to.
func matchesBase(typ reflect.Type, base reflect.Type) bool {
	if base.Kind() == reflect.Interface {
		return typ.Implements(base) || reflect.PointerTo(typ).Implements(base)
	}
	return typ.AssignableTo(base)
}
