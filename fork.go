package jsons

import (
	"log/slog"
	"reflect"
	"strings"
)

// A Fork is an isolated namespace of converters and announced type
// names.
//
// A fork starts as a snapshot of its parent: registrations made on
// either side afterwards are invisible to the other. The package-level
// Set*/RegisterType functions operate on the default fork that nil
// options point to.
//
// Forks are not synchronized. Register converters while setting the
// fork up, before it receives concurrent Load/Dump traffic; reads are
// lock-free after that.
type Fork struct {
	serializers       map[reflect.Type]Serializer
	deserializers     map[reflect.Type]Deserializer
	kindSerializers   map[reflect.Kind]Serializer
	kindDeserializers map[reflect.Kind]Deserializer
	serializerBases   []reflect.Type
	deserializerBases []reflect.Type
	classes           map[string]reflect.Type
}

func newFork() *Fork {
	return &Fork{
		serializers:       make(map[reflect.Type]Serializer),
		deserializers:     make(map[reflect.Type]Deserializer),
		kindSerializers:   make(map[reflect.Kind]Serializer),
		kindDeserializers: make(map[reflect.Kind]Deserializer),
		serializerBases:   nil,
		deserializerBases: nil,
		classes:           make(map[string]reflect.Type),
	}
}

// NewFork returns an isolated copy of the default fork.
func NewFork() *Fork {
	return defaultFork.Fork()
}

// Fork returns an isolated copy of this fork.
func (f *Fork) Fork() *Fork {
	next := newFork()
	for typ, serializer := range f.serializers {
		next.serializers[typ] = serializer
	}
	for typ, deserializer := range f.deserializers {
		next.deserializers[typ] = deserializer
	}
	for kind, serializer := range f.kindSerializers {
		next.kindSerializers[kind] = serializer
	}
	for kind, deserializer := range f.kindDeserializers {
		next.kindDeserializers[kind] = deserializer
	}
	next.serializerBases = append(next.serializerBases, f.serializerBases...)
	next.deserializerBases = append(next.deserializerBases, f.deserializerBases...)
	for name, typ := range f.classes {
		next.classes[name] = typ
	}
	return next
}

// SetSerializer registers fn as the serializer for exactly typ.
//
// A previous registration for typ is replaced. typ also becomes a
// fallback candidate for types that match it (see lookup rules on
// Serializer), keeping its position in registration order, and its
// name becomes resolvable for forward references and embedded metadata.
func (f *Fork) SetSerializer(typ reflect.Type, fn Serializer) {
	f.serializers[typ] = fn
	f.serializerBases = appendBase(f.serializerBases, typ)
	f.announce(typ)
}

// SetDeserializer registers fn as the deserializer for exactly typ,
// with the same fallback and announcement behavior as SetSerializer.
func (f *Fork) SetDeserializer(typ reflect.Type, fn Deserializer) {
	f.deserializers[typ] = fn
	f.deserializerBases = appendBase(f.deserializerBases, typ)
	f.announce(typ)
}

// SetKindSerializer registers fn for every type of the given kind that
// has no exact or fallback converter. The default converters for
// structs, maps, slices and primitives live in this table, so user
// registrations always win over them.
func (f *Fork) SetKindSerializer(kind reflect.Kind, fn Serializer) {
	f.kindSerializers[kind] = fn
}

// SetKindDeserializer is SetKindSerializer for the load direction.
func (f *Fork) SetKindDeserializer(kind reflect.Kind, fn Deserializer) {
	f.kindDeserializers[kind] = fn
}

// RegisterType announces the types of the given sample values, making
// their names resolvable for forward references and embedded metadata.
// No converter is attached.
//
// Pointers are dereferenced, so RegisterType((*Car)(nil)) announces Car
// and RegisterType((*Vehicle)(nil)) announces the Vehicle interface.
func (f *Fork) RegisterType(samples ...any) {
	for _, sample := range samples {
		typ := reflect.TypeOf(sample)
		if typ == nil {
			continue
		}
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		f.announce(typ)
	}
}

func (f *Fork) announce(typ reflect.Type) {
	if typ.Name() == "" {
		slog.Warn("cannot announce an unnamed type", "type", typ.String())
		return
	}
	name := canonicalName(typ)
	if previous, ok := f.classes[name]; ok && previous != typ {
		slog.Warn("type name already announced, overwriting",
			"name", name,
			"previous", previous.String(),
			"new", typ.String())
	}
	f.classes[name] = typ
}

// resolveName resolves a type name announced on this fork. Lookups are
// case-insensitive.
func (f *Fork) resolveName(name string) (reflect.Type, bool) {
	typ, ok := f.classes[strings.ToLower(name)]
	return typ, ok
}

// canonicalName is the form under which a type is announced and
// recorded in embedded metadata, e.g. "mypkg.car".
func canonicalName(typ reflect.Type) string {
	return strings.ToLower(typ.String())
}

// appendBase adds typ to the ordered fallback list, once.
func appendBase(bases []reflect.Type, typ reflect.Type) []reflect.Type {
	for _, base := range bases {
		if base == typ {
			return bases
		}
	}
	return append(bases, typ)
}
