// Package jsons converts arbitrary object graphs to JSON-compatible
// values and back, driven by a registry of converters keyed by type.
//
// # Recommended use
//
// Dump a value with Dumps (text), Dumpb (bytes) or Dump (a tree of
// maps, slices and scalars); load it back with Loads, Loadb or Load:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Year uint16 `json:"year"`
//	}
//
//	text, err := jsons.Dumps(Person{Name: "Marcel", Year: 1998}, nil)
//	// {"name": "Marcel", "year": 1998}
//
//	loaded, err := jsons.Loads(text, reflect.TypeOf(Person{}), nil)
//	person := loaded.(Person)
//
// Or bind the engines to a type once with an Adapter:
//
//	adapter := jsons.MakeAdapter[Person](nil)
//	person, err := adapter.FromJSON(data)
//
// The object converters honor `json` tags for renaming, skipping and
// omitempty, `default` tags for fields the input may omit, and the
// Initializer interface for setup that runs before any input is read.
//
// # Custom converters
//
// SetSerializer and SetDeserializer attach converters to a type. A
// registration also makes the type a fallback candidate for dispatch
// and announces its name for forward references and embedded metadata:
//
//	jsons.SetSerializer(reflect.TypeOf(Card{}), func(obj any, typ reflect.Type, opts *jsons.Options) (any, error) {
//	    card := obj.(Card)
//	    return fmt.Sprintf("%s of %s", card.Rank, card.Suit), nil
//	})
//
// Registering an interface type makes the converter handle every
// implementation that has no converter of its own; among several
// matching interfaces, the first registered wins.
//
// # Polymorphism
//
// When a struct field is declared as a non-empty interface, Dump embeds
// the runtime type of its value in the reserved "-meta" key of the
// outermost object, and Load consults it to rebuild the exact type. The
// Verbose option extends this to every named struct in the dump, which
// lets Load(value, nil, nil) reconstruct the whole graph without any
// declaration. Concrete declared types ignore hints; an interface
// declaration accepts a hint naming one of its implementations.
//
// # Concurrency
//
// Registration is not synchronized. Register converters and announce
// types during setup, before the fork receives Load/Dump traffic; the
// read paths share the registry freely afterwards. Isolated namespaces
// for tests or plugins come from NewFork.
package jsons

import (
	"reflect"

	"github.com/cinatic/jsons/codec"
	"github.com/cinatic/jsons/codec/fast"
)

// The codec behind Loads/Dumps when the options specify none: the
// fastest JSON library available for the platform.
var defaultCodec codec.Codec = fast.New()

// Assigned in init: the default converters reach forkInst through
// dumpValue and loadValue, so a plain initializer would form an
// initialization cycle with this variable.
var defaultFork *Fork

func init() {
	defaultFork = makeDefaultFork()
}

var primitiveKinds = []reflect.Kind{
	reflect.String, reflect.Bool,
	reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
	reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
	reflect.Float32, reflect.Float64,
}

// makeDefaultFork wires the default converters. They live in the kind
// table (plus two exact registrations for time and uuid), so anything a
// user registers, for a type or for an interface, takes precedence.
func makeDefaultFork() *Fork {
	fork := newFork()

	for _, kind := range primitiveKinds {
		fork.SetKindSerializer(kind, primitiveSerializer)
		fork.SetKindDeserializer(kind, primitiveDeserializer)
	}
	fork.SetKindSerializer(reflect.Slice, listSerializer)
	fork.SetKindSerializer(reflect.Array, listSerializer)
	fork.SetKindDeserializer(reflect.Slice, listDeserializer)
	fork.SetKindDeserializer(reflect.Array, tupleDeserializer)
	fork.SetKindSerializer(reflect.Map, dictSerializer)
	fork.SetKindDeserializer(reflect.Map, dictDeserializer)
	fork.SetKindSerializer(reflect.Struct, objectSerializer)
	fork.SetKindDeserializer(reflect.Struct, objectDeserializer)
	fork.SetKindSerializer(reflect.Pointer, pointerSerializer)
	fork.SetKindDeserializer(reflect.Pointer, pointerDeserializer)

	fork.SetSerializer(timeType, timeSerializer)
	fork.SetDeserializer(timeType, timeDeserializer)
	fork.SetSerializer(uuidType, uuidSerializer)
	fork.SetDeserializer(uuidType, uuidDeserializer)

	return fork
}

// SetSerializer registers a serializer on the default fork.
func SetSerializer(typ reflect.Type, fn Serializer) {
	defaultFork.SetSerializer(typ, fn)
}

// SetDeserializer registers a deserializer on the default fork.
func SetDeserializer(typ reflect.Type, fn Deserializer) {
	defaultFork.SetDeserializer(typ, fn)
}

// SetKindSerializer registers a kind-level serializer on the default fork.
func SetKindSerializer(kind reflect.Kind, fn Serializer) {
	defaultFork.SetKindSerializer(kind, fn)
}

// SetKindDeserializer registers a kind-level deserializer on the default fork.
func SetKindDeserializer(kind reflect.Kind, fn Deserializer) {
	defaultFork.SetKindDeserializer(kind, fn)
}

// RegisterType announces type names on the default fork.
func RegisterType(samples ...any) {
	defaultFork.RegisterType(samples...)
}
