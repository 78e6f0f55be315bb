package jsons_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cinatic/jsons"
	"gotest.tools/v3/assert"
)

type Shape interface {
	Sides() int
}

type Square struct {
	Width int `json:"width"`
}

func (s Square) Sides() int { return 4 }

type Triangle struct {
	Base int `json:"base"`
}

func (t Triangle) Sides() int { return 3 }

// Same wire shape as Square, but a plain struct.
type Box struct {
	Width int `json:"width"`
}

func withHint(name string, fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		out[key] = value
	}
	out["-meta"] = map[string]any{"classes": map[string]any{"/": name}}
	return out
}

func init() {
	jsons.RegisterType(Square{}, Triangle{}, Box{})
}

// An interface declaration is ambiguous, the embedded hint picks the
// implementation.
func TestHintWinsOverInterfaceDeclaration(t *testing.T) {
	value := withHint("jsons_test.square", map[string]any{"width": float64(3)})

	loaded, err := jsons.Load(value, reflect.TypeOf((*Shape)(nil)).Elem(), nil)
	assert.NilError(t, err)
	assert.Equal(t, loaded, Square{Width: 3})
}

// A concrete declaration is not, the hint is ignored.
func TestConcreteDeclarationIgnoresHint(t *testing.T) {
	value := withHint("jsons_test.square", map[string]any{"width": float64(3)})

	loaded, err := jsons.Load(value, reflect.TypeOf(Box{}), nil)
	assert.NilError(t, err)
	assert.Equal(t, loaded, Box{Width: 3}, "The declared concrete type should win over the hint")
}

func TestHintMustImplementTheInterface(t *testing.T) {
	value := withHint("jsons_test.box", map[string]any{"width": float64(3)})

	_, err := jsons.Load(value, reflect.TypeOf((*Shape)(nil)).Elem(), nil)
	assert.Assert(t, err != nil, "A hint that does not satisfy the declaration should be rejected")
	assert.ErrorContains(t, err, "does not implement")
}

func TestForwardReference(t *testing.T) {
	loaded, err := jsons.Load(map[string]any{"base": float64(5)}, "jsons_test.triangle", nil)
	assert.NilError(t, err)
	assert.Equal(t, loaded, Triangle{Base: 5})

	// Lookups are case-insensitive.
	loaded, err = jsons.Load(map[string]any{"base": float64(5)}, "jsons_test.Triangle", nil)
	assert.NilError(t, err)
	assert.Equal(t, loaded, Triangle{Base: 5})
}

func TestForwardReferenceUnknown(t *testing.T) {
	_, err := jsons.Load(map[string]any{}, "jsons_test.nosuchtype", nil)
	assert.Assert(t, err != nil)

	var unknown jsons.UnknownTypeError
	assert.Equal(t, errors.As(err, &unknown), true)
	assert.Equal(t, unknown.Name, "jsons_test.nosuchtype")
}

// A hint also beats a forward reference, the reference names a base at
// best.
func TestHintWinsOverForwardReference(t *testing.T) {
	value := withHint("jsons_test.square", map[string]any{"width": float64(3)})

	loaded, err := jsons.Load(value, "jsons_test.box", nil)
	assert.NilError(t, err)
	assert.Equal(t, loaded, Square{Width: 3})
}

func TestIdentityShortCircuit(t *testing.T) {
	value := map[string]any{"anything": float64(1)}

	loaded, err := jsons.Load(value, reflect.TypeOf(value), nil)
	assert.NilError(t, err)
	assert.Equal(t, reflect.ValueOf(loaded).Pointer(), reflect.ValueOf(value).Pointer(),
		"Without Strict, a value of the declared type should come back untouched")
}

func TestStrictRebuilds(t *testing.T) {
	value := map[string]any{"anything": float64(1)}

	loaded, err := jsons.Load(value, reflect.TypeOf(value), jsons.StrictOptions())
	assert.NilError(t, err)
	assert.Assert(t, reflect.ValueOf(loaded).Pointer() != reflect.ValueOf(value).Pointer(),
		"Strict disables the identity short-circuit")
	assert.DeepEqual(t, loaded, value)
}

func TestNilInput(t *testing.T) {
	loaded, err := jsons.Load(nil, reflect.TypeOf(Box{}), nil)
	assert.NilError(t, err)
	assert.Equal(t, loaded, nil, "Without Strict, nil loads as nil")

	_, err = jsons.Load(nil, reflect.TypeOf(Box{}), jsons.StrictOptions())
	assert.Assert(t, err != nil, "With Strict, nil input is an error")

	var invalid jsons.InvalidInputError
	assert.Equal(t, errors.As(err, &invalid), true)
}

func TestUniversalTarget(t *testing.T) {
	value := map[string]any{"a": float64(1)}

	loaded, err := jsons.Load(value, reflect.TypeOf((*any)(nil)).Elem(), jsons.StrictOptions())
	assert.NilError(t, err, "The universal target accepts anything, even under Strict")
	assert.Equal(t, reflect.ValueOf(loaded).Pointer(), reflect.ValueOf(value).Pointer())
}

func TestInvalidInputKind(t *testing.T) {
	_, err := jsons.Load(Box{Width: 1}, reflect.TypeOf(Box{}), jsons.StrictOptions())
	assert.Assert(t, err != nil, "A struct is not a JSON-compatible input")

	var invalid jsons.InvalidInputError
	assert.Equal(t, errors.As(err, &invalid), true)

	_, err = jsons.Load(make(chan int), nil, nil)
	assert.Equal(t, errors.As(err, &invalid), true, "Channels are not JSON-compatible input")
}

func TestInvalidTarget(t *testing.T) {
	_, err := jsons.Load(map[string]any{}, 42, nil)
	assert.Assert(t, err != nil, "Targets are nil, a reflect.Type or a string")

	var invalid jsons.InvalidInputError
	assert.Equal(t, errors.As(err, &invalid), true)
}

// Hints keep applying below a field whose type was itself picked by a
// hint, the inference is contagious.
func TestInferredChain(t *testing.T) {
	inner := withHint("jsons_test.square", map[string]any{"width": float64(3)})
	value := map[string]any{"width": float64(1)}

	// Box has no interface fields; loading it stays concrete and the
	// inner hint would be ignored if Box were declared outright.
	loaded, err := jsons.Load(value, reflect.TypeOf(Box{}), nil)
	assert.NilError(t, err)
	assert.Equal(t, loaded, Box{Width: 1})

	// Untyped load of a hinted value is inferred, so nested hints win.
	loaded, err = jsons.Load(inner, nil, nil)
	assert.NilError(t, err)
	assert.Equal(t, loaded, Square{Width: 3})
}
