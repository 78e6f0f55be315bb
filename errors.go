package jsons

import (
	"errors"
	"fmt"
	"reflect"
)

// Error is implemented by every structured error of this package.
//
// The engines wrap a converter failure exactly once: an error that
// already implements Error propagates unchanged, anything else becomes
// a DeserializationError (or SerializationError when dumping) carrying
// the offending value and the resolved type. Use errors.As to pull out
// the structured error regardless of intermediate wrapping.
type Error interface {
	error
	jsonsError()
}

// No converter is registered for a type, any of its bases, or its kind.
type LookupError struct {
	// The operation that failed to find a converter, "load" or "dump".
	Operation string

	// The type we were trying to convert.
	Type reflect.Type
}

func (e LookupError) Error() string {
	return fmt.Sprintf("cannot %s type %s: no converter registered for this type or any of its bases", e.Operation, displayName(e.Type))
}
func (e LookupError) jsonsError() {}

// The input handed to Load is rejected before any converter runs: nil
// in strict mode, a runtime kind JSON cannot represent, or an invalid
// target.
type InvalidInputError struct {
	// The rejected value.
	Value any

	// The declared target type, nil when untyped.
	Target reflect.Type

	// A human-readable explanation.
	Reason string
}

func (e InvalidInputError) Error() string {
	return e.Reason
}
func (e InvalidInputError) jsonsError() {}

// Text or bytes that could not be decoded as JSON at the Loads/Loadb
// boundary.
type DecodeError struct {
	// The raw text that failed to decode. Not repeated in the message.
	Text string

	// The requested target type, nil when untyped.
	Target reflect.Type

	// The underlying codec error.
	Err error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("could not decode the input as JSON:\n\t * %v", e.Err)
}
func (e DecodeError) Unwrap() error { return e.Err }
func (e DecodeError) jsonsError()   {}

// A converter failed while loading a value.
type DeserializationError struct {
	// The value being loaded.
	Value any

	// The type the value was being loaded as.
	Target reflect.Type

	// The underlying converter error.
	Err error
}

func (e DeserializationError) Error() string {
	return fmt.Sprintf("could not deserialize value as %s:\n\t * %v", displayName(e.Target), e.Err)
}
func (e DeserializationError) Unwrap() error { return e.Err }
func (e DeserializationError) jsonsError()   {}

// A converter failed while dumping a value.
type SerializationError struct {
	// The value being dumped.
	Value any

	// The type the value was being dumped as, nil when untyped.
	Target reflect.Type

	// The underlying converter error.
	Err error
}

func (e SerializationError) Error() string {
	return fmt.Sprintf("could not serialize value as %s:\n\t * %v", displayName(e.Target), e.Err)
}
func (e SerializationError) Unwrap() error { return e.Err }
func (e SerializationError) jsonsError()   {}

// A type name that resolves to nothing: it was never announced on the
// fork, by SetSerializer/SetDeserializer or by RegisterType.
type UnknownTypeError struct {
	// The name that failed to resolve.
	Name string
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("no type registered under the name %q", e.Name)
}
func (e UnknownTypeError) jsonsError() {}

// Strict mode only: a field of the target received no value from the
// input, the attribute getters or a `default` tag.
type UnfulfilledFieldError struct {
	// The wire name of the field.
	Field string

	// The object being loaded.
	Value any

	// The type being loaded.
	Target reflect.Type
}

func (e UnfulfilledFieldError) Error() string {
	return fmt.Sprintf("missing value for field %q of %s", e.Field, displayName(e.Target))
}
func (e UnfulfilledFieldError) jsonsError() {}

// Strict mode only: the input carries a key the target has no field
// for, or an attribute getter names a field that does not exist.
type UnexpectedFieldError struct {
	// The offending key or getter name.
	Field string

	// The object being loaded.
	Value any

	// The type being loaded.
	Target reflect.Type
}

func (e UnexpectedFieldError) Error() string {
	return fmt.Sprintf("type %s does not expect a field %q", displayName(e.Target), e.Field)
}
func (e UnexpectedFieldError) jsonsError() {}

// A user-provided hook, such as an Initialize method or an attribute
// getter, failed during conversion.
type CustomConverterError struct {
	// The operation that failed, e.g. "initialize" or "attribute getter".
	Operation string

	// The underlying error.
	Wrapped error
}

func (e CustomConverterError) Error() string {
	return e.Wrapped.Error()
}
func (e CustomConverterError) Unwrap() error { return e.Wrapped }
func (e CustomConverterError) jsonsError()   {}

var _ Error = LookupError{}           //nolint:exhaustruct
var _ Error = InvalidInputError{}     //nolint:exhaustruct
var _ Error = DecodeError{}           //nolint:exhaustruct
var _ Error = DeserializationError{}  //nolint:exhaustruct
var _ Error = SerializationError{}    //nolint:exhaustruct
var _ Error = UnknownTypeError{}      //nolint:exhaustruct
var _ Error = UnfulfilledFieldError{} //nolint:exhaustruct
var _ Error = UnexpectedFieldError{}  //nolint:exhaustruct
var _ Error = CustomConverterError{}  //nolint:exhaustruct

// isStructured checks whether err already carries one of this package's
// structured errors, in which case the engines do not wrap it again.
func isStructured(err error) bool {
	var structured Error
	return errors.As(err, &structured)
}

// displayName renders a type for error messages.
func displayName(typ reflect.Type) string {
	if typ == nil {
		return "<untyped>"
	}
	return typ.String()
}
