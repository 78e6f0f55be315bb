package jsons

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// lookupParser returns a parser that recovers a value of the given type
// from its textual form, or nil if the type has no textual form. Also
// used to interpret `default` tags on struct fields.
func lookupParser(typ reflect.Type) func(string) (any, error) {
	switch typ.Kind() {
	case reflect.Bool:
		return func(source string) (any, error) {
			return strconv.ParseBool(source) //nolint:wrapcheck
		}
	case reflect.Float32:
		return func(source string) (any, error) {
			return strconv.ParseFloat(source, 32) //nolint:wrapcheck
		}
	case reflect.Float64:
		return func(source string) (any, error) {
			return strconv.ParseFloat(source, 64) //nolint:wrapcheck
		}
	case reflect.Int:
		return func(source string) (any, error) {
			return strconv.Atoi(source) //nolint:wrapcheck
		}
	case reflect.Int8:
		return func(source string) (any, error) {
			return strconv.ParseInt(source, 10, 8) //nolint:wrapcheck
		}
	case reflect.Int16:
		return func(source string) (any, error) {
			return strconv.ParseInt(source, 10, 16) //nolint:wrapcheck
		}
	case reflect.Int32:
		return func(source string) (any, error) {
			return strconv.ParseInt(source, 10, 32) //nolint:wrapcheck
		}
	case reflect.Int64:
		return func(source string) (any, error) {
			return strconv.ParseInt(source, 10, 64) //nolint:wrapcheck
		}
	case reflect.Uint:
		return func(source string) (any, error) {
			return strconv.ParseUint(source, 10, 64) //nolint:wrapcheck
		}
	case reflect.Uint8:
		return func(source string) (any, error) {
			return strconv.ParseUint(source, 10, 8) //nolint:wrapcheck
		}
	case reflect.Uint16:
		return func(source string) (any, error) {
			return strconv.ParseUint(source, 10, 16) //nolint:wrapcheck
		}
	case reflect.Uint32:
		return func(source string) (any, error) {
			return strconv.ParseUint(source, 10, 32) //nolint:wrapcheck
		}
	case reflect.Uint64:
		return func(source string) (any, error) {
			return strconv.ParseUint(source, 10, 64) //nolint:wrapcheck
		}
	case reflect.String:
		return func(source string) (any, error) {
			return source, nil
		}
	default:
		return nil
	}
}

func isIntKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUintKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isFloatKind(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

// primitiveDeserializer converts scalars into any type whose kind is a
// string, boolean or number kind, recovering from text when the type
// has a parser. JSON numbers arrive as float64, so narrowing to integer
// kinds is routine; Strict rejects it when it would lose a fraction.
func primitiveDeserializer(value any, typ reflect.Type, opts *Options) (any, error) {
	reflected := reflect.ValueOf(value)
	if reflected.Type() == typ {
		return value, nil
	}

	if source, ok := value.(string); ok && typ.Kind() != reflect.String {
		parser := lookupParser(typ)
		if parser == nil {
			return nil, fmt.Errorf("invalid value %q, expected %s", source, displayName(typ))
		}
		parsed, err := parser(source)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q, expected %s:\n\t * %w", source, displayName(typ), err)
		}
		reflected = reflect.ValueOf(parsed)
	}

	if typ.Kind() == reflect.String && reflected.Kind() != reflect.String {
		return formatAsString(reflected, typ)
	}

	if isIntKind(typ.Kind()) || isUintKind(typ.Kind()) {
		return convertToInteger(value, reflected, typ, opts)
	}

	if !reflected.CanConvert(typ) {
		return nil, fmt.Errorf("invalid value %v, expected %s", value, displayName(typ))
	}
	converted := reflected.Convert(typ)
	if typ.Kind() == reflect.Float32 && isFloatKind(reflected.Kind()) &&
		!math.IsInf(reflected.Float(), 0) && math.IsInf(converted.Float(), 0) {
		return nil, fmt.Errorf("invalid value %v, expected %s", value, displayName(typ))
	}
	return converted.Interface(), nil
}

// convertToInteger narrows a numeric value to an integer kind with a
// cast-or-fail contract: a conversion that would wrap, change sign or
// (under Strict) drop a fraction is an error, never a silent
// reinterpretation. Verified by converting back and comparing.
func convertToInteger(value any, reflected reflect.Value, typ reflect.Type, opts *Options) (any, error) {
	fail := func() (any, error) {
		return nil, fmt.Errorf("invalid value %v, expected %s", value, displayName(typ))
	}
	if !reflected.CanConvert(typ) {
		return fail()
	}
	converted := reflected.Convert(typ)
	switch {
	case isFloatKind(reflected.Kind()):
		f := reflected.Float()
		if opts.Strict && f != math.Trunc(f) {
			return fail()
		}
		if isUintKind(typ.Kind()) && f < 0 {
			return fail()
		}
		var back float64
		if isIntKind(typ.Kind()) {
			back = float64(converted.Int())
		} else {
			back = float64(converted.Uint())
		}
		if back != math.Trunc(f) {
			return fail()
		}
	case isIntKind(reflected.Kind()):
		i := reflected.Int()
		if isUintKind(typ.Kind()) {
			if i < 0 || converted.Uint() != uint64(i) {
				return fail()
			}
		} else if converted.Int() != i {
			return fail()
		}
	case isUintKind(reflected.Kind()):
		u := reflected.Uint()
		if isIntKind(typ.Kind()) {
			if converted.Int() < 0 || uint64(converted.Int()) != u {
				return fail()
			}
		} else if converted.Uint() != u {
			return fail()
		}
	}
	return converted.Interface(), nil
}

// formatAsString renders a scalar as text, for string-kinded targets.
// Never via Convert, which would read integers as code points.
func formatAsString(reflected reflect.Value, typ reflect.Type) (any, error) {
	var text string
	switch kind := reflected.Kind(); {
	case kind == reflect.Bool:
		text = strconv.FormatBool(reflected.Bool())
	case isIntKind(kind):
		text = strconv.FormatInt(reflected.Int(), 10)
	case isUintKind(kind):
		text = strconv.FormatUint(reflected.Uint(), 10)
	case kind == reflect.Float32:
		// Float widens float32 to float64; bitSize 32 recovers the
		// shortest text for the original value.
		text = strconv.FormatFloat(reflected.Float(), 'g', -1, 32)
	case kind == reflect.Float64:
		text = strconv.FormatFloat(reflected.Float(), 'g', -1, 64)
	default:
		return nil, fmt.Errorf("invalid value %v, expected %s", reflected.Interface(), displayName(typ))
	}
	return reflect.ValueOf(text).Convert(typ).Interface(), nil
}

// primitiveSerializer hands scalars through unchanged, the codec knows
// how to render them.
func primitiveSerializer(obj any, typ reflect.Type, opts *Options) (any, error) {
	return obj, nil
}
