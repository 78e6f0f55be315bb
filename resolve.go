package jsons

import (
	"fmt"
	"reflect"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// normalizeTarget validates the target argument of Load and friends:
// nil, a reflect.Type, or a type name as a forward reference.
func normalizeTarget(target any) (reflect.Type, string, error) {
	switch t := target.(type) {
	case nil:
		return nil, "", nil
	case reflect.Type:
		return t, "", nil
	case string:
		return nil, t, nil
	default:
		return nil, "", InvalidInputError{
			Value:  target,
			Target: nil,
			Reason: fmt.Sprintf("invalid target of type %s: expected nil, a reflect.Type or a type name", displayName(reflect.TypeOf(target))),
		}
	}
}

// jsonCompatible reports whether a runtime kind can come out of a JSON
// document.
func jsonCompatible(kind reflect.Kind) bool {
	switch kind {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

// A resolution is the outcome of reconciling the declared target type,
// the embedded metadata and the runtime shape of a value.
type resolution struct {
	// The winning type.
	typ reflect.Type

	// The hint table in scope for this value, for its fields to consult.
	classes map[string]string

	// Whether the winner was inferred rather than declared. Inferred
	// types stay open to revision by metadata further down.
	inferred bool
}

// resolveType picks the type a value is loaded as.
//
// A concrete declared type wins outright. Ambiguous declarations yield
// to a resolvable metadata hint: a string forward reference, an
// interface type (the hint must name an implementation), a missing
// declaration, or a type that was itself inferred upstream. The runtime
// type of the value is the last resort.
func resolveType(value any, declared reflect.Type, declaredName string, opts *Options, fork *Fork) (resolution, error) {
	classes := metaClasses(value)
	if classes == nil {
		classes = opts.hints
	}
	hintName := classes["/"]

	hinted := func() (reflect.Type, error) {
		typ, ok := fork.resolveName(hintName)
		if !ok {
			return nil, UnknownTypeError{Name: hintName}
		}
		return typ, nil
	}

	switch {
	case declaredName != "":
		base, ok := fork.resolveName(declaredName)
		if !ok {
			return resolution{}, UnknownTypeError{Name: declaredName} //nolint:exhaustruct
		}
		if hintName != "" {
			typ, err := hinted()
			if err != nil {
				return resolution{}, err //nolint:exhaustruct
			}
			return resolution{typ: typ, classes: classes, inferred: typ != base}, nil
		}
		return resolution{typ: base, classes: classes, inferred: false}, nil

	case declared == nil:
		if hintName != "" {
			typ, err := hinted()
			if err != nil {
				return resolution{}, err //nolint:exhaustruct
			}
			return resolution{typ: typ, classes: classes, inferred: true}, nil
		}
		return resolution{typ: reflect.TypeOf(value), classes: classes, inferred: true}, nil

	case declared.Kind() == reflect.Interface:
		if hintName != "" {
			typ, err := hinted()
			if err != nil {
				return resolution{}, err //nolint:exhaustruct
			}
			if typ.Implements(declared) || reflect.PointerTo(typ).Implements(declared) {
				return resolution{typ: typ, classes: classes, inferred: true}, nil
			}
			return resolution{}, InvalidInputError{ //nolint:exhaustruct
				Value:  value,
				Target: declared,
				Reason: fmt.Sprintf("the embedded metadata names %s, which does not implement %s", displayName(typ), displayName(declared)),
			}
		}
		return resolution{typ: declared, classes: classes, inferred: false}, nil

	case opts.inferred && hintName != "":
		typ, err := hinted()
		if err != nil {
			return resolution{}, err //nolint:exhaustruct
		}
		return resolution{typ: typ, classes: classes, inferred: typ != declared}, nil

	default:
		return resolution{typ: declared, classes: classes, inferred: false}, nil
	}
}
