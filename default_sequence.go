package jsons

import (
	"fmt"
	"reflect"
)

// listSerializer dumps slices and arrays element by element.
func listSerializer(obj any, typ reflect.Type, opts *Options) (any, error) {
	reflected := reflect.ValueOf(obj)
	if kind := reflected.Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, fmt.Errorf("expected an array or a slice, got %s", displayName(reflected.Type()))
	}
	out := make([]any, reflected.Len())
	for i := 0; i < reflected.Len(); i++ {
		dumped, err := dumpValue(reflected.Index(i).Interface(), nil, opts)
		if err != nil {
			return nil, err
		}
		out[i] = dumped
	}
	return out, nil
}

// listDeserializer rebuilds a slice, loading each element as the
// declared element type. With a []any target the elements keep
// inferring their types, so metadata embedded in them still applies.
func listDeserializer(value any, typ reflect.Type, opts *Options) (any, error) {
	input := reflect.ValueOf(value)
	if kind := input.Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, fmt.Errorf("expected an array, got %v", value)
	}
	out := reflect.MakeSlice(typ, input.Len(), input.Len())
	if err := loadElements(out, input, typ.Elem(), opts); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// tupleDeserializer rebuilds a fixed-length array. The input must have
// exactly the right number of elements.
func tupleDeserializer(value any, typ reflect.Type, opts *Options) (any, error) {
	input := reflect.ValueOf(value)
	if kind := input.Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, fmt.Errorf("expected an array, got %v", value)
	}
	if input.Len() != typ.Len() {
		return nil, fmt.Errorf("invalid array length, expecting %d, got %d", typ.Len(), input.Len())
	}
	out := reflect.New(typ).Elem()
	if err := loadElements(out, input, typ.Elem(), opts); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// loadElements fills an indexable destination. Elements do not inherit
// the hint table of the enclosing object, paths do not reach through
// collections; metadata embedded in the elements themselves still wins.
func loadElements(out reflect.Value, input reflect.Value, elemType reflect.Type, opts *Options) error {
	var declared reflect.Type
	if elemType != anyType {
		declared = elemType
	}
	elemOpts := opts.child(nil, opts.inferred)
	for i := 0; i < input.Len(); i++ {
		loaded, err := loadValue(input.Index(i).Interface(), declared, "", elemOpts)
		if err != nil {
			return fmt.Errorf("at index %d:\n\t * %w", i, err)
		}
		if err := assign(out.Index(i), loaded); err != nil {
			return fmt.Errorf("at index %d:\n\t * %w", i, err)
		}
	}
	return nil
}
