package jsons

import (
	"fmt"
	"reflect"
)

// pointerSerializer follows non-nil pointers and dumps their target.
func pointerSerializer(obj any, typ reflect.Type, opts *Options) (any, error) {
	reflected := reflect.ValueOf(obj)
	if reflected.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("expected a pointer, got %s", displayName(reflected.Type()))
	}
	if reflected.IsNil() {
		return nil, nil
	}
	return dumpValue(reflected.Elem().Interface(), nil, opts)
}

// pointerDeserializer loads the pointed-to value and returns its
// address. Pointers are transparent to hint tables, the paths of the
// enclosing object keep applying.
func pointerDeserializer(value any, typ reflect.Type, opts *Options) (any, error) {
	loaded, err := loadValue(value, typ.Elem(), "", opts)
	if err != nil {
		return nil, err
	}
	out := reflect.New(typ.Elem())
	if err := assign(out.Elem(), loaded); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}
