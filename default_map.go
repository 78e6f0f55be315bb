package jsons

import (
	"fmt"
	"reflect"
)

// dictSerializer dumps maps. Non-string keys are rendered with their
// natural textual form, JSON objects only have string keys.
func dictSerializer(obj any, typ reflect.Type, opts *Options) (any, error) {
	reflected := reflect.ValueOf(obj)
	if reflected.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected a map, got %s", displayName(reflected.Type()))
	}
	out := make(map[string]any, reflected.Len())
	iter := reflected.MapRange()
	for iter.Next() {
		dumped, err := dumpValue(iter.Value().Interface(), nil, opts)
		if err != nil {
			return nil, err
		}
		if dumped == nil && opts.StripNulls {
			continue
		}
		out[mapKey(iter.Key())] = dumped
	}
	return out, nil
}

func mapKey(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}
	return fmt.Sprint(key.Interface())
}

// dictDeserializer rebuilds a string-keyed map, loading each value as
// the declared element type. Unlike objects, maps give the reserved
// metadata key no special treatment, a map may legitimately contain it.
func dictDeserializer(value any, typ reflect.Type, opts *Options) (any, error) {
	if typ.Key().Kind() != reflect.String {
		return nil, fmt.Errorf("invalid target %s, only string-keyed maps can be loaded", displayName(typ))
	}
	input := reflect.ValueOf(value)
	if input.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected an object, got %v", value)
	}

	elemType := typ.Elem()
	var declared reflect.Type
	if elemType != anyType {
		declared = elemType
	}
	elemOpts := opts.child(nil, opts.inferred)

	out := reflect.MakeMapWithSize(typ, input.Len())
	iter := input.MapRange()
	for iter.Next() {
		if iter.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("expected string keys, got %v", iter.Key().Interface())
		}
		key := iter.Key().String()
		loaded, err := loadValue(iter.Value().Interface(), declared, "", elemOpts)
		if err != nil {
			return nil, fmt.Errorf("at key %q:\n\t * %w", key, err)
		}
		slot := reflect.New(elemType).Elem()
		if err := assign(slot, loaded); err != nil {
			return nil, fmt.Errorf("at key %q:\n\t * %w", key, err)
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(typ.Key()), slot)
	}
	return out.Interface(), nil
}
