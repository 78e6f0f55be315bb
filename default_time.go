package jsons

import (
	"fmt"
	"reflect"
	"time"
)

// time.Time travels as RFC 3339 text, the JSON convention.

var timeType = reflect.TypeOf(time.Time{}) //nolint:exhaustruct

func timeSerializer(obj any, typ reflect.Type, opts *Options) (any, error) {
	t, ok := obj.(time.Time)
	if !ok {
		return nil, fmt.Errorf("expected a time.Time, got %v", obj)
	}
	return t.Format(time.RFC3339Nano), nil
}

func timeDeserializer(value any, typ reflect.Type, opts *Options) (any, error) {
	source, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected the textual form of a timestamp, got %v", value)
	}
	parsed, err := time.Parse(time.RFC3339Nano, source)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q:\n\t * %w", source, err)
	}
	return parsed, nil
}
