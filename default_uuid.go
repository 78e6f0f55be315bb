package jsons

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// uuid.UUID travels in its canonical textual form.

var uuidType = reflect.TypeOf(uuid.UUID{})

func uuidSerializer(obj any, typ reflect.Type, opts *Options) (any, error) {
	id, ok := obj.(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("expected a uuid.UUID, got %v", obj)
	}
	return id.String(), nil
}

func uuidDeserializer(value any, typ reflect.Type, opts *Options) (any, error) {
	source, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected the textual form of a uuid, got %v", value)
	}
	parsed, err := uuid.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid uuid %q:\n\t * %w", source, err)
	}
	return parsed, nil
}
