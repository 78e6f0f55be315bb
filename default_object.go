package jsons

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/cinatic/jsons/tags"
)

// The tag key the object converters honor, compatible with
// encoding/json: renaming, "-" to skip a field, the omitempty option.
const tagKey = "json"

// A type that needs setup before its fields are filled in.
//
// When *T implements Initializer, the object deserializer calls
// Initialize on the freshly allocated value before reading any input.
// This is the place to give default values to fields the input may not
// cover, including unexported ones.
type Initializer interface {
	Initialize() error
}

var initializerInterface = reflect.TypeOf((*Initializer)(nil)).Elem()

// canInterface checks whether a type implements an interface on pointers.
func canInterface(typ reflect.Type, interfaceType reflect.Type) (bool, error) {
	if typ.Implements(interfaceType) {
		return false, fmt.Errorf("type %s implements %s - it should be implemented by pointer type *%s instead", typ, interfaceType, typ)
	}
	if reflect.PointerTo(typ).Implements(interfaceType) {
		return true, nil
	}
	return false, nil
}

// An objectField is one slot of the flattened struct layout: anonymous
// embedded structs contribute their exported fields to the enclosing
// object, unless a tag renames the embedded struct itself.
type objectField struct {
	name      string // Go field name
	key       string // wire name, after tag renaming
	index     []int  // FieldByIndex path from the outer struct
	typ       reflect.Type
	tags      tags.Tags
	skipped   bool
	omitEmpty bool
}

func objectFields(typ reflect.Type) ([]objectField, error) {
	return appendFields(nil, typ, nil)
}

func appendFields(out []objectField, typ reflect.Type, index []int) ([]objectField, error) {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		parsed, err := tags.Parse(field.Tag)
		if err != nil {
			return nil, fmt.Errorf("failed to parse the tags of %s.%s:\n\t * %w", displayName(typ), field.Name, err)
		}
		chain := make([]int, 0, len(index)+1)
		chain = append(append(chain, index...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct &&
			parsed.Name(tagKey) == nil && !parsed.IsSkipped(tagKey) {
			out, err = appendFields(out, field.Type, chain)
			if err != nil {
				return nil, err
			}
			continue
		}

		key := field.Name
		if name := parsed.Name(tagKey); name != nil {
			key = *name
		}
		out = append(out, objectField{
			name:      field.Name,
			key:       key,
			index:     chain,
			typ:       field.Type,
			tags:      parsed,
			skipped:   parsed.IsSkipped(tagKey),
			omitEmpty: parsed.HasOption(tagKey, "omitempty"),
		})
	}
	return out, nil
}

// objectDeserializer rebuilds a struct from a JSON object. Per field,
// in order: the input value under the field's wire name, then an
// attribute getter, then the `default` tag. Strict turns a field left
// over after that into an error, as well as any input key the struct
// has no field for.
func objectDeserializer(value any, typ reflect.Type, opts *Options) (any, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("invalid target %s, expected a struct type", displayName(typ))
	}
	inMap, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object of type %s, got %v", displayName(typ), value)
	}
	if opts.KeyTransformer != nil {
		transformed := make(map[string]any, len(inMap))
		for key, entry := range inMap {
			transformed[opts.KeyTransformer(key)] = entry
		}
		inMap = transformed
	}

	fields, err := objectFields(typ)
	if err != nil {
		return nil, err
	}

	resultPtr := reflect.New(typ)
	result := resultPtr.Elem()

	canInitialize, err := canInterface(typ, initializerInterface)
	if err != nil {
		return nil, err
	}
	if canInitialize {
		if err := resultPtr.Interface().(Initializer).Initialize(); err != nil {
			err = fmt.Errorf("encountered an error while initializing %s:\n\t * %w", displayName(typ), err)
			slog.Error("internal error during deserialization", "error", err)
			return nil, CustomConverterError{Operation: "initialize", Wrapped: err}
		}
	}

	// The reserved metadata key was consumed during type resolution. It
	// stays in the input, we only refrain from flagging it.
	consumed := map[string]bool{metaKey: true}
	fieldNames := make(map[string]bool, len(fields))

	for _, field := range fields {
		fieldNames[field.name] = true
		slot := result.FieldByIndex(field.index)

		raw, present := inMap[field.key]
		if field.skipped {
			present = false
		} else {
			consumed[field.key] = true
		}

		switch {
		case present:
			childOpts := opts.child(rerootClasses(opts.hints, field.key), opts.inferred)
			childOpts.AttrGetters = nil
			loaded, err := loadValue(raw, field.typ, "", childOpts)
			if err != nil {
				return nil, fmt.Errorf("at %s.%s:\n\t * %w", displayName(typ), field.name, err)
			}
			if err := assign(slot, loaded); err != nil {
				return nil, fmt.Errorf("at %s.%s:\n\t * %w", displayName(typ), field.name, err)
			}
		case opts.AttrGetters[field.name] != nil:
			produced, err := opts.AttrGetters[field.name]()
			if err != nil {
				err = fmt.Errorf("error in the attribute getter for %s.%s:\n\t * %w", displayName(typ), field.name, err)
				slog.Error("internal error during deserialization", "error", err)
				return nil, CustomConverterError{Operation: "attribute getter", Wrapped: err}
			}
			if err := assign(slot, produced); err != nil {
				return nil, fmt.Errorf("at %s.%s:\n\t * %w", displayName(typ), field.name, err)
			}
		case field.tags.Default() != nil:
			if err := applyDefault(slot, field, *field.tags.Default(), opts); err != nil {
				return nil, fmt.Errorf("at %s.%s:\n\t * %w", displayName(typ), field.name, err)
			}
		case opts.Strict && !field.skipped:
			return nil, UnfulfilledFieldError{Field: field.key, Value: value, Target: typ}
		}
	}

	if opts.Strict {
		if key, ok := firstUnknownKey(inMap, consumed); ok {
			return nil, UnexpectedFieldError{Field: key, Value: value, Target: typ}
		}
		if name, ok := firstUnknownKey(opts.AttrGetters, fieldNames); ok {
			return nil, UnexpectedFieldError{Field: name, Value: value, Target: typ}
		}
	}
	return result.Interface(), nil
}

// firstUnknownKey returns the smallest key of entries that known does
// not list, so the field reported for surplus input does not depend on
// map iteration order.
func firstUnknownKey[V any](entries map[string]V, known map[string]bool) (string, bool) {
	found := ""
	ok := false
	for key := range entries {
		if known[key] {
			continue
		}
		if !ok || key < found {
			found = key
			ok = true
		}
	}
	return found, ok
}

// applyDefault fills a slot from a `default` tag. Scalars go through
// the textual parsers; composites accept the empty literals "{}", "[]"
// and "nil". A struct default deserializes the empty object, so nested
// `default` tags and Initialize hooks still apply.
func applyDefault(slot reflect.Value, field objectField, source string, opts *Options) error {
	switch field.typ.Kind() {
	case reflect.Struct:
		if source != "{}" {
			return fmt.Errorf("invalid `default` value %q, the only supported value for an object is \"{}\"", source)
		}
		childOpts := opts.child(nil, false)
		childOpts.AttrGetters = nil
		loaded, err := loadValue(map[string]any{}, field.typ, "", childOpts)
		if err != nil {
			return err
		}
		return assign(slot, loaded)
	case reflect.Map:
		if source != "{}" {
			return fmt.Errorf("invalid `default` value %q, the only supported value for a map is \"{}\"", source)
		}
		slot.Set(reflect.MakeMap(field.typ))
		return nil
	case reflect.Slice:
		if source != "[]" {
			return fmt.Errorf("invalid `default` value %q, the only supported value for a slice is \"[]\"", source)
		}
		slot.Set(reflect.MakeSlice(field.typ, 0, 0))
		return nil
	case reflect.Pointer, reflect.Interface:
		if source != "nil" {
			return fmt.Errorf("invalid `default` value %q, the only supported value for a pointer is \"nil\"", source)
		}
		return nil
	default:
		parser := lookupParser(field.typ)
		if parser == nil {
			return fmt.Errorf("no parser to build a default value of type %s", displayName(field.typ))
		}
		parsed, err := parser(source)
		if err != nil {
			return fmt.Errorf("cannot parse the default value %q:\n\t * %w", source, err)
		}
		return assign(slot, parsed)
	}
}

// objectSerializer dumps the exported fields of a struct, recursing
// into the values and collecting type metadata along the way: the
// runtime type behind every interface-typed field, the runtime type
// behind a DumpAs override, and, with Verbose, the type of the object
// itself. Collected metadata lands under the reserved key of the
// outermost object.
func objectSerializer(obj any, typ reflect.Type, opts *Options) (any, error) {
	reflected := reflect.ValueOf(obj)
	if reflected.Kind() == reflect.Pointer {
		if reflected.IsNil() {
			return nil, nil
		}
		reflected = reflected.Elem()
	}
	if reflected.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct, got %s", displayName(reflected.Type()))
	}
	override := typ != reflected.Type()

	fields, err := objectFields(typ)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(fields))
	classes := make(map[string]string)

	for _, field := range fields {
		if field.skipped {
			continue
		}
		var slot reflect.Value
		if override {
			// Fields of the override are read off the value by name, the
			// runtime type may lay them out differently.
			slot = reflected.FieldByName(field.name)
			if !slot.IsValid() {
				return nil, fmt.Errorf("cannot serialize as %s: the value has no field %s", displayName(typ), field.name)
			}
		} else {
			slot = reflected.FieldByIndex(field.index)
		}

		if field.omitEmpty && isEmptyValue(slot) {
			continue
		}

		key := field.key
		if opts.KeyTransformer != nil {
			key = opts.KeyTransformer(key)
		}
		if _, taken := out[key]; taken {
			continue
		}

		raw := slot.Interface()
		dumped, err := dumpValue(raw, nil, opts)
		if err != nil {
			return nil, fmt.Errorf("at %s.%s:\n\t * %w", displayName(typ), field.name, err)
		}
		if dumped == nil && opts.StripNulls {
			continue
		}

		// Under an override the slot may be concrete while the declared
		// field is an interface, so the nil checks stay off the slot.
		// A null never consults a hint.
		if field.typ.Kind() == reflect.Interface && field.typ != anyType && raw != nil && dumped != nil {
			recordRuntimeType(classes, "/"+field.key, reflect.TypeOf(raw))
		}
		if objectRendered(raw) {
			hoistMeta(classes, field.key, dumped)
		}
		out[key] = dumped
	}

	if override {
		recordRuntimeType(classes, "/", reflected.Type())
	} else if opts.Verbose {
		if _, taken := classes["/"]; !taken {
			recordRuntimeType(classes, "/", typ)
		}
	}

	embedMeta(out, classes)
	return out, nil
}

// recordRuntimeType writes the canonical name of a concrete type into a
// hint table. Pointers are dereferenced, names are announced for the
// pointed-to type; unnamed types have no canonical name to record.
func recordRuntimeType(classes map[string]string, path string, typ reflect.Type) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Name() == "" {
		return
	}
	classes[path] = canonicalName(typ)
}

// isEmptyValue mirrors the encoding/json notion of emptiness for the
// omitempty option.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	default:
		return false
	}
}

// assign stores a loaded value into a settable slot, converting when
// the static types differ, e.g. a hinted concrete value going into an
// interface-typed slot.
func assign(dst reflect.Value, value any) error {
	if value == nil {
		dst.SetZero()
		return nil
	}
	reflected := reflect.ValueOf(value)
	if reflected.Type().AssignableTo(dst.Type()) {
		dst.Set(reflected)
		return nil
	}
	if reflected.CanConvert(dst.Type()) {
		dst.Set(reflected.Convert(dst.Type()))
		return nil
	}
	// An interface satisfied through the pointer type only.
	if dst.Kind() == reflect.Interface && reflect.PointerTo(reflected.Type()).Implements(dst.Type()) {
		boxed := reflect.New(reflected.Type())
		boxed.Elem().Set(reflected)
		dst.Set(boxed)
		return nil
	}
	return fmt.Errorf("cannot use a value of type %s as %s", displayName(reflected.Type()), displayName(dst.Type()))
}
