// Package tags parses struct field tags into the form used by the
// object converters: a wire name, comma-separated options and a raw
// `default` value.
package tags

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// A representation of the tags for a given field.
type Tags struct {
	tags    map[string][]string
	witness witness
}

// witness rejects Tags values built outside of Parse or Empty.
type witness struct {
	initialized bool
}

func (w witness) assert() {
	if !w.initialized {
		panic("this Tags was not initialized properly, it should be built with Parse or Empty")
	}
}

func Empty() Tags {
	return Tags{
		tags:    make(map[string][]string),
		witness: witness{initialized: true},
	}
}

// Parse the tag associated to a struct field, according to the specs
// of Go tags.
func Parse(tag reflect.StructTag) (Tags, error) {
	tags := make(map[string][]string)
	// Copied and pasted from Go's type.go.
	for tag != "" {
		// Skip leading space.
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			break
		}

		// Scan to colon. A space, a quote or a control character is a syntax error.
		// Strictly speaking, control chars include the range [0x7f, 0x9f], not just
		// [0x00, 0x1f], but in practice, we ignore the multi-byte control characters
		// as it is simpler to inspect the tag's bytes than the tag's runes.
		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			// Give up on parsing.
			break
		}
		name := string(tag[:i])
		if name == "" {
			return Tags{}, errors.New("invalid tag with empty name")
		}
		if _, exists := tags[name]; exists {
			return Tags{}, fmt.Errorf("invalid tag, name %s should only be defined once", name)
		}

		tag = tag[i+1:]

		// Scan quoted string to find value.
		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			break
		}
		qvalue := string(tag[:i+1])
		tag = tag[i+1:]

		list, err := strconv.Unquote(qvalue)
		if err != nil {
			return Tags{}, fmt.Errorf("ill-formed tag %s:\n\t * %w", name, err)
		}

		if name == "default" {
			// Default values may contain commas, don't pre-process.
			tags[name] = []string{list}
			continue
		}
		split := strings.Split(list, ",")
		trimmed := make([]string, 0, len(split))
		for pos, s := range split {
			entry := strings.Trim(s, " ")
			// The first entry is positional (it holds the name, possibly
			// empty), later empty entries carry no information.
			if entry == "" && pos > 0 {
				continue
			}
			trimmed = append(trimmed, entry)
		}
		tags[name] = trimmed
	}
	return Tags{
		tags:    tags,
		witness: witness{initialized: true},
	}, nil
}

// Return the name under which the field travels in serialized form,
// or nil if the tag does not rename it.
//
// e.g. for json, if there's a tag `json:"foo"`, this means
// that the field should be written and matched as `foo`.
func (tags Tags) Name(key string) *string {
	tags.witness.assert()
	result, ok := tags.tags[key]
	if !ok || len(result) == 0 || result[0] == "" || result[0] == "-" {
		return nil
	}
	return &result[0]
}

// Return `true` if the field opts out of conversion entirely under
// this key, i.e. the tag is `key:"-"`.
func (tags Tags) IsSkipped(key string) bool {
	tags.witness.assert()
	result, ok := tags.tags[key]
	return ok && len(result) == 1 && result[0] == "-"
}

// Return `true` if the tag carries the given option after the name,
// e.g. HasOption("json", "omitempty") for `json:"foo,omitempty"`.
func (tags Tags) HasOption(key string, option string) bool {
	tags.witness.assert()
	result, ok := tags.tags[key]
	if !ok || len(result) < 2 {
		return false
	}
	for _, entry := range result[1:] {
		if entry == option {
			return true
		}
	}
	return false
}

// Return the default value that may be used to initialize a
// field if no value is provided.
//
// This is tag `default`.
func (tags Tags) Default() *string {
	tags.witness.assert()
	result, ok := tags.tags["default"]
	if !ok || len(result) == 0 {
		return nil
	}

	return &result[0]
}

// Lookup a key.
func (tags Tags) Lookup(key string) ([]string, bool) {
	tags.witness.assert()
	result, ok := tags.tags[key]
	return result, ok
}
