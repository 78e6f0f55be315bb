package tags_test

import (
	"reflect"
	"testing"

	"github.com/cinatic/jsons/tags"
	"gotest.tools/v3/assert"
)

type RandomStruct struct {
	ABC           string  `first:"1,2,3" second:"" third:"abc" fourth:"1,     2,3" fifth:"    abc  " `
	DefaultString string  `default:""`
	DefaultNil    *string `default:"nil"`
	DefaultStruct string  `default:"{}"`
	Repeat        string  `abc:"" abc:""` //lint:ignore SA5008 we're testing for this
	Interesting   string  `default:"abc, def" json:"interesting,omitempty"`
	Hidden        string  `json:"-"`
	Anonymous     string  `json:",omitempty"`
}

func fieldTags(t *testing.T, name string) tags.Tags {
	t.Helper()
	reflectT := reflect.TypeOf(RandomStruct{}) //nolint:exhaustruct
	reflectField, ok := reflectT.FieldByName(name)
	assert.Equal(t, ok, true, "The test struct should have this field")
	parsed, err := tags.Parse(reflectField.Tag)
	assert.NilError(t, err)
	return parsed
}

func TestReadTags(t *testing.T) {
	parsed := fieldTags(t, "ABC")

	first, ok := parsed.Lookup("first")
	if !ok {
		t.Error("Could not find key first")

		return
	}
	assert.DeepEqual(t, first, []string{"1", "2", "3"})

	second, ok := parsed.Lookup("second")
	if !ok {
		t.Error("Could not find key second")

		return
	}
	assert.DeepEqual(t, second, []string{""})

	third, ok := parsed.Lookup("third")
	if !ok {
		t.Error("Could not find key third")

		return
	}
	assert.DeepEqual(t, third, []string{"abc"})

	fourth, ok := parsed.Lookup("fourth")
	if !ok {
		t.Error("Could not find key fourth")

		return
	}
	assert.DeepEqual(t, fourth, []string{"1", "2", "3"})

	fifth, ok := parsed.Lookup("fifth")
	if !ok {
		t.Error("Could not find key fifth")

		return
	}
	assert.DeepEqual(t, fifth, []string{"abc"})

	_, ok = parsed.Lookup("absent")
	if ok {
		t.Error("I should not have found a non-existent key")

		return
	}
}

func TestDefaultString(t *testing.T) {
	parsed := fieldTags(t, "DefaultString")

	defaultValue := parsed.Default()
	assert.Equal(t, *defaultValue, "", "Should return a default tag")
}

func TestDefaultNil(t *testing.T) {
	parsed := fieldTags(t, "DefaultNil")

	defaultValue := parsed.Default()
	assert.Equal(t, *defaultValue, "nil", "Should return a default tag")
}

func TestDefaultStruct(t *testing.T) {
	parsed := fieldTags(t, "DefaultStruct")

	defaultValue := parsed.Default()
	assert.Equal(t, *defaultValue, "{}", "Should return a default tag")
}

// We should fail parsing if the same key appears more than once.
func TestRepeatFails(t *testing.T) {
	reflectT := reflect.TypeOf(RandomStruct{}) //nolint:exhaustruct
	reflectField, _ := reflectT.FieldByName("Repeat")
	_, err := tags.Parse(reflectField.Tag)
	if err == nil {
		t.Error("A key was repeated, we should have failed to parse")

		return
	}
}

// Test meaningful keys.
func TestInteresting(t *testing.T) {
	parsed := fieldTags(t, "Interesting")

	defaultValue := parsed.Default()
	assert.Equal(t, *defaultValue, "abc, def", "Default value should have remained untrimmed")

	name := parsed.Name("json")
	assert.Equal(t, *name, "interesting", "We should have returned the renaming")

	assert.Equal(t, parsed.HasOption("json", "omitempty"), true)
	assert.Equal(t, parsed.HasOption("json", "verbose"), false)
	assert.Equal(t, parsed.IsSkipped("json"), false)
}

func TestSkipped(t *testing.T) {
	parsed := fieldTags(t, "Hidden")

	assert.Equal(t, parsed.IsSkipped("json"), true)
	var nameless *string
	assert.Equal(t, parsed.Name("json"), nameless, "A skipped field has no public name")
}

// An empty positional name keeps the field name while options still apply.
func TestAnonymousName(t *testing.T) {
	parsed := fieldTags(t, "Anonymous")

	var nameless *string
	assert.Equal(t, parsed.Name("json"), nameless)
	assert.Equal(t, parsed.HasOption("json", "omitempty"), true)
	assert.Equal(t, parsed.IsSkipped("json"), false)
}
