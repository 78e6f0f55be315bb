// Package casing provides the key transforms commonly paired with the
// KeyTransformer option: camelCase, snake_case, PascalCase and lisp-case.
//
// Each transform accepts keys written in any of the other styles, so a
// value dumped with one transform can be loaded back with its inverse
// direction applied.
package casing

import (
	"strings"
	"unicode"
)

// Camel transforms a key into camelCase, e.g. "my_name" or "my-name"
// becomes "myName".
func Camel(key string) string {
	if key == "" {
		return key
	}
	key = strings.ReplaceAll(key, "-", "_")
	parts := strings.Split(key, "_")
	if len(parts) > 1 {
		var out strings.Builder
		for _, part := range parts {
			out.WriteString(capitalize(part))
		}
		key = out.String()
	}
	return lowerFirst(key)
}

// Pascal transforms a key into PascalCase, e.g. "my_name" becomes
// "MyName". Useful to match Go field names directly.
func Pascal(key string) string {
	return upperFirst(Camel(key))
}

// Snake transforms a key into snake_case, e.g. "myName" or "my-name"
// becomes "my_name".
func Snake(key string) string {
	if key == "" {
		return key
	}
	runes := []rune(strings.ReplaceAll(key, "-", "_"))
	runes[0] = unicode.ToLower(runes[0])
	var out strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			out.WriteByte('_')
		}
		out.WriteRune(unicode.ToLower(r))
	}
	return out.String()
}

// Lisp transforms a key into lisp-case, e.g. "myName" becomes "my-name".
func Lisp(key string) string {
	return strings.ReplaceAll(Snake(key), "_", "-")
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(part string) string {
	if part == "" {
		return part
	}
	runes := []rune(part)
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

func lowerFirst(key string) string {
	if key == "" {
		return key
	}
	runes := []rune(key)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func upperFirst(key string) string {
	if key == "" {
		return key
	}
	runes := []rune(key)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
