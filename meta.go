package jsons

import (
	"reflect"
	"strings"
)

// Serialized objects may carry their own type information under a
// reserved key, so that a later Load can rebuild exact types without
// declarations:
//
//	{
//	    "slot": {"count": 4, "battery": 100},
//	    "-meta": {"classes": {"/slot": "garage.electriccar"}}
//	}
//
// The "classes" entry maps attribute paths to canonical type names:
// "/" is the object itself, "/slot" a field, "/slot/engine" a field of
// that field. Only the outermost object of a dump carries the key,
// nested tables are hoisted into it.
const (
	metaKey    = "-meta"
	classesKey = "classes"
)

// metaClasses extracts the embedded path-to-type-name table of a value,
// without modifying the value. Returns nil when there is none.
func metaClasses(value any) map[string]string {
	dict, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	meta, ok := dict[metaKey].(map[string]any)
	if !ok {
		return nil
	}
	table, ok := meta[classesKey].(map[string]any)
	if !ok {
		return nil
	}
	classes := make(map[string]string, len(table))
	for path, name := range table {
		if s, ok := name.(string); ok {
			classes[path] = s
		}
	}
	return classes
}

// rerootClasses narrows a hint table to the given attribute: "/key"
// becomes "/", "/key/x" becomes "/x", entries for other attributes are
// dropped. Returns nil when nothing remains in scope.
func rerootClasses(classes map[string]string, key string) map[string]string {
	if len(classes) == 0 {
		return nil
	}
	prefix := "/" + key
	var child map[string]string
	for path, name := range classes {
		var rerooted string
		switch {
		case path == prefix:
			rerooted = "/"
		case strings.HasPrefix(path, prefix+"/"):
			rerooted = path[len(prefix):]
		default:
			continue
		}
		if child == nil {
			child = make(map[string]string)
		}
		child[rerooted] = name
	}
	return child
}

// objectRendered reports whether a value dumps through the object
// serializer: a struct, possibly behind pointers. Only such children
// may have their metadata hoisted; a map-shaped child is copied from
// user data, and a "-meta" entry in it is data, not metadata.
func objectRendered(raw any) bool {
	typ := reflect.TypeOf(raw)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ != nil && typ.Kind() == reflect.Struct
}

// hoistMeta moves the metadata of a freshly serialized child object
// into the parent table, prefixing its paths with the child's key. The
// caller only passes children of struct origin, so deleting the
// metadata key touches no user data.
func hoistMeta(classes map[string]string, key string, child any) {
	dict, ok := child.(map[string]any)
	if !ok {
		return
	}
	meta, ok := dict[metaKey].(map[string]any)
	if !ok {
		return
	}
	if table, ok := meta[classesKey].(map[string]any); ok {
		for path, name := range table {
			s, ok := name.(string)
			if !ok {
				continue
			}
			if path == "/" {
				classes["/"+key] = s
			} else {
				classes["/"+key+path] = s
			}
		}
	}
	delete(dict, metaKey)
}

// embedMeta writes a non-empty hint table into a serialized object.
func embedMeta(out map[string]any, classes map[string]string) {
	if len(classes) == 0 {
		return
	}
	table := make(map[string]any, len(classes))
	for path, name := range classes {
		table[path] = name
	}
	out[metaKey] = map[string]any{classesKey: table}
}
