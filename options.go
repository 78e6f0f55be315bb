package jsons

import (
	"github.com/cinatic/jsons/codec"
)

// An AttrGetter produces a value for a struct field that is absent from
// the input object.
type AttrGetter func() (any, error)

// Options tune a single call to the conversion engines.
//
// The zero value (and a nil *Options) means: non-strict, default fork,
// default codec, UTF-8, no key transformation. The engines never write
// to an Options value, so the same instance may be shared by concurrent
// calls.
type Options struct {
	// Strict rejects nil input and partially matching objects instead
	// of tolerating them. It also disables the identity short-circuit,
	// so values are rebuilt even when they already have the target type.
	Strict bool

	// The converter namespace to use. nil means the package-level fork.
	Fork *Fork

	// KeyTransformer rewrites object keys: incoming keys before field
	// matching on load, outgoing keys on dump. See the casing package
	// for ready-made transforms.
	KeyTransformer func(string) string

	// AttrGetters provide values for struct fields missing from the
	// input, keyed by Go field name. The produced value is assigned
	// as-is, it does not go through deserialization again, and it only
	// applies to the outermost object being loaded.
	AttrGetters map[string]AttrGetter

	// Verbose records the type of every named struct in the embedded
	// metadata while dumping, so a later Load can rebuild exact types
	// without declarations.
	Verbose bool

	// StripNulls drops object keys whose serialized value is null.
	StripNulls bool

	// The JSON text codec behind Loads, Loadb, Dumps and Dumpb.
	// nil means the codec/fast default.
	Codec codec.Codec

	// IANA name of the character encoding used by Loadb and Dumpb.
	// Empty means UTF-8.
	Encoding string

	// Internal state threaded through recursive conversions.
	hints    map[string]string
	inferred bool
}

// StrictOptions returns options with Strict set and everything else at
// its default.
func StrictOptions() *Options {
	return &Options{Strict: true} //nolint:exhaustruct
}

// norm makes nil options usable.
func (opts *Options) norm() *Options {
	if opts == nil {
		return &Options{} //nolint:exhaustruct
	}
	return opts
}

func (opts *Options) forkInst() *Fork {
	if opts != nil && opts.Fork != nil {
		return opts.Fork
	}
	return defaultFork
}

func (opts *Options) textCodec() codec.Codec {
	if opts != nil && opts.Codec != nil {
		return opts.Codec
	}
	return defaultCodec
}

// child derives the options for a nested conversion: the hint table in
// scope for the nested value and whether its type was inferred rather
// than declared. User-facing knobs carry over unchanged.
func (opts *Options) child(hints map[string]string, inferred bool) *Options {
	next := *opts.norm()
	next.hints = hints
	next.inferred = inferred
	return &next
}
