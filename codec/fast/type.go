package fast

// The codec picked by this package for the current build target.
type CodecType int

const (
	CodecTypeSonic CodecType = iota
	CodecTypeGoJSON
)

func (t CodecType) Name() string {
	switch t {
	case CodecTypeSonic:
		return "sonic"
	case CodecTypeGoJSON:
		return "go-json"
	default:
		return "unknown"
	}
}
