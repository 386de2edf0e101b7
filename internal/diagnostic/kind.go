package diagnostic

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a generation error.
type Kind int

const (
	_ Kind = iota // zero value is not a valid kind

	MalformedAttribute // directive text does not match the keyed-list grammar
	UnknownOption      // key not recognized by the consuming synthesizer
	InvalidOptionType  // recognized key holding a value of the wrong kind
	UnsupportedShape   // annotated type is not a struct with named fields
	NameCollision      // generated name would clash with the field itself
	InvalidConfig      // settings file failed to load or validate
)

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrMalformedAttribute = &Error{Kind: MalformedAttribute}
	ErrUnknownOption      = &Error{Kind: UnknownOption}
	ErrInvalidOptionType  = &Error{Kind: InvalidOptionType}
	ErrUnsupportedShape   = &Error{Kind: UnsupportedShape}
	ErrNameCollision      = &Error{Kind: NameCollision}
	ErrInvalidConfig      = &Error{Kind: InvalidConfig}
)
