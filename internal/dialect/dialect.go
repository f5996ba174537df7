package dialect

// Kind is the detected flavour of a document.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindStrict
	KindJWCC
	KindRelaxed
)

func (k Kind) String() string {
	switch k {
	case KindStrict:
		return "json"
	case KindJWCC:
		return "jwcc"
	case KindRelaxed:
		return "relaxed"
	default:
		return "invalid"
	}
}
