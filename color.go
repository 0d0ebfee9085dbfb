package tricolor

// color is the on-disk mark-sweep state of an allocation. The zero value
// is White, matching a freshly allocated header. colorGrey is storable
// and is carried only while a header sits on the grey worklist: from
// being pushed until its trace call returns, or, after a trace that
// panicked, until the next Mark drains it. After a completed Mark every
// grey entry has been drained back to black, and a header sweep finds
// still carrying colorGrey is reported as an engine fault, not treated
// as a valid on-disk state (§4.4, "Grey Encoding").
type color uintptr

const (
	colorWhite color = iota
	colorWhiteWeak
	colorBlack
	colorGrey
)

func (c color) String() string {
	switch c {
	case colorWhite:
		return "white"
	case colorWhiteWeak:
		return "white-weak"
	case colorBlack:
		return "black"
	case colorGrey:
		return "grey"
	default:
		return "invalid-color"
	}
}
