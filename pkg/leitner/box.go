package leitner

//go:generate go run github.com/dmarkham/enumer -type Box -trimprefix Box -transform lower -yaml -output box.gen.go

// Box is a Leitner box. The zero value is not a valid box.
type Box int

const (
	BoxOne Box = iota + 1
	BoxTwo
	BoxThree
	BoxFour
)

// FirstBox and LastBox bound the valid boxes.
const (
	FirstBox = BoxOne
	LastBox  = BoxFour
)

// Promote returns the box a card moves to after a correct answer.
func (b Box) Promote() Box {
	if b >= LastBox {
		return LastBox
	}
	return b.Clamp() + 1
}

// Clamp forces out-of-range values into the valid box range.
func (b Box) Clamp() Box {
	switch {
	case b < FirstBox:
		return FirstBox
	case b > LastBox:
		return LastBox
	default:
		return b
	}
}
