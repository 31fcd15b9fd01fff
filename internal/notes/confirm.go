package notes

// Confirmer decides whether a removal goes ahead.
type Confirmer interface {
	ConfirmRemove(index int, n Note) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(index int, n Note) bool

func (f ConfirmFunc) ConfirmRemove(index int, n Note) bool {
	return f(index, n)
}

// Answer is a Confirmer whose decision was already made, e.g. by a modal
// that resolved before the removal was issued.
type Answer bool

func (a Answer) ConfirmRemove(int, Note) bool {
	return bool(a)
}
