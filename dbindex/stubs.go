package dbindex

// FMIndex and BidirectionalFMIndex are named in spec.md section 4.C3 as
// alternative backends but, per the spec's scope, are not required to
// have a working implementation; constructing one here is an honest
// IndexError rather than a silent fallback to saindex.

// FMIndex is the FM-index backend placeholder.
type FMIndex struct{}

// NewFMIndex always returns an IndexError: the FM-index backend is not
// implemented.
func NewFMIndex() (*FMIndex, error) {
	return nil, ErrNotImplemented
}

// Seeds implements Index by always failing, so a caller that somehow
// obtains an FMIndex value without going through NewFMIndex still gets a
// well-formed error instead of a nil-pointer panic.
func (*FMIndex) Seeds(query []byte, minLen int) ([]Seed, error) {
	return nil, ErrNotImplemented
}

// BidirectionalFMIndex is the bidirectional FM-index backend placeholder.
type BidirectionalFMIndex struct{}

// NewBidirectionalFMIndex always returns an IndexError: the bidirectional
// FM-index backend is not implemented.
func NewBidirectionalFMIndex() (*BidirectionalFMIndex, error) {
	return nil, ErrNotImplemented
}

// Seeds implements Index by always failing.
func (*BidirectionalFMIndex) Seeds(query []byte, minLen int) ([]Seed, error) {
	return nil, ErrNotImplemented
}
