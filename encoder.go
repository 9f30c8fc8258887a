package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQueue is returned by a pop on an empty queue. It signals a bug
	// in the build loop, never a property of the input.
	ErrEmptyQueue = errors.New("huffman: pop from empty queue")
	// ErrEmptyAlphabet indicates a histogram without any non-zero count.
	ErrEmptyAlphabet = errors.New("huffman: no symbols to build a tree from")
	// ErrSymbolNotInTree indicates a code request for a symbol that did not
	// occur in the histogram the current tree was built from.
	ErrSymbolNotInTree = errors.New("huffman: symbol not in tree")
	// ErrCapacityExceeded indicates an alphabet larger than the fixed arrays.
	ErrCapacityExceeded = errors.New("huffman: alphabet exceeds capacity")
	// ErrSymbolRange indicates input bytes outside the configured alphabet.
	ErrSymbolRange = errors.New("huffman: symbol outside alphabet")
	// ErrBadVersion indicates the serialized histogram version is not supported.
	ErrBadVersion = errors.New("huffman: unsupported histogram version")
	// ErrCorruptHistogram indicates serialized entries that are repeated, out
	// of order or zero.
	ErrCorruptHistogram = errors.New("huffman: corrupt histogram")
)

// Encoder owns the histogram, the queue, the tree arena and the bit buffer
// of one encode pass. All of its tables are fixed arrays allocated with the
// Encoder; building a tree never allocates.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	hist  Histogram
	queue queue
	tree  tree
	bits  *BitBuffer
	path  Code // scratch for Encode, capacity covers the deepest possible code
}

// NewEncoder returns an Encoder for an alphabet of alphabetSize symbols
// (symbols 0..alphabetSize-1).
func NewEncoder(alphabetSize int) (*Encoder, error) {
	if alphabetSize < 1 || alphabetSize > MaxAlphabetSize {
		return nil, fmt.Errorf("%w: %d symbols, at most %d supported", ErrCapacityExceeded, alphabetSize, MaxAlphabetSize)
	}
	return &Encoder{
		hist: newHistogram(alphabetSize),
		tree: newTree(alphabetSize),
		bits: NewBitBuffer(),
		path: make(Code, 0, MaxAlphabetSize),
	}, nil
}

// AlphabetSize returns the number of symbols the Encoder was created for.
func (e *Encoder) AlphabetSize() int { return e.tree.size }

// Reset clears the histogram, the tree and any pending bits.
func (e *Encoder) Reset() {
	e.hist.Reset()
	e.queue.reset()
	e.tree.reset()
	e.bits.Reset()
}

// Histogram returns the Encoder's histogram. Changing it invalidates the
// current tree until the next BuildTree.
func (e *Encoder) Histogram() *Histogram { return &e.hist }

// Accumulate counts the bytes of p. Unlike Histogram.Accumulate it checks the
// whole input first and returns ErrSymbolRange, leaving the counts untouched,
// if any byte is outside the alphabet.
func (e *Encoder) Accumulate(p []byte) error {
	if e.hist.size < MaxAlphabetSize {
		for i, b := range p {
			if int(b) >= e.hist.size {
				return fmt.Errorf("%w: %#04x at offset %d, alphabet of %d", ErrSymbolRange, b, i, e.hist.size)
			}
		}
	}
	e.hist.Accumulate(p)
	return nil
}

// BuildTree builds the code tree from the current histogram.
func (e *Encoder) BuildTree() error {
	if e.hist.size != e.tree.size {
		e.tree.reset()
		return fmt.Errorf("%w: histogram of %d symbols, tree of %d", ErrCapacityExceeded, e.hist.size, e.tree.size)
	}
	return e.tree.build(&e.hist, &e.queue)
}

// Leaves returns the number of symbols in the current tree.
func (e *Encoder) Leaves() int {
	if !e.tree.built() {
		return 0
	}
	return e.tree.leaves
}

// PathForSymbol returns a newly allocated copy of the code of sym.
func (e *Encoder) PathForSymbol(sym int) (Code, error) {
	return e.tree.appendPath(nil, sym)
}

// AppendPath appends the code of sym to dst and returns the extended slice.
// dst is returned unchanged on error.
func (e *Encoder) AppendPath(dst Code, sym int) (Code, error) {
	return e.tree.appendPath(dst, sym)
}

// EncodeWithTree packs the codes of input against the current tree without
// touching the histogram. Every byte of input must be in the tree.
func (e *Encoder) EncodeWithTree(input []byte) ([]byte, error) {
	if !e.tree.built() {
		return nil, ErrEmptyAlphabet
	}
	e.bits.Reset()
	for _, b := range input {
		var err error
		e.path, err = e.tree.appendPath(e.path[:0], int(b))
		if err != nil {
			e.bits.Reset()
			return nil, err
		}
		e.bits.AppendBits(e.path)
	}
	return e.bits.Flush()
}

// Encode resets the Encoder, counts input, builds its tree and returns input
// packed with the resulting codes. Empty input yields ErrEmptyAlphabet.
func (e *Encoder) Encode(input []byte) ([]byte, error) {
	e.Reset()
	if err := e.Accumulate(input); err != nil {
		return nil, err
	}
	if err := e.BuildTree(); err != nil {
		return nil, err
	}
	return e.EncodeWithTree(input)
}

// EncodedSize returns the number of bytes Encode would produce for the
// current tree and histogram.
func (e *Encoder) EncodedSize() (int, error) {
	if !e.tree.built() {
		return 0, ErrEmptyAlphabet
	}
	var bits uint64
	for sym := 0; ; sym++ {
		count := e.hist.next(&sym)
		if count == 0 {
			break
		}
		var err error
		e.path, err = e.tree.appendPath(e.path[:0], sym)
		if err != nil {
			return 0, err
		}
		bits += count * uint64(len(e.path))
	}
	return int((bits + 7) >> 3), nil
}
