package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// histVersion tags the serialized histogram layout.
const histVersion uint64 = 20220218

// Histogram counts how often each symbol of the alphabet occurs.
//
// Counts only grow; Reset is the only way back to zero. The table is a fixed
// array sized for MaxAlphabetSize regardless of the configured alphabet, so a
// Histogram never allocates. The zero value has an empty alphabet; obtain one
// from an Encoder or fill it with ReadFrom.
type Histogram struct {
	counts [MaxAlphabetSize]uint64
	size   int // configured alphabet size, 1..MaxAlphabetSize
}

// newHistogram returns an empty histogram over size symbols.
// The caller validates size.
func newHistogram(size int) Histogram {
	return Histogram{size: size}
}

// Accumulate adds one to the count of every byte in p.
// A byte outside the alphabet is a programming error and panics; use
// Encoder.Accumulate for untrusted input.
func (h *Histogram) Accumulate(p []byte) {
	for _, b := range p {
		if int(b) >= h.size {
			panic(fmt.Sprintf("huffman: symbol %#04x outside alphabet of %d", b, h.size))
		}
		h.counts[b]++
	}
}

// Reset zeroes every count.
func (h *Histogram) Reset() {
	h.counts = [MaxAlphabetSize]uint64{}
}

// Size returns the number of symbols in the alphabet.
func (h *Histogram) Size() int { return h.size }

// Count returns the frequency of sym, or 0 if sym is outside the alphabet.
func (h *Histogram) Count(sym int) uint64 {
	if sym < 0 || sym >= h.size {
		return 0
	}
	return h.counts[sym]
}

// Active returns the number of symbols with a non-zero count.
func (h *Histogram) Active() int {
	n := 0
	for sym := 0; h.next(&sym) != 0; sym++ {
		n++
	}
	return n
}

// Total returns the sum of all counts.
func (h *Histogram) Total() uint64 {
	var total uint64
	for _, c := range h.counts[:h.size] {
		total += c
	}
	return total
}

// next advances sym to the next symbol with a non-zero count and returns
// that count. Returns 0 with sym == Size() when no such symbol remains.
func (h *Histogram) next(sym *int) uint64 {
	s := *sym
	for s < h.size {
		if c := h.counts[s]; c != 0 {
			*sym = s
			return c
		}
		s++
	}
	*sym = s
	return 0
}

// WriteTo serializes the histogram to w.
// Layout:
// - 8 bytes header word: (version<<32)|(size<<16)|active
// - per active symbol, ascending: 1 byte symbol, 8 bytes count
func (h *Histogram) WriteTo(w io.Writer) (int64, error) {
	var (
		n    int64
		buf9 [9]byte
	)
	hdr := (histVersion << 32) | (uint64(h.size) << 16) | uint64(h.Active())
	binary.LittleEndian.PutUint64(buf9[:8], hdr)
	nn, err := w.Write(buf9[:8])
	n += int64(nn)
	if err != nil {
		return n, err
	}
	for sym := 0; ; sym++ {
		count := h.next(&sym)
		if count == 0 {
			break
		}
		buf9[0] = byte(sym)
		binary.LittleEndian.PutUint64(buf9[1:], count)
		nn, err := w.Write(buf9[:])
		n += int64(nn)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ReadFrom replaces the histogram with one serialized by WriteTo.
//
// A histogram with a configured alphabet, such as the one owned by an
// Encoder, only accepts a model of the same size. The receiver is left
// unchanged on error.
func (h *Histogram) ReadFrom(r io.Reader) (int64, error) {
	var (
		n    int64
		buf9 [9]byte
	)
	if _, err := io.ReadFull(r, buf9[:8]); err != nil {
		return n, err
	}
	n += 8
	hdr := binary.LittleEndian.Uint64(buf9[:8])
	if hdr>>32 != histVersion {
		return n, ErrBadVersion
	}
	size := int((hdr >> 16) & 0xFFFF)
	active := int(hdr & 0xFFFF)
	if size < 1 || size > MaxAlphabetSize || active > size {
		return n, fmt.Errorf("%w: serialized alphabet of %d symbols, %d active", ErrCapacityExceeded, size, active)
	}
	if h.size != 0 && h.size != size {
		return n, fmt.Errorf("%w: serialized alphabet of %d symbols, want %d", ErrCapacityExceeded, size, h.size)
	}

	tmp := newHistogram(size)
	prev := -1
	for range active {
		if _, err := io.ReadFull(r, buf9[:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return n, err
		}
		n += 9
		sym := int(buf9[0])
		count := binary.LittleEndian.Uint64(buf9[1:])
		switch {
		case sym >= size:
			return n, fmt.Errorf("%w: symbol %#04x in alphabet of %d", ErrSymbolRange, sym, size)
		case sym <= prev:
			return n, fmt.Errorf("%w: symbol %#04x after %#04x", ErrCorruptHistogram, sym, prev)
		case count == 0:
			return n, fmt.Errorf("%w: zero count for symbol %#04x", ErrCorruptHistogram, sym)
		}
		tmp.counts[sym] = count
		prev = sym
	}
	*h = tmp
	return n, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h *Histogram) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := h.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Histogram) UnmarshalBinary(data []byte) error {
	_, err := h.ReadFrom(bytes.NewReader(data))
	return err
}
