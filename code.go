package huffman

import "strings"

// Code is the root-to-leaf branch sequence of one symbol: false is a left
// branch (bit 0), true a right branch (bit 1). The first element is the
// first bit transmitted.
type Code []bool

// Len returns the number of bits in the code.
func (c Code) Len() int { return len(c) }

// String renders the code as a string of '0' and '1'.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, bit := range c {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if len(p) > len(c) {
		return false
	}
	for i := range p {
		if c[i] != p[i] {
			return false
		}
	}
	return true
}

// reverse flips c in place.
func (c Code) reverse() {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}
