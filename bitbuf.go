package huffman

import (
	"bytes"

	"github.com/icza/bitio"
)

// BitBuffer collects single bits and packs them into bytes, most significant
// bit first. Bit i of the stream lands at position 7-(i%8) of byte i/8; the
// unused low bits of the last byte are zero.
//
// The zero value is not usable; create one with NewBitBuffer.
type BitBuffer struct {
	out  bytes.Buffer
	w    *bitio.Writer
	bits int // bits appended since the last Flush or Reset
}

// NewBitBuffer returns an empty BitBuffer.
func NewBitBuffer() *BitBuffer {
	b := &BitBuffer{}
	b.w = bitio.NewWriter(&b.out)
	return b
}

// AppendBit appends one bit.
func (b *BitBuffer) AppendBit(bit bool) {
	b.w.TryWriteBool(bit)
	b.bits++
}

// AppendBits appends every bit of c in order.
func (b *BitBuffer) AppendBits(c Code) {
	for _, bit := range c {
		b.w.TryWriteBool(bit)
	}
	b.bits += len(c)
}

// Len returns the number of bits appended since the last Flush.
func (b *BitBuffer) Len() int { return b.bits }

// ByteSize returns the number of bytes Flush would return: ceil(Len()/8).
func (b *BitBuffer) ByteSize() int {
	return (b.bits + 7) >> 3
}

// Flush pads the pending bits to a byte boundary and returns them packed.
// The returned slice is owned by the caller; the buffer is empty afterwards.
func (b *BitBuffer) Flush() ([]byte, error) {
	if err := b.w.TryError; err != nil {
		b.Reset()
		return nil, err
	}
	if err := b.w.Close(); err != nil {
		b.Reset()
		return nil, err
	}
	packed := bytes.Clone(b.out.Bytes())
	if packed == nil {
		packed = []byte{}
	}
	b.Reset()
	return packed, nil
}

// Reset discards pending bits.
func (b *BitBuffer) Reset() {
	b.out.Reset()
	b.w = bitio.NewWriter(&b.out)
	b.bits = 0
}
