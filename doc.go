// Package huffman builds Huffman prefix codes inside fixed-size arrays and
// packs byte sequences with them.
//
// # Overview
//
// An Encoder owns a frequency histogram over a small alphabet (at most 256
// symbols), a bounded priority queue and a tree arena. The tree is built by
// the classic greedy merge of the two least frequent nodes, but every node
// lives at an integer index of one array and links to its parent and
// children by index. Nothing is allocated per node, so the memory used by a
// build is known when the Encoder is created.
//
// Leaves sit at the index equal to their symbol value. Internal nodes are
// appended after the alphabet, one per merge. A leaf whose symbol never
// occurred stays unlinked.
//
// # Determinism
//
// The queue orders by ascending frequency and breaks ties by insertion order:
// the item pushed first pops first. Leaves are pushed in ascending symbol
// order, so the same histogram always yields the same tree and the same
// codes.
//
// # Codes
//
// A code is read root to leaf, 0 for a left branch and 1 for a right branch.
// When only one symbol occurs, the tree is a lone leaf and that symbol is
// given the one-bit code 0.
//
// # Basic Usage
//
//	enc, err := huffman.NewEncoder(huffman.DefaultAlphabetSize)
//	if err != nil {
//	    return err
//	}
//	packed, err := enc.Encode([]byte("BCAADDDCCACACAC"))
//	if err != nil {
//	    return err
//	}
//
//	// Persist the model next to the payload if it should be decoded later.
//	model, _ := enc.Histogram().MarshalBinary()
//
// The packed output carries no header. Bits are written most significant
// first and the last byte is zero padded.
//
// # Concurrency
//
// An Encoder is not safe for concurrent use. Independent passes use
// independent Encoders.
package huffman
