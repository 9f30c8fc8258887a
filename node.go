package huffman

const (
	// MaxAlphabetSize bounds the alphabet; every array is sized from it.
	MaxAlphabetSize = 256
	// DefaultAlphabetSize covers every byte value.
	DefaultAlphabetSize = 256

	arenaSize = 2 * MaxAlphabetSize // leaves + internal nodes
	queueSize = 2 * MaxAlphabetSize

	// nodeNone is the "no link" value of parent/left/right. It lies outside
	// [0, arenaSize) so a stale link can never alias a real node.
	nodeNone int16 = -1
)

// node is one slot of the tree arena. Leaves live at their symbol value,
// internal nodes after the alphabet. Links are arena indices.
//
//	leaf:     left == right == nodeNone
//	internal: left, right are both valid indices
//	root:     parent == nodeNone
type node struct {
	parent int16
	left   int16
	right  int16
	freq   uint64
}

// unlinked is the zero state every slot is reset to before a build.
var unlinked = node{parent: nodeNone, left: nodeNone, right: nodeNone}

func newLeaf(freq uint64) node {
	n := unlinked
	n.freq = freq
	return n
}

func newInternal(left, right int16, freq uint64) node {
	return node{parent: nodeNone, left: left, right: right, freq: freq}
}

func (n node) isLeaf() bool { return n.left == nodeNone && n.right == nodeNone }
func (n node) isRoot() bool { return n.parent == nodeNone }
