package huffman

import "fmt"

// tree is the node arena plus the bookkeeping of the last build.
//
// Arena layout:
//
//	[0, size):           leaves, index == symbol value
//	[size, size+merges): internal nodes, one per merge, in merge order
//
// A leaf whose symbol had no occurrences stays unlinked and is never
// reachable from the root.
type tree struct {
	nodes  [arenaSize]node
	size   int   // alphabet size
	root   int16 // nodeNone until a build succeeds
	leaves int   // active leaves of the last build
	next   int16 // next free internal slot
}

func newTree(size int) tree {
	t := tree{size: size}
	t.reset()
	return t
}

// reset unlinks every slot and invalidates the root.
func (t *tree) reset() {
	for i := range t.nodes {
		t.nodes[i] = unlinked
	}
	t.root = nodeNone
	t.leaves = 0
	t.next = int16(t.size)
}

// build runs the greedy merge over h using q as scratch. On error the arena is
// left invalid (root == nodeNone).
func (t *tree) build(h *Histogram, q *queue) error {
	t.reset()
	q.reset()

	for sym := 0; ; sym++ {
		freq := h.next(&sym)
		if freq == 0 {
			break
		}
		t.nodes[sym] = newLeaf(freq)
		if !q.push(int16(sym), freq) {
			return fmt.Errorf("%w: queue full at symbol %#04x", ErrCapacityExceeded, sym)
		}
		t.leaves++
	}
	if t.leaves == 0 {
		return ErrEmptyAlphabet
	}

	for {
		a, err := q.pop()
		if err != nil {
			return err
		}
		if q.isEmpty() {
			t.root = a.id
			return nil
		}
		b, err := q.pop()
		if err != nil {
			return err
		}
		if int(t.next) >= len(t.nodes) {
			t.root = nodeNone
			return fmt.Errorf("%w: arena full after %d merges", ErrCapacityExceeded, t.merges())
		}
		id := t.next
		t.next++
		t.nodes[id] = newInternal(a.id, b.id, a.freq+b.freq)
		t.nodes[a.id].parent = id
		t.nodes[b.id].parent = id
		if !q.push(id, a.freq+b.freq) {
			t.root = nodeNone
			return fmt.Errorf("%w: queue full at node %d", ErrCapacityExceeded, id)
		}
	}
}

// built reports whether the last build produced a root.
func (t *tree) built() bool { return t.root != nodeNone }

// merges returns the number of internal nodes allocated by the last build.
func (t *tree) merges() int { return int(t.next) - t.size }

// linked reports whether sym's leaf is part of the current tree.
func (t *tree) linked(sym int) bool {
	if !t.built() || sym < 0 || sym >= t.size {
		return false
	}
	n := t.nodes[sym]
	return n.freq != 0 && n.isLeaf()
}

// appendPath appends the code of sym to dst and returns the extended slice.
// A lone root leaf is given the single bit 0.
func (t *tree) appendPath(dst Code, sym int) (Code, error) {
	if !t.linked(sym) {
		return dst, fmt.Errorf("%w: symbol %#04x", ErrSymbolNotInTree, sym)
	}
	if int16(sym) == t.root {
		return append(dst, false), nil
	}
	start := len(dst)
	cur := int16(sym)
	for parent := t.nodes[cur].parent; parent != nodeNone; parent = t.nodes[cur].parent {
		dst = append(dst, t.nodes[parent].right == cur)
		cur = parent
	}
	dst[start:].reverse()
	return dst, nil
}
