package huffman

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/icza/bitio"
)

func buildFrom(t *testing.T, input []byte) *Encoder {
	t.Helper()
	e, err := NewEncoder(DefaultAlphabetSize)
	if err != nil {
		t.Fatalf("new encoder: %v", err)
	}
	if err := e.Accumulate(input); err != nil {
		t.Fatalf("accumulate: %v", err)
	}
	if err := e.BuildTree(); err != nil {
		t.Fatalf("build: %v", err)
	}
	return e
}

// walkDecode reads packed bit by bit from the root and emits a symbol at
// every leaf, stopping after n symbols.
func walkDecode(t *testing.T, e *Encoder, packed []byte, n int) []byte {
	t.Helper()
	tr := &e.tree
	r := bitio.NewReader(bytes.NewReader(packed))
	out := make([]byte, 0, n)
	for len(out) < n {
		cur := tr.root
		if tr.nodes[cur].isLeaf() {
			// lone leaf: one 0 bit per symbol
			bit, err := r.ReadBool()
			if err != nil {
				t.Fatalf("read bit: %v", err)
			}
			if bit {
				t.Fatalf("lone leaf code must be 0")
			}
		}
		for !tr.nodes[cur].isLeaf() {
			bit, err := r.ReadBool()
			if err != nil {
				t.Fatalf("read bit after %d symbols: %v", len(out), err)
			}
			if bit {
				cur = tr.nodes[cur].right
			} else {
				cur = tr.nodes[cur].left
			}
		}
		out = append(out, byte(cur))
	}
	return out
}

func activeCodes(t *testing.T, e *Encoder) map[int]Code {
	t.Helper()
	codes := make(map[int]Code)
	for sym := range e.AlphabetSize() {
		if e.Histogram().Count(sym) == 0 {
			continue
		}
		c, err := e.PathForSymbol(sym)
		if err != nil {
			t.Fatalf("path for %#04x: %v", sym, err)
		}
		codes[sym] = c
	}
	return codes
}

var treeInputs = []struct {
	name  string
	input []byte
}{
	{"reference", []byte("BCAADDDCCACACAC")},
	{"abcd", []byte("ABCD")},
	{"two", []byte("abbbbbbb")},
	{"text", []byte("the quick brown fox jumps over the lazy dog")},
	{"fibonacci", fibonacciInput(20)},
	{"all_bytes", allBytes(3)},
	{"low_symbols", []byte{0, 1, 2, 4, 4, 4, 5, 7, 7}},
}

// fibonacciInput yields frequencies 1,1,2,3,5,... which produce the deepest
// possible tree for n symbols.
func fibonacciInput(n int) []byte {
	var out []byte
	a, b := 1, 1
	for sym := range n {
		out = append(out, bytes.Repeat([]byte{byte('A' + sym)}, a)...)
		a, b = b, a+b
	}
	return out
}

func allBytes(repeat int) []byte {
	out := make([]byte, 0, 256*repeat)
	for r := range repeat {
		for i := range 256 {
			if (i+r)%3 != 0 || r == 0 {
				out = append(out, byte(i))
			}
		}
	}
	return out
}

func TestBuildFullBinaryTree(t *testing.T) {
	for _, tt := range treeInputs {
		t.Run(tt.name, func(t *testing.T) {
			e := buildFrom(t, tt.input)
			tr := &e.tree
			active := e.Histogram().Active()
			if tr.leaves != active {
				t.Fatalf("leaves=%d active=%d", tr.leaves, active)
			}
			if tr.merges() != active-1 {
				t.Fatalf("merges=%d want %d", tr.merges(), active-1)
			}
			if !tr.nodes[tr.root].isRoot() {
				t.Fatalf("root has a parent")
			}
			if tr.nodes[tr.root].freq != uint64(len(tt.input)) {
				t.Fatalf("root freq=%d want %d", tr.nodes[tr.root].freq, len(tt.input))
			}
			for id := tr.size; id < int(tr.next); id++ {
				n := tr.nodes[id]
				if n.left == nodeNone || n.right == nodeNone {
					t.Fatalf("internal node %d has %d/%d children", id, n.left, n.right)
				}
				if tr.nodes[n.left].parent != int16(id) || tr.nodes[n.right].parent != int16(id) {
					t.Fatalf("node %d children do not point back", id)
				}
				if n.freq != tr.nodes[n.left].freq+tr.nodes[n.right].freq {
					t.Fatalf("node %d freq %d != children sum", id, n.freq)
				}
			}
			// every linked node reaches the root without revisiting a node
			for id := 0; id < int(tr.next); id++ {
				if id < tr.size && !tr.linked(id) {
					continue
				}
				seen := 0
				for cur := int16(id); cur != tr.root; cur = tr.nodes[cur].parent {
					if cur == nodeNone || seen > arenaSize {
						t.Fatalf("node %d does not reach the root", id)
					}
					seen++
				}
			}
		})
	}
}

func TestPrefixFreeAndKraft(t *testing.T) {
	for _, tt := range treeInputs {
		t.Run(tt.name, func(t *testing.T) {
			e := buildFrom(t, tt.input)
			codes := activeCodes(t, e)
			for a, ca := range codes {
				if ca.Len() == 0 {
					t.Fatalf("empty code for %#04x", a)
				}
				for b, cb := range codes {
					if a != b && cb.HasPrefix(ca) {
						t.Fatalf("code %s of %#04x is a prefix of %s of %#04x", ca, a, cb, b)
					}
				}
			}
			sum := new(big.Rat)
			for _, c := range codes {
				sum.Add(sum, new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), uint(c.Len()))))
			}
			if sum.Cmp(big.NewRat(1, 1)) != 0 {
				t.Fatalf("kraft sum = %s, want 1", sum)
			}
		})
	}
}

func TestReferenceTree(t *testing.T) {
	e := buildFrom(t, []byte("BCAADDDCCACACAC"))
	h := e.Histogram()
	for sym, want := range map[byte]uint64{'A': 5, 'B': 1, 'C': 6, 'D': 3} {
		if got := h.Count(int(sym)); got != want {
			t.Fatalf("count %c=%d want %d", sym, got, want)
		}
	}

	// merge order: B+D=4, 4+A=9, C+9=15
	tr := &e.tree
	base := tr.size
	merges := []struct{ left, right int16 }{
		{'B', 'D'},
		{int16(base), 'A'},
		{'C', int16(base + 1)},
	}
	for i, m := range merges {
		n := tr.nodes[base+i]
		if n.left != m.left || n.right != m.right {
			t.Fatalf("merge %d: got (%d,%d) want (%d,%d)", i, n.left, n.right, m.left, m.right)
		}
	}
	if tr.root != int16(base+2) {
		t.Fatalf("root=%d want %d", tr.root, base+2)
	}

	want := map[byte]string{'A': "11", 'B': "100", 'C': "0", 'D': "101"}
	for sym, code := range want {
		c, err := e.PathForSymbol(int(sym))
		if err != nil {
			t.Fatalf("path %c: %v", sym, err)
		}
		if c.String() != code {
			t.Fatalf("code %c=%s want %s", sym, c, code)
		}
	}
}

func TestSingleSymbolCode(t *testing.T) {
	e := buildFrom(t, []byte("zzzzz"))
	if e.tree.root != 'z' {
		t.Fatalf("root=%d want leaf 'z'", e.tree.root)
	}
	c, err := e.PathForSymbol('z')
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if c.String() != "0" {
		t.Fatalf("single symbol code=%q want \"0\"", c)
	}
}

func TestSymbolNotInTree(t *testing.T) {
	e := buildFrom(t, []byte("BCAADDDCCACACAC"))
	for _, sym := range []int{'E', 0, 255, -1, 256} {
		if _, err := e.PathForSymbol(sym); !errors.Is(err, ErrSymbolNotInTree) {
			t.Fatalf("symbol %d: err=%v want ErrSymbolNotInTree", sym, err)
		}
	}
	dst := Code{true}
	got, err := e.AppendPath(dst, 'E')
	if err == nil || len(got) != 1 {
		t.Fatalf("AppendPath must leave dst unchanged on error")
	}
}

func TestBuildEmptyAlphabet(t *testing.T) {
	e, err := NewEncoder(DefaultAlphabetSize)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.BuildTree(); !errors.Is(err, ErrEmptyAlphabet) {
		t.Fatalf("err=%v want ErrEmptyAlphabet", err)
	}
	if _, err := e.PathForSymbol('A'); !errors.Is(err, ErrSymbolNotInTree) {
		t.Fatalf("path on empty tree: %v", err)
	}
}

func TestRebuildReplacesTree(t *testing.T) {
	e := buildFrom(t, []byte("aaab"))
	e.Histogram().Reset()
	e.Histogram().Accumulate([]byte("xy"))
	if err := e.BuildTree(); err != nil {
		t.Fatal(err)
	}
	if _, err := e.PathForSymbol('a'); !errors.Is(err, ErrSymbolNotInTree) {
		t.Fatalf("stale leaf 'a' still linked: %v", err)
	}
	if e.tree.merges() != 1 {
		t.Fatalf("merges=%d want 1", e.tree.merges())
	}
}

func TestWalkRoundtrip(t *testing.T) {
	for _, tt := range treeInputs {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEncoder(DefaultAlphabetSize)
			if err != nil {
				t.Fatal(err)
			}
			packed, err := e.Encode(tt.input)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got := walkDecode(t, e, packed, len(tt.input))
			if !bytes.Equal(got, tt.input) {
				t.Fatalf("roundtrip mismatch: %q != %q", got, tt.input)
			}
		})
	}
}
