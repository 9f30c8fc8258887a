// Command huff packs files with a per-file Huffman code.
//
//	huff [-o out] [-table] [-alphabet n] [-j n] [file ...]
//
// With no file arguments huff reads stdin and writes to stdout, or to -o.
// Each named file X is written to X.huf. The payload carries no model; pass
// -table to also write the histogram next to it (X.hist), which is what a
// decoder needs to rebuild the tree.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gnilk/huffman"
)

const (
	packedExt = ".huf"
	tableExt  = ".hist"
)

type options struct {
	out      string
	table    bool
	alphabet int
}

// result is the size report of one encode pass.
type result struct {
	name    string
	in, out int
	symbols int
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("huff: ")

	var opts options
	flag.StringVar(&opts.out, "o", "", "output file (stdin mode only)")
	flag.BoolVar(&opts.table, "table", false, "also write the histogram needed for decoding")
	flag.IntVar(&opts.alphabet, "alphabet", huffman.DefaultAlphabetSize, "alphabet size, bytes must be below it")
	jobs := flag.Int("j", runtime.NumCPU(), "files encoded concurrently")
	flag.Parse()

	p := message.NewPrinter(language.English)
	report := func(r result) {
		p.Fprintf(os.Stderr, "%s: %d -> %d bytes, %d symbols\n", r.name, r.in, r.out, r.symbols)
	}

	if flag.NArg() == 0 {
		r, err := encodeStream(os.Stdin, opts)
		if err != nil {
			log.Fatal(err)
		}
		report(r)
		return
	}
	if opts.out != "" {
		log.Fatal("-o applies to stdin only; named files are written to <file>" + packedExt)
	}

	results := make([]result, flag.NArg())
	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))
	for i, name := range flag.Args() {
		g.Go(func() error {
			r, err := encodeFile(name, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		report(r)
	}
}

// encodeFile packs one file with its own Encoder.
func encodeFile(name string, opts options) (result, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return result{}, err
	}
	return encode(name, data, name+packedExt, name+tableExt, opts)
}

func encodeStream(r io.Reader, opts options) (result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return result{}, err
	}
	table := "stdin" + tableExt
	if opts.out != "" {
		table = opts.out + tableExt
	}
	return encode("<stdin>", data, opts.out, table, opts)
}

// encode packs data and writes it to dst, or stdout when dst is empty. With
// opts.table the histogram is written to table.
func encode(name string, data []byte, dst, table string, opts options) (result, error) {
	enc, err := huffman.NewEncoder(opts.alphabet)
	if err != nil {
		return result{}, err
	}
	packed, err := enc.Encode(data)
	if err != nil {
		return result{}, err
	}
	if dst == "" {
		if _, err := os.Stdout.Write(packed); err != nil {
			return result{}, err
		}
	} else if err := os.WriteFile(dst, packed, 0o644); err != nil {
		return result{}, err
	}

	if opts.table {
		model, err := enc.Histogram().MarshalBinary()
		if err != nil {
			return result{}, err
		}
		if err := os.WriteFile(table, model, 0o644); err != nil {
			return result{}, err
		}
	}
	return result{name: name, in: len(data), out: len(packed), symbols: enc.Leaves()}, nil
}
