// Command bpebench charts how compression evolves while a vocabulary
// learns, and compares the result against a rune baseline and gzip.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/NikitaMGrimm/rust-bpe/corpus"
	"github.com/NikitaMGrimm/rust-bpe/tokenizer"
)

var (
	corpusPath = flag.String("corpus", "", "training text file")
	merges     = flag.Int("merges", 2000, "merge budget")
	cutoff     = flag.Int("cutoff", 1, "strict digram frequency cutoff")
	outDir     = flag.String("out", ".", "directory for the PNG charts")
)

func main() {
	flag.Parse()
	if *corpusPath == "" {
		fmt.Fprintln(os.Stderr, "bpebench: -corpus is required")
		os.Exit(1)
	}

	text, err := corpus.Load(*corpusPath, corpus.FormNFC)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bpebench: %v\n", err)
		os.Exit(1)
	}
	runes := utf8.RuneCountInString(text)

	// collect one curve point and one frequency sample per promotion
	curve := make(plotter.XYs, 0, *merges)
	freqs := make(plotter.Values, 0, *merges)
	opts := tokenizer.LearnOpts{
		Merges:       *merges,
		Replacements: 1,
		Cutoff:       *cutoff,
		Progress: func(p tokenizer.Progress) {
			curve = append(curve, plotter.XY{
				X: float64(p.Promotions),
				Y: float64(runes) / float64(p.SeqLen),
			})
			freqs = append(freqs, float64(p.Count))
		},
	}

	vocab := tokenizer.NewVocabulary()
	seq := vocab.Learn(text, opts)
	if len(seq) == 0 || len(curve) == 0 {
		fmt.Fprintln(os.Stderr, "bpebench: corpus too small, nothing was merged")
		os.Exit(1)
	}

	bpeRatio := float64(runes) / float64(len(seq))
	baseline := tokenizer.NewRuneCodec(text)
	baseRatio := float64(runes) / float64(len(baseline.Encode(text)))

	fmt.Printf("corpus:        %d runes (%d bytes)\n", runes, len(text))
	fmt.Printf("vocabulary:    %d tokens after %d merges\n", vocab.Len(), len(curve))
	fmt.Printf("rune baseline: %.2f runes/token\n", baseRatio)
	fmt.Printf("pair merging:  %.2f runes/token (%d tokens)\n", bpeRatio, len(seq))
	fmt.Printf("gzip:          %.2f bytes in/out\n", gzipRatio(text))

	scatterPlot(curve, "compression vs promotions", "promotions", "runes per token",
		pngPath("compression"))
	histogram(freqs, "promoted digram frequencies", pngPath("digram_freq"))
}

func pngPath(name string) string {
	return fmt.Sprintf("%s/%s.png", *outDir, name)
}

// gzipRatio compresses text in memory and returns bytes-in over
// bytes-out.
func gzipRatio(text string) float64 {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(text))
	zw.Close()
	return float64(len(text)) / float64(buf.Len())
}

func scatterPlot(xys plotter.XYs, title, xTitle, yTitle, name string) {
	p, err := plot.New()
	if err != nil {
		panic(err)
	}
	p.Title.Text = title
	p.X.Label.Text = xTitle
	p.Y.Label.Text = yTitle

	s, err := plotter.NewScatter(xys)
	if err != nil {
		panic(err)
	}
	s.GlyphStyle.Radius = vg.Length(1)
	p.Add(s)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, name); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %s\n", name)
}

func histogram(values plotter.Values, title, name string) {
	p, err := plot.New()
	if err != nil {
		panic(err)
	}
	p.Title.Text = title

	h, err := plotter.NewHist(values, 20)
	if err != nil {
		panic(err)
	}
	h.Normalize(1)
	p.Add(h)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, name); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %s\n", name)
}
