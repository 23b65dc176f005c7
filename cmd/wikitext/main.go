// Command wikitext turns MediaWiki XML dumps into plain training text.
// It streams .xml or .xml.bz2 dumps, strips wiki markup and writes
// normalized article text suitable for bpe train.
package main

import (
	"bufio"
	"compress/bzip2"
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/NikitaMGrimm/rust-bpe/corpus"
)

type page struct {
	Title    string `xml:"title"`
	NS       int    `xml:"ns"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

var (
	reComment  = regexp.MustCompile(`<!--[\s\S]*?-->`)
	reRef      = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>|<ref[^/]*/\s*>`)
	reTable    = regexp.MustCompile(`(?s)\{\|.*?\|\}`)
	reTemplate = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	reMedia    = regexp.MustCompile(`\[\[[^\]:]*:[^\]]*\]\]`)
	reLink     = regexp.MustCompile(`\[\[(?:[^\]|]*\|)?([^\]]*)\]\]`)
	reExtLink  = regexp.MustCompile(`\[https?://[^\s\]]+ ([^\]]*)\]`)
	reExtBare  = regexp.MustCompile(`\[https?://[^\]]*\]`)
	reTag      = regexp.MustCompile(`<[^>]+>`)
	reHeading  = regexp.MustCompile(`(?m)^=+\s*(.*?)\s*=+\s*$`)
	reMarker   = regexp.MustCompile(`(?m)^[*#:;]+\s*`)
	reQuotes   = regexp.MustCompile(`'{2,}`)
	reMagic    = regexp.MustCompile(`__[A-Z]+__`)
	reSpace    = regexp.MustCompile(`[ \t]{2,}`)
	reNewlines = regexp.MustCompile(`\n{3,}`)

	entities = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&nbsp;", " ",
	)
)

// stripMarkup reduces wikitext to plain prose. Redirect stubs come back
// empty.
func stripMarkup(text string) string {
	if strings.HasPrefix(strings.ToUpper(text), "#REDIRECT") {
		return ""
	}

	s := reComment.ReplaceAllString(text, "")
	s = reRef.ReplaceAllString(s, "")
	s = reTable.ReplaceAllString(s, "")

	// templates nest; peel until the text stops changing
	for {
		next := reTemplate.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}

	s = reMedia.ReplaceAllString(s, "")
	s = reLink.ReplaceAllString(s, "$1")
	s = reExtLink.ReplaceAllString(s, "$1")
	s = reExtBare.ReplaceAllString(s, "")
	s = reTag.ReplaceAllString(s, "")
	s = reHeading.ReplaceAllString(s, "\n$1\n")
	s = reMarker.ReplaceAllString(s, "")
	s = reQuotes.ReplaceAllString(s, "")
	s = reMagic.ReplaceAllString(s, "")
	s = entities.Replace(s)
	s = reSpace.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func main() {
	var (
		input     = flag.String("input", "", "MediaWiki dump (.xml or .xml.bz2)")
		output    = flag.String("output", "", "plain text output file")
		maxMB     = flag.Int("max-mb", 300, "stop after writing this many MB")
		minRunes  = flag.Int("min-runes", 200, "skip articles shorter than this")
		normalize = flag.String("normalize", "nfc", "unicode normalization: none, nfc or nfd")
	)
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "wikitext: -input and -output are required")
		flag.Usage()
		os.Exit(1)
	}
	form, err := corpus.ParseForm(*normalize)
	if err != nil {
		fail(err)
	}

	in, err := os.Open(*input)
	if err != nil {
		fail(err)
	}
	defer in.Close()

	var reader io.Reader = bufio.NewReaderSize(in, 4*1024*1024)
	if strings.HasSuffix(*input, ".bz2") {
		reader = bzip2.NewReader(reader)
	}

	out, err := os.Create(*output)
	if err != nil {
		fail(err)
	}
	defer out.Close()
	writer := bufio.NewWriterSize(out, 1024*1024)
	defer writer.Flush()

	written, articles, skipped, err := extract(reader, writer, form, int64(*maxMB)*1024*1024, *minRunes)
	if err != nil {
		fail(err)
	}

	fmt.Printf("done: %.1f MB, %d articles (%d skipped) → %s\n",
		float64(written)/1048576, articles, skipped, *output)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "wikitext: %v\n", err)
	os.Exit(1)
}

// extract streams pages out of the dump until maxBytes of cleaned text
// have been written.
func extract(r io.Reader, w *bufio.Writer, form corpus.Form, maxBytes int64, minRunes int) (written int64, articles, skipped int, err error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	start := time.Now()
	for written < maxBytes {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			// dumps routinely carry malformed fragments
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "page" {
			continue
		}

		var p page
		if err := dec.DecodeElement(&p, &se); err != nil {
			continue
		}
		if p.NS != 0 || p.Revision.Text == "" {
			continue
		}

		cleaned := stripMarkup(p.Revision.Text)
		if utf8.RuneCountInString(cleaned) < minRunes {
			skipped++
			continue
		}
		cleaned = corpus.Normalize(cleaned, form)

		n, err := fmt.Fprintf(w, "%s\n\n%s\n\n", p.Title, cleaned)
		if err != nil {
			return written, articles, skipped, err
		}
		written += int64(n)
		articles++

		if articles%1000 == 0 {
			mb := float64(written) / 1048576
			fmt.Printf("  %8.1f MB  %6d articles  %.1f MB/s\n",
				mb, articles, mb/time.Since(start).Seconds())
		}
	}
	return written, articles, skipped, nil
}
