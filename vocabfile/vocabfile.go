// Package vocabfile stores learned vocabularies as versioned text files.
//
// Format (one token per line, in ID order):
//
//	# bpe vocab v1
//	# tokens 7
//	u 97
//	u 98
//	c 0 1
//	...
//
// "u <codepoint>" is a unit token, "c <left> <right>" a composition.
// Compositions only ever reference earlier lines, so a file is also a
// replayable build script for the vocabulary.
package vocabfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/NikitaMGrimm/rust-bpe/tokenizer"
)

const header = "# bpe vocab v1"

var (
	ErrBadHeader = errors.New("vocabfile: bad header")
	ErrBadRecord = errors.New("vocabfile: bad record")
)

// Write emits v in the versioned text format.
func Write(w io.Writer, v *tokenizer.Vocabulary) error {
	bw := bufio.NewWriter(w)
	toks := v.Tokens()
	fmt.Fprintf(bw, "%s\n", header)
	fmt.Fprintf(bw, "# tokens %d\n", len(toks))
	for _, tok := range toks {
		if tok.Kind() == tokenizer.KindUnit {
			fmt.Fprintf(bw, "u %d\n", tok.Rune())
		} else {
			left, right := tok.Pair()
			fmt.Fprintf(bw, "c %d %d\n", left, right)
		}
	}
	return bw.Flush()
}

// Read parses the text format and rebuilds the vocabulary. The token
// count comment, when present, must match the number of records.
func Read(r io.Reader) (*tokenizer.Vocabulary, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: empty input", ErrBadHeader)
	}
	if strings.TrimSpace(sc.Text()) != header {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, sc.Text())
	}

	want := -1
	var toks []tokenizer.Token
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '#' {
			fmt.Sscanf(line, "# tokens %d", &want)
			continue
		}
		switch line[0] {
		case 'u':
			var cp int32
			if _, err := fmt.Sscanf(line, "u %d", &cp); err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadRecord, line)
			}
			toks = append(toks, tokenizer.Unit(rune(cp)))
		case 'c':
			var left, right uint32
			if _, err := fmt.Sscanf(line, "c %d %d", &left, &right); err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadRecord, line)
			}
			toks = append(toks, tokenizer.Composition(tokenizer.TokenID(left), tokenizer.TokenID(right)))
		default:
			return nil, fmt.Errorf("%w: %q", ErrBadRecord, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if want >= 0 && want != len(toks) {
		return nil, fmt.Errorf("%w: header says %d tokens, found %d", ErrBadRecord, want, len(toks))
	}

	v, err := tokenizer.FromTokens(toks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	return v, nil
}

// Save writes v to path. A ".gz" suffix compresses the file.
func Save(path string, v *tokenizer.Vocabulary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		if err := Write(zw, v); err != nil {
			return err
		}
		return zw.Close()
	}
	return Write(f, v)
}

// Load reads a vocabulary saved by Save, transparently decompressing
// ".gz" files.
func Load(path string) (*tokenizer.Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return Read(r)
}
