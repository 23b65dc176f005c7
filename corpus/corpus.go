// Package corpus loads and normalizes training text.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Form selects the Unicode normalization applied to corpus text.
// Learned vocabularies are sensitive to composed vs decomposed accents,
// so the same form should be used at training and encoding time.
type Form int

const (
	FormNone Form = iota
	FormNFC
	FormNFD
)

// ParseForm maps config strings to a Form. Empty means no normalization.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FormNone, nil
	case "nfc":
		return FormNFC, nil
	case "nfd":
		return FormNFD, nil
	}
	return FormNone, fmt.Errorf("corpus: unknown normalization form %q", s)
}

func (f Form) String() string {
	switch f {
	case FormNFC:
		return "nfc"
	case FormNFD:
		return "nfd"
	}
	return "none"
}

func (f Form) transformer() transform.Transformer {
	switch f {
	case FormNFC:
		return norm.NFC
	case FormNFD:
		return norm.NFD
	}
	return transform.Nop
}

// Normalize applies the form to text.
func Normalize(text string, f Form) string {
	switch f {
	case FormNFC:
		return norm.NFC.String(text)
	case FormNFD:
		return norm.NFD.String(text)
	}
	return text
}

// NormalizeReader wraps r so everything read through it comes out
// normalized.
func NormalizeReader(r io.Reader, f Form) io.Reader {
	if f == FormNone {
		return r
	}
	return transform.NewReader(r, f.transformer())
}

// Load reads a whole text file, validates it is UTF-8 and applies the
// normalization form.
func Load(path string, f Form) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("corpus: %s is not valid UTF-8", path)
	}
	return Normalize(string(data), f), nil
}

// LoadLines reads a line-per-document dataset, skipping blank lines.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
