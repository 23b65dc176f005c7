// Command bpe learns, applies and inspects pair-merge vocabularies.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/NikitaMGrimm/rust-bpe/corpus"
	"github.com/NikitaMGrimm/rust-bpe/pkg/config"
	"github.com/NikitaMGrimm/rust-bpe/tokenizer"
	"github.com/NikitaMGrimm/rust-bpe/train"
	"github.com/NikitaMGrimm/rust-bpe/vocabfile"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = cmdTrain(os.Args[2:])
	case "encode":
		err = cmdEncode(os.Args[2:])
	case "decode":
		err = cmdDecode(os.Args[2:])
	case "stats":
		err = cmdStats(os.Args[2:])
	case "repl":
		err = cmdRepl(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fatal("unknown command %q (try \"bpe help\")", os.Args[1])
	}
	if err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "bpe: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`bpe - greedy pair-merge text compression

Usage:
  bpe train  -corpus text.txt -out vocab.bpe [-merges N] [-replacements N] [-cutoff N]
  bpe train  -config bpe.yaml
  bpe encode -vocab vocab.bpe [file]
  bpe decode -vocab vocab.bpe [file]
  bpe stats  -vocab vocab.bpe [-top N]
  bpe repl   -vocab vocab.bpe

train learns a vocabulary from a corpus and saves it; a ".gz" output
path compresses the snapshot. encode reads text from a file or stdin
and prints token IDs; decode does the reverse. stats summarizes a
vocabulary. repl is an interactive encode/decode loop.
`)
}

// ============================================================================
// train
// ============================================================================

func cmdTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "YAML config file (other flags override it)")
		corpusPath = fs.String("corpus", "", "training text file")
		out        = fs.String("out", "", "vocabulary output path")
		merges     = fs.Int("merges", 0, "merge budget")
		replace    = fs.Int("replacements", 0, "digrams promoted per round")
		cutoff     = fs.Int("cutoff", 0, "strict digram frequency cutoff")
		logEvery   = fs.Int("log-every", 0, "progress line interval")
		normalize  = fs.String("normalize", "", "unicode normalization: none, nfc or nfd")
	)
	fs.Parse(args)

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["corpus"] {
		cfg.Corpus.Path = *corpusPath
	}
	if set["normalize"] {
		cfg.Corpus.Normalize = *normalize
	}
	if set["out"] {
		cfg.Output.VocabPath = *out
	}
	if set["merges"] {
		cfg.Learn.Merges = *merges
	}
	if set["replacements"] {
		cfg.Learn.Replacements = *replace
	}
	if set["cutoff"] {
		cfg.Learn.Cutoff = *cutoff
	}
	if set["log-every"] {
		cfg.Learn.LogEvery = *logEvery
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	form, err := corpus.ParseForm(cfg.Corpus.Normalize)
	if err != nil {
		return err
	}
	text, err := corpus.Load(cfg.Corpus.Path, form)
	if err != nil {
		return err
	}

	vocab := tokenizer.NewVocabulary()
	tr := train.New(vocab, train.Config{
		Merges:       cfg.Learn.Merges,
		Replacements: cfg.Learn.Replacements,
		Cutoff:       cfg.Learn.Cutoff,
		LogEvery:     cfg.Learn.LogEvery,
	})
	tr.Run(text)

	if err := vocabfile.Save(cfg.Output.VocabPath, vocab); err != nil {
		return err
	}
	fmt.Printf("vocabulary saved to %s (%d tokens)\n", cfg.Output.VocabPath, vocab.Len())
	return nil
}

// ============================================================================
// encode / decode
// ============================================================================

func cmdEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	vocabPath := fs.String("vocab", "", "vocabulary file")
	fs.Parse(args)

	vocab, err := loadVocab(*vocabPath)
	if err != nil {
		return err
	}
	text, err := readInput(fs.Args())
	if err != nil {
		return err
	}

	enc := tokenizer.NewEncoder(vocab)
	ids := enc.Encode(text)

	w := bufio.NewWriter(os.Stdout)
	for i, id := range ids {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, "%d", id)
	}
	fmt.Fprintln(w)
	return w.Flush()
}

func cmdDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	vocabPath := fs.String("vocab", "", "vocabulary file")
	fs.Parse(args)

	vocab, err := loadVocab(*vocabPath)
	if err != nil {
		return err
	}
	input, err := readInput(fs.Args())
	if err != nil {
		return err
	}

	ids, err := parseIDs(input)
	if err != nil {
		return err
	}
	fmt.Println(vocab.Decode(ids))
	return nil
}

// ============================================================================
// stats
// ============================================================================

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	vocabPath := fs.String("vocab", "", "vocabulary file")
	top := fs.Int("top", 10, "longest expansions to list")
	fs.Parse(args)

	vocab, err := loadVocab(*vocabPath)
	if err != nil {
		return err
	}

	units, comps := 0, 0
	for _, tok := range vocab.Tokens() {
		if tok.Kind() == tokenizer.KindUnit {
			units++
		} else {
			comps++
		}
	}
	fmt.Printf("tokens:        %d\n", vocab.Len())
	fmt.Printf("units:         %d\n", units)
	fmt.Printf("compositions:  %d\n", comps)

	if *top <= 0 || comps == 0 {
		return nil
	}

	entries, err := longestExpansions(vocab, *top)
	if err != nil {
		return err
	}
	fmt.Printf("longest expansions:\n")
	for _, e := range entries {
		fmt.Printf("  %6d  %q  (%d runes)\n", e.id, e.exp, utf8.RuneCountInString(e.exp))
	}
	return nil
}

// expEntry pairs a token ID with its expansion for ranking.
type expEntry struct {
	id  tokenizer.TokenID
	exp string
}

// longestExpansions ranks every token by expansion length in runes,
// longest first, ties by lower ID, and returns at most n entries.
func longestExpansions(v *tokenizer.Vocabulary, n int) ([]expEntry, error) {
	entries := make([]expEntry, 0, v.Len())
	for id := 0; id < v.Len(); id++ {
		exp, err := v.Expand(tokenizer.TokenID(id))
		if err != nil {
			return nil, err
		}
		entries = append(entries, expEntry{tokenizer.TokenID(id), exp})
	}
	sort.Slice(entries, func(i, j int) bool {
		li := utf8.RuneCountInString(entries[i].exp)
		lj := utf8.RuneCountInString(entries[j].exp)
		if li != lj {
			return li > lj
		}
		return entries[i].id < entries[j].id
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// ============================================================================
// repl
// ============================================================================

func cmdRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	vocabPath := fs.String("vocab", "", "vocabulary file")
	fs.Parse(args)

	vocab, err := loadVocab(*vocabPath)
	if err != nil {
		return err
	}
	enc := tokenizer.NewEncoder(vocab)

	fmt.Printf("bpe repl: %d tokens loaded. Type text to encode, :help for commands.\n", vocab.Len())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if replCommand(line, vocab, enc) {
				break
			}
			continue
		}

		ids := enc.Encode(line)
		runes := utf8.RuneCountInString(line)
		ratio := float64(0)
		if len(ids) > 0 {
			ratio = float64(runes) / float64(len(ids))
		}
		fmt.Printf("%v\n%d runes → %d tokens (%.2fx)\n", ids, runes, len(ids), ratio)
	}
	return scanner.Err()
}

// replCommand handles one ":" command; returns true to quit.
func replCommand(line string, vocab *tokenizer.Vocabulary, enc *tokenizer.Encoder) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true

	case ":help":
		fmt.Println("  <text>          encode text and show the IDs")
		fmt.Println("  :decode 1 2 3   decode a sequence of IDs")
		fmt.Println("  :expand 42      strict single-token expansion")
		fmt.Println("  :top [n]        longest expansions in the vocabulary")
		fmt.Println("  :stats          vocabulary summary")
		fmt.Println("  :quit           leave the repl")

	case ":decode":
		ids, err := parseIDs(strings.Join(fields[1:], " "))
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Printf("%q\n", vocab.Decode(ids))

	case ":expand":
		if len(fields) != 2 {
			fmt.Println("usage: :expand <id>")
			return false
		}
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		exp, err := vocab.Expand(tokenizer.TokenID(n))
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Printf("%q\n", exp)

	case ":top":
		n := 10
		if len(fields) == 2 {
			v, err := strconv.Atoi(fields[1])
			if err != nil || v <= 0 {
				fmt.Println("usage: :top [n]")
				return false
			}
			n = v
		}
		entries, err := longestExpansions(vocab, n)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		for _, e := range entries {
			fmt.Printf("  %6d  %q\n", e.id, e.exp)
		}

	case ":stats":
		fmt.Printf("%d tokens, encoder holds %d merge rules\n", vocab.Len(), enc.VocabSize()-runeCount(vocab))

	default:
		fmt.Printf("unknown command %s (try :help)\n", fields[0])
	}
	return false
}

func runeCount(v *tokenizer.Vocabulary) int {
	n := 0
	for _, tok := range v.Tokens() {
		if tok.Kind() == tokenizer.KindUnit {
			n++
		}
	}
	return n
}

// ============================================================================
// helpers
// ============================================================================

func loadVocab(path string) (*tokenizer.Vocabulary, error) {
	if path == "" {
		return nil, fmt.Errorf("-vocab is required")
	}
	return vocabfile.Load(path)
}

// readInput returns the first file argument's contents, or stdin when no
// argument is given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseIDs reads whitespace-separated token IDs.
func parseIDs(input string) ([]tokenizer.TokenID, error) {
	fields := strings.Fields(input)
	ids := make([]tokenizer.TokenID, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad token id %q", f)
		}
		ids = append(ids, tokenizer.TokenID(n))
	}
	return ids, nil
}
