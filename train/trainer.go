package train

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/NikitaMGrimm/rust-bpe/tokenizer"
)

// Config holds the learning parameters for a training run.
type Config struct {
	Merges       int // total promotions before stopping
	Replacements int // digrams promoted per round
	Cutoff       int // strict lower bound on digram frequency
	LogEvery     int // progress line every N promotions; 0 disables
}

// DefaultConfig mirrors tokenizer.DefaultLearnOpts plus periodic logging.
func DefaultConfig() Config {
	opts := tokenizer.DefaultLearnOpts()
	return Config{
		Merges:       opts.Merges,
		Replacements: opts.Replacements,
		Cutoff:       opts.Cutoff,
		LogEvery:     500,
	}
}

// Result summarizes a training run.
type Result struct {
	Seq        []tokenizer.TokenID
	Promotions int
	Rounds     int
	VocabSize  int
	InputRunes int
	Ratio      float64 // input runes per output token
	Took       time.Duration
}

// Trainer drives vocabulary learning and prints progress. The learning
// core itself does no I/O; the trainer is where its observer hook gets
// turned into log lines.
type Trainer struct {
	Vocab  *tokenizer.Vocabulary
	Config Config
	Out    io.Writer
}

// New returns a Trainer for v that reports to stdout.
func New(v *tokenizer.Vocabulary, cfg Config) *Trainer {
	return &Trainer{Vocab: v, Config: cfg, Out: os.Stdout}
}

// Run learns a vocabulary from text and returns the run summary.
func (t *Trainer) Run(text string) *Result {
	inputRunes := utf8.RuneCountInString(text)
	fmt.Fprintf(t.Out, "learning: %d runes, budget %d merges (%d per round, cutoff %d)\n",
		inputRunes, t.Config.Merges, t.Config.Replacements, t.Config.Cutoff)

	res := &Result{InputRunes: inputRunes}
	start := time.Now()

	res.Seq = t.Vocab.Learn(text, tokenizer.LearnOpts{
		Merges:       t.Config.Merges,
		Replacements: t.Config.Replacements,
		Cutoff:       t.Config.Cutoff,
		Progress: func(p tokenizer.Progress) {
			res.Promotions = p.Promotions
			res.Rounds = p.Round
			if t.logTick(p.Promotions) {
				fmt.Fprintf(t.Out, "  merge %5d  (%d,%d) → %d  freq=%-6d seq_len=%-8d vocab=%d\n",
					p.Promotions, p.Digram.Left, p.Digram.Right, p.NewID,
					p.Count, p.SeqLen, p.VocabSize)
			}
		},
	})

	res.Took = time.Since(start)
	res.VocabSize = t.Vocab.Len()
	if len(res.Seq) > 0 {
		res.Ratio = float64(inputRunes) / float64(len(res.Seq))
	}

	fmt.Fprintf(t.Out, "done: %d promotions in %d rounds, %d runes → %d tokens (%.2fx), vocab=%d, %v\n",
		res.Promotions, res.Rounds, res.InputRunes, len(res.Seq), res.Ratio,
		res.VocabSize, res.Took.Round(time.Millisecond))
	return res
}

// logTick reports whether promotion n gets a progress line. The first
// few always do.
func (t *Trainer) logTick(n int) bool {
	if t.Config.LogEvery <= 0 {
		return false
	}
	return n <= 5 || n%t.Config.LogEvery == 0
}
