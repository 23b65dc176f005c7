package train

import (
	"bytes"
	"strings"
	"testing"

	"github.com/NikitaMGrimm/rust-bpe/tokenizer"
)

func TestRun(t *testing.T) {
	text := "aaabdaaabac"
	v := tokenizer.NewVocabulary()
	cfg := DefaultConfig()
	cfg.Merges = 10
	cfg.LogEvery = 1

	var out bytes.Buffer
	tr := &Trainer{Vocab: v, Config: cfg, Out: &out}
	res := tr.Run(text)

	if len(res.Seq) != 5 {
		t.Errorf("final length = %d, want 5", len(res.Seq))
	}
	if res.Promotions != 3 {
		t.Errorf("Promotions = %d, want 3", res.Promotions)
	}
	if res.InputRunes != 11 {
		t.Errorf("InputRunes = %d, want 11", res.InputRunes)
	}
	if res.VocabSize != v.Len() {
		t.Errorf("VocabSize = %d, want %d", res.VocabSize, v.Len())
	}
	if want := 11.0 / 5.0; res.Ratio != want {
		t.Errorf("Ratio = %f, want %f", res.Ratio, want)
	}
	if got := v.Decode(res.Seq); got != text {
		t.Errorf("Decode = %q, want %q", got, text)
	}

	log := out.String()
	if !strings.Contains(log, "learning: 11 runes") {
		t.Errorf("missing start line in output:\n%s", log)
	}
	if strings.Count(log, "merge ") != 3 {
		t.Errorf("expected 3 merge lines in output:\n%s", log)
	}
	if !strings.Contains(log, "done: 3 promotions") {
		t.Errorf("missing summary line in output:\n%s", log)
	}
}

func TestRunLoggingDisabled(t *testing.T) {
	v := tokenizer.NewVocabulary()
	cfg := DefaultConfig()
	cfg.Merges = 10
	cfg.LogEvery = 0

	var out bytes.Buffer
	tr := &Trainer{Vocab: v, Config: cfg, Out: &out}
	tr.Run("aaabdaaabac")

	if strings.Contains(out.String(), "merge ") {
		t.Errorf("per-merge lines printed with LogEvery=0:\n%s", out.String())
	}
}

func TestRunEmptyText(t *testing.T) {
	v := tokenizer.NewVocabulary()
	var out bytes.Buffer
	tr := &Trainer{Vocab: v, Config: DefaultConfig(), Out: &out}
	res := tr.Run("")

	if len(res.Seq) != 0 {
		t.Errorf("sequence length = %d, want 0", len(res.Seq))
	}
	if res.Ratio != 0 {
		t.Errorf("Ratio = %f, want 0 for empty input", res.Ratio)
	}
}

func TestDefaultConfigMatchesLearnDefaults(t *testing.T) {
	cfg := DefaultConfig()
	opts := tokenizer.DefaultLearnOpts()

	if cfg.Merges != opts.Merges {
		t.Errorf("Merges = %d, want %d", cfg.Merges, opts.Merges)
	}
	if cfg.Replacements != opts.Replacements {
		t.Errorf("Replacements = %d, want %d", cfg.Replacements, opts.Replacements)
	}
	if cfg.Cutoff != opts.Cutoff {
		t.Errorf("Cutoff = %d, want %d", cfg.Cutoff, opts.Cutoff)
	}
	if cfg.LogEvery <= 0 {
		t.Error("LogEvery should default to a positive interval")
	}
}
