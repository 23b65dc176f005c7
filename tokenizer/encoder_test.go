package tokenizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncoderReproducesLearnedSequence(t *testing.T) {
	text := "aaabdaaabac"
	v := NewVocabulary()
	opts := DefaultLearnOpts()
	opts.Merges = 10
	learned := v.Learn(text, opts)

	enc := NewEncoder(v)
	got := enc.Encode(text)
	if diff := cmp.Diff(learned, got); diff != "" {
		t.Errorf("Encode(training text) mismatch (-learned +encoded):\n%s", diff)
	}
}

func TestEncoderOnFreshText(t *testing.T) {
	v := NewVocabulary()
	v.Learn("aaabdaaabac", LearnOpts{Merges: 10, Replacements: 1, Cutoff: 1})
	enc := NewEncoder(v)

	// "aaab" is token 6 after learning; a fresh text reuses it
	ids := enc.Encode("aaabaaab")
	want := []TokenID{6, 6}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
	if got := enc.Decode(ids); got != "aaabaaab" {
		t.Errorf("Decode = %q, want %q", got, "aaabaaab")
	}
}

func TestEncoderSkipsUnknownScalars(t *testing.T) {
	v := NewVocabulary()
	v.Learn("abab", LearnOpts{Merges: 5, Replacements: 1, Cutoff: 1})
	enc := NewEncoder(v)

	withNoise := enc.Encode("aZbaZb")
	clean := enc.Encode("abab")
	if diff := cmp.Diff(clean, withNoise); diff != "" {
		t.Errorf("unknown scalars leaked into the encoding (-clean +noisy):\n%s", diff)
	}
}

func TestEncoderDoesNotGrowVocabulary(t *testing.T) {
	v := NewVocabulary()
	v.Learn("abab", LearnOpts{Merges: 5, Replacements: 1, Cutoff: 1})
	before := v.Len()

	enc := NewEncoder(v)
	enc.Encode("xyzzy plugh")
	if v.Len() != before {
		t.Errorf("Encode grew the vocabulary: %d → %d", before, v.Len())
	}
}

func TestEncoderCachedResultIsSafe(t *testing.T) {
	v := NewVocabulary()
	v.Learn("abcabc", LearnOpts{Merges: 10, Replacements: 1, Cutoff: 1})
	enc := NewEncoder(v)

	first := enc.Encode("abcabc")
	first[0] = 999 // scribble on the returned slice

	second := enc.Encode("abcabc")
	if second[0] == 999 {
		t.Error("mutating a returned encoding corrupted the cache")
	}
	if got := enc.Decode(second); got != "abcabc" {
		t.Errorf("Decode = %q, want %q", got, "abcabc")
	}
}

func TestEncoderEmptyText(t *testing.T) {
	v := NewVocabulary()
	v.Learn("abab", DefaultLearnOpts())
	enc := NewEncoder(v)

	if ids := enc.Encode(""); len(ids) != 0 {
		t.Errorf("Encode(\"\") = %v, want empty", ids)
	}
}

func TestRuneCodecRoundTrip(t *testing.T) {
	sample := "hello, würld"
	c := NewRuneCodec(sample)

	ids := c.Encode(sample)
	if got := c.Decode(ids); got != sample {
		t.Errorf("Decode = %q, want %q", got, sample)
	}
	if c.VocabSize() != 10 {
		t.Errorf("VocabSize() = %d, want 10 distinct scalars", c.VocabSize())
	}
}

func TestRuneCodecSkipsUnseen(t *testing.T) {
	c := NewRuneCodec("ab")
	ids := c.Encode("abc")
	if got := c.Decode(ids); got != "ab" {
		t.Errorf("Decode = %q, want %q (c never seen)", got, "ab")
	}
}

func TestCodecInterface(t *testing.T) {
	var _ Codec = NewRuneCodec("abc")
	var _ Codec = NewEncoder(NewVocabulary())
}
