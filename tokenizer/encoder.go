package tokenizer

import (
	lru "github.com/hashicorp/golang-lru"
)

// encodeCacheSize bounds the Encoder's text → IDs cache.
const encodeCacheSize = 4096

// mergeRule is one recorded promotion: a digram and the token it became.
type mergeRule struct {
	digram Digram
	id     TokenID
}

// Encoder applies a learned vocabulary to new text without growing it.
//
// Its rules are the vocabulary's composition tokens in ascending ID
// order, which is exactly the order Learn promoted them in, so encoding
// the training text reproduces Learn's final sequence.
type Encoder struct {
	vocab *Vocabulary
	rules []mergeRule
	cache *lru.Cache
}

// NewEncoder derives the merge rules from v. The vocabulary may keep
// growing afterwards; the encoder sticks to the rules present now.
func NewEncoder(v *Vocabulary) *Encoder {
	rules := make([]mergeRule, 0, len(v.tokens))
	for id, tok := range v.tokens {
		if tok.kind == KindComposition {
			rules = append(rules, mergeRule{Digram{tok.left, tok.right}, TokenID(id)})
		}
	}
	cache, _ := lru.New(encodeCacheSize)
	return &Encoder{vocab: v, rules: rules, cache: cache}
}

// Encode converts text to token IDs: each scalar maps to its unit ID
// (scalars the vocabulary has never seen are skipped, mirroring Decode's
// leniency), then every merge rule applies in order. Results are cached
// per input text; callers get their own copy.
func (e *Encoder) Encode(text string) []TokenID {
	if hit, ok := e.cache.Get(text); ok {
		cached := hit.([]TokenID)
		out := make([]TokenID, len(cached))
		copy(out, cached)
		return out
	}

	cur := make([]TokenID, 0, len(text))
	for _, r := range text {
		if id, ok := e.vocab.ID(Unit(r)); ok {
			cur = append(cur, id)
		}
	}
	next := make([]TokenID, 0, len(cur))
	for _, rule := range e.rules {
		if !containsDigram(cur, rule.digram) {
			continue
		}
		next = rewriteDigram(next, cur, rule.digram, rule.id)
		cur, next = next, cur[:0]
	}

	e.cache.Add(text, cur)
	out := make([]TokenID, len(cur))
	copy(out, cur)
	return out
}

// Decode delegates to the vocabulary's lenient bulk decode.
func (e *Encoder) Decode(ids []TokenID) string {
	return e.vocab.Decode(ids)
}

// VocabSize returns the backing vocabulary's size.
func (e *Encoder) VocabSize() int {
	return e.vocab.Len()
}
