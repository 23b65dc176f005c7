package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownToken reports an ID with no registered token behind it.
var ErrUnknownToken = errors.New("tokenizer: unknown token id")

// Vocabulary is an append-only token registry. Registration deduplicates
// structurally equal tokens, so the same rune or the same (left, right)
// pair always maps to one ID.
//
// Single-token expansion (ExpandInto) is strict and fails on unknown IDs;
// bulk decoding (Decode, DecodeInto) is lenient and skips them. Bulk
// decoding runs off a lazily built expansion cache that is rebuilt
// whenever the vocabulary has grown since the last build.
type Vocabulary struct {
	tokens     []Token           // id → token, authoritative
	ids        map[Token]TokenID // token → id, dedup
	expansions []string          // id → expanded text; len tracks the build size
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{ids: make(map[Token]TokenID)}
}

// Len returns the number of registered tokens, which is also the next ID.
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Push registers a token and returns its ID. Pushing a token that is
// already registered returns the existing ID and leaves the vocabulary
// unchanged.
//
// Push does not validate composition operands; callers composing pairs
// should go through Compose, which does.
func (v *Vocabulary) Push(tok Token) TokenID {
	if id, ok := v.ids[tok]; ok {
		return id
	}
	id := TokenID(len(v.tokens))
	v.tokens = append(v.tokens, tok)
	v.ids[tok] = id
	return id
}

// ID looks a token up without registering it.
func (v *Vocabulary) ID(tok Token) (TokenID, bool) {
	id, ok := v.ids[tok]
	return id, ok
}

// Compose registers the composition of two already-registered tokens and
// returns its ID. ok is false when either operand is unknown; the
// vocabulary is left untouched in that case.
func (v *Vocabulary) Compose(left, right TokenID) (TokenID, bool) {
	if int(left) >= len(v.tokens) || int(right) >= len(v.tokens) {
		return 0, false
	}
	return v.Push(Composition(left, right)), true
}

// Seed registers every Unicode scalar of text as a unit token and returns
// the matching ID sequence, one ID per scalar. The result is empty but
// non-nil for empty text.
func (v *Vocabulary) Seed(text string) []TokenID {
	seq := make([]TokenID, 0, len(text))
	for _, r := range text {
		seq = append(seq, v.Push(Unit(r)))
	}
	return seq
}

// ExpandInto appends the full expansion of one token to dst. Unknown IDs
// return an error wrapping ErrUnknownToken; dst may already hold a
// partial expansion when that happens.
//
// The walk uses an explicit stack, so deeply nested compositions cannot
// overflow the call stack.
func (v *Vocabulary) ExpandInto(dst *strings.Builder, id TokenID) error {
	stack := make([]TokenID, 0, 32)
	stack = append(stack, id)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if int(cur) >= len(v.tokens) {
			return fmt.Errorf("%w: %d", ErrUnknownToken, cur)
		}
		tok := v.tokens[cur]
		if tok.kind == KindUnit {
			dst.WriteRune(tok.ch)
			continue
		}
		// right goes under left so the left side expands first
		stack = append(stack, tok.right, tok.left)
	}
	return nil
}

// Expand returns the expansion of a single token.
func (v *Vocabulary) Expand(id TokenID) (string, error) {
	var sb strings.Builder
	if err := v.ExpandInto(&sb, id); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// DecodeInto appends the expansions of all known IDs in ids to dst.
// Unknown IDs are skipped, so sequences carrying tokens from a newer
// vocabulary degrade instead of failing.
func (v *Vocabulary) DecodeInto(dst *strings.Builder, ids []TokenID) {
	if len(v.expansions) != len(v.tokens) {
		v.buildExpansions()
	}
	for _, id := range ids {
		if int(id) < len(v.expansions) {
			dst.WriteString(v.expansions[id])
		}
	}
}

// Decode returns the concatenated expansions of all known IDs in ids.
func (v *Vocabulary) Decode(ids []TokenID) string {
	var sb strings.Builder
	v.DecodeInto(&sb, ids)
	return sb.String()
}

// buildExpansions fills the bulk-decode cache bottom-up: composition
// operands always carry smaller IDs, so their texts are ready by the
// time the composition needs them.
func (v *Vocabulary) buildExpansions() {
	exp := make([]string, len(v.tokens))
	for id, tok := range v.tokens {
		if tok.kind == KindUnit {
			exp[id] = string(tok.ch)
			continue
		}
		if int(tok.left) >= id || int(tok.right) >= id {
			panic(fmt.Sprintf("tokenizer: composition %d references a later token", id))
		}
		exp[id] = exp[tok.left] + exp[tok.right]
	}
	v.expansions = exp
}

// Tokens returns a copy of all registered tokens in ID order.
func (v *Vocabulary) Tokens() []Token {
	out := make([]Token, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// FromTokens rebuilds a vocabulary from tokens listed in ID order, as
// produced by Tokens. Compositions must reference earlier entries and
// the list must not repeat a token.
func FromTokens(toks []Token) (*Vocabulary, error) {
	v := NewVocabulary()
	for i, tok := range toks {
		if tok.kind == KindComposition {
			if int(tok.left) >= i || int(tok.right) >= i {
				return nil, fmt.Errorf("tokenizer: token %d references a later token", i)
			}
		}
		if _, ok := v.ids[tok]; ok {
			return nil, fmt.Errorf("tokenizer: duplicate token at id %d", i)
		}
		v.Push(tok)
	}
	return v, nil
}
