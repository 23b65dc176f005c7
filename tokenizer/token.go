package tokenizer

// ============================================================================
// Token model:
//
//   Unit         wraps a single Unicode scalar (one rune)
//   Composition  wraps an ordered pair of token IDs (left, right)
//
// IDs are dense: the k-th distinct token registered in a Vocabulary gets
// ID k, and IDs are never reused or dropped. A composition built through
// Compose always refers to IDs smaller than its own, so the expansion
// graph is acyclic and every token expands in a finite number of steps.
// ============================================================================

// TokenID identifies a token within a Vocabulary.
type TokenID uint32

// TokenKind discriminates the two token shapes.
type TokenKind uint8

const (
	KindUnit TokenKind = iota
	KindComposition
)

// Token is either a unit (one rune) or a composition of two earlier
// tokens, meaning "left's expansion followed by right's". Tokens are
// plain comparable values; the Vocabulary deduplicates on structural
// equality.
type Token struct {
	kind  TokenKind
	ch    rune
	left  TokenID
	right TokenID
}

// Unit returns the token wrapping a single Unicode scalar.
func Unit(r rune) Token {
	return Token{kind: KindUnit, ch: r}
}

// Composition returns the token that expands to left's expansion
// followed by right's.
func Composition(left, right TokenID) Token {
	return Token{kind: KindComposition, left: left, right: right}
}

// Kind reports whether the token is a unit or a composition.
func (t Token) Kind() TokenKind {
	return t.kind
}

// Rune returns the wrapped scalar; zero for compositions.
func (t Token) Rune() rune {
	return t.ch
}

// Pair returns the operand IDs; zeros for units.
func (t Token) Pair() (left, right TokenID) {
	return t.left, t.right
}
