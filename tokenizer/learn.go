package tokenizer

import "fmt"

// ============================================================================
// Vocabulary learning: repeated greedy digram promotion.
//
// Each round counts the adjacent pairs of the working sequence, selects
// the most frequent ones, and rewrites their occurrences to freshly
// composed tokens. Counts go stale within a round on purpose; the next
// round recounts from scratch.
// ============================================================================

// LearnOpts controls a Learn run.
type LearnOpts struct {
	Merges       int          // total promotions before stopping
	Replacements int          // digrams promoted per round
	Cutoff       int          // strict lower bound on digram frequency
	Progress     ProgressFunc // optional per-promotion callback
}

// DefaultLearnOpts returns the stock parameters: one promotion per round,
// digrams must occur at least twice, generous merge budget.
func DefaultLearnOpts() LearnOpts {
	return LearnOpts{Merges: 100000, Replacements: 1, Cutoff: 1}
}

// Progress describes one digram promotion during Learn.
type Progress struct {
	Round      int     // learning round, starting at 1
	Promotions int     // promotions completed so far, this one included
	Digram     Digram  // the promoted pair
	Count      int     // its frequency when selected (stale within a round)
	NewID      TokenID // the composed token
	SeqLen     int     // working sequence length after the rewrite
	VocabSize  int     // vocabulary size after the promotion
}

// ProgressFunc observes promotions. Callbacks run synchronously on the
// calling goroutine; Learn itself never writes to any output.
type ProgressFunc func(Progress)

// Learn grows the vocabulary from text and returns the compressed ID
// sequence. The text is seeded one unit token per Unicode scalar; each
// round then promotes up to opts.Replacements digrams, the rarest of the
// selected batch first, until opts.Merges promotions have happened or no
// digram's frequency exceeds opts.Cutoff. The merge budget cuts a round
// short mid-batch when it runs out.
//
// A selected digram can already be gone by the time its turn comes, wiped
// by an earlier rewrite in the same round. Its composition is still
// registered, it still spends one promotion, and the rewrite is a no-op.
func (v *Vocabulary) Learn(text string, opts LearnOpts) []TokenID {
	cur := v.Seed(text)
	if opts.Merges <= 0 {
		return cur
	}

	next := make([]TokenID, 0, len(cur))
	counts := make(map[Digram]int, 1024)
	promotions := 0

	for round := 1; promotions < opts.Merges; round++ {
		countDigrams(cur, counts)
		top := topDigrams(counts, opts.Replacements, opts.Cutoff)
		if len(top) == 0 {
			break
		}
		for i := len(top) - 1; i >= 0 && promotions < opts.Merges; i-- {
			cand := top[i]
			id, ok := v.Compose(cand.digram.Left, cand.digram.Right)
			if !ok {
				panic(fmt.Sprintf("tokenizer: selected digram (%d,%d) not in vocabulary",
					cand.digram.Left, cand.digram.Right))
			}
			next = rewriteDigram(next, cur, cand.digram, id)
			cur, next = next, cur[:0]
			promotions++
			if opts.Progress != nil {
				opts.Progress(Progress{
					Round:      round,
					Promotions: promotions,
					Digram:     cand.digram,
					Count:      cand.count,
					NewID:      id,
					SeqLen:     len(cur),
					VocabSize:  len(v.tokens),
				})
			}
		}
		clear(counts)
	}
	return cur
}
