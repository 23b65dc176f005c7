package tokenizer

import "sort"

// Digram is an ordered pair of adjacent token IDs in a sequence.
type Digram struct {
	Left, Right TokenID
}

// countDigrams tallies every adjacent ordered pair of seq into counts.
// Runs of one ID count their overlaps: [a a a] yields (a,a) twice.
func countDigrams(seq []TokenID, counts map[Digram]int) {
	for i := 0; i+1 < len(seq); i++ {
		counts[Digram{seq[i], seq[i+1]}]++
	}
}

// digramCount pairs a digram with its frequency for ranking.
type digramCount struct {
	digram Digram
	count  int
}

// topDigrams ranks the digrams whose count is strictly above cutoff and
// returns at most n of them, most frequent first. Equal counts are
// ordered by (Left, Right) ascending so selection is deterministic.
func topDigrams(counts map[Digram]int, n, cutoff int) []digramCount {
	if n <= 0 {
		return nil
	}
	ranked := make([]digramCount, 0, len(counts))
	for d, c := range counts {
		if c > cutoff {
			ranked = append(ranked, digramCount{d, c})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.count != b.count {
			return a.count > b.count
		}
		if a.digram.Left != b.digram.Left {
			return a.digram.Left < b.digram.Left
		}
		return a.digram.Right < b.digram.Right
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// rewriteDigram appends src to dst with every non-overlapping occurrence
// of d replaced by id, scanning left to right: a match consumes two
// elements, so [a a a] with d=(a,a) becomes [id a]. dst should arrive
// empty; the appended slice is returned.
func rewriteDigram(dst, src []TokenID, d Digram, id TokenID) []TokenID {
	i := 0
	for i < len(src) {
		if i+1 < len(src) && src[i] == d.Left && src[i+1] == d.Right {
			dst = append(dst, id)
			i += 2
		} else {
			dst = append(dst, src[i])
			i++
		}
	}
	return dst
}

// containsDigram reports whether d occurs anywhere in seq.
func containsDigram(seq []TokenID, d Digram) bool {
	for i := 0; i+1 < len(seq); i++ {
		if seq[i] == d.Left && seq[i+1] == d.Right {
			return true
		}
	}
	return false
}
