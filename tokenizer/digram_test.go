package tokenizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCountDigrams(t *testing.T) {
	counts := make(map[Digram]int)
	countDigrams([]TokenID{1, 2, 1, 2, 1}, counts)

	want := map[Digram]int{
		{1, 2}: 2,
		{2, 1}: 2,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCountDigramsOverlappingRun(t *testing.T) {
	counts := make(map[Digram]int)
	countDigrams([]TokenID{7, 7, 7}, counts)

	if counts[Digram{7, 7}] != 2 {
		t.Errorf("count of (7,7) in [7 7 7] = %d, want 2", counts[Digram{7, 7}])
	}
}

func TestCountDigramsShortSequences(t *testing.T) {
	for _, seq := range [][]TokenID{nil, {}, {5}} {
		counts := make(map[Digram]int)
		countDigrams(seq, counts)
		if len(counts) != 0 {
			t.Errorf("countDigrams(%v) produced %d entries, want 0", seq, len(counts))
		}
	}
}

func TestTopDigramsCutoffIsStrict(t *testing.T) {
	counts := map[Digram]int{
		{0, 1}: 3,
		{1, 0}: 2,
		{1, 1}: 1,
	}

	got := topDigrams(counts, 10, 2)
	if len(got) != 1 {
		t.Fatalf("topDigrams with cutoff 2 returned %d digrams, want 1", len(got))
	}
	if got[0].digram != (Digram{0, 1}) || got[0].count != 3 {
		t.Errorf("survivor = %v count %d, want (0,1) count 3", got[0].digram, got[0].count)
	}
}

func TestTopDigramsOrderingAndBound(t *testing.T) {
	counts := map[Digram]int{
		{5, 5}: 9,
		{0, 1}: 4,
		{4, 0}: 4, // ties with (0,1); (0,1) must rank first
		{2, 3}: 7,
		{9, 9}: 2,
	}

	got := topDigrams(counts, 3, 1)
	want := []digramCount{
		{Digram{5, 5}, 9},
		{Digram{2, 3}, 7},
		{Digram{0, 1}, 4},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(digramCount{})); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestTopDigramsTieBreak(t *testing.T) {
	counts := map[Digram]int{
		{4, 0}: 2,
		{0, 1}: 2,
		{0, 0}: 2,
	}

	got := topDigrams(counts, 3, 0)
	want := []digramCount{
		{Digram{0, 0}, 2},
		{Digram{0, 1}, 2},
		{Digram{4, 0}, 2},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(digramCount{})); diff != "" {
		t.Errorf("tie ordering mismatch (-want +got):\n%s", diff)
	}
}

func TestTopDigramsEmpty(t *testing.T) {
	if got := topDigrams(map[Digram]int{}, 5, 0); len(got) != 0 {
		t.Errorf("topDigrams on empty counts = %v, want none", got)
	}
	if got := topDigrams(map[Digram]int{{0, 1}: 4}, 0, 0); got != nil {
		t.Errorf("topDigrams with n=0 = %v, want nil", got)
	}
}

func TestRewriteDigram(t *testing.T) {
	tests := []struct {
		name string
		src  []TokenID
		d    Digram
		id   TokenID
		want []TokenID
	}{
		{"two matches", []TokenID{0, 1, 2, 0, 1}, Digram{0, 1}, 9, []TokenID{9, 2, 9}},
		{"no match", []TokenID{0, 2, 1}, Digram{0, 1}, 9, []TokenID{0, 2, 1}},
		{"overlap consumes left first", []TokenID{0, 0, 0}, Digram{0, 0}, 9, []TokenID{9, 0}},
		{"back to back", []TokenID{0, 0, 0, 0}, Digram{0, 0}, 9, []TokenID{9, 9}},
		{"match at end", []TokenID{2, 0, 1}, Digram{0, 1}, 9, []TokenID{2, 9}},
		{"single element", []TokenID{0}, Digram{0, 0}, 9, []TokenID{0}},
		{"empty", []TokenID{}, Digram{0, 0}, 9, []TokenID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteDigram(make([]TokenID, 0, len(tt.src)), tt.src, tt.d, tt.id)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rewrite mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContainsDigram(t *testing.T) {
	seq := []TokenID{3, 1, 4, 1}
	if !containsDigram(seq, Digram{4, 1}) {
		t.Error("containsDigram missed (4,1)")
	}
	if containsDigram(seq, Digram{1, 3}) {
		t.Error("containsDigram found absent (1,3)")
	}
	if containsDigram([]TokenID{5}, Digram{5, 5}) {
		t.Error("containsDigram found a pair in a one-element sequence")
	}
}
