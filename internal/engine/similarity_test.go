package engine

import (
	"math"
	"testing"
)

func TestSimilarity_Identical(t *testing.T) {
	fp := "name|alice|col:2"
	if got := similarity(fp, fp, 16); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("similarity(fp, fp) = %v, want 1.0", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "name|alice|col:2"
	b := "name|bob|col:3"
	if similarity(a, b, 16) != similarity(b, a, 16) {
		t.Errorf("similarity not symmetric: %v vs %v", similarity(a, b, 16), similarity(b, a, 16))
	}
}

func TestSimilarity_NearIdenticalPrefixes(t *testing.T) {
	// One substituted character in the content prefix keeps the score
	// above the merge threshold.
	a := "HEADERAAAA|col:3"
	b := "HEADERAAAB|col:3"
	if got := similarity(a, b, 16); got < 0.85 {
		t.Errorf("similarity() = %v, want >= 0.85", got)
	}
}

func TestSimilarity_DisjointPrefixes(t *testing.T) {
	a := "aaaaaaaaaa|col:2"
	b := "bbbbbbbbbb|col:2"
	if got := similarity(a, b, 16); got >= 0.85 {
		t.Errorf("similarity() = %v, want < 0.85", got)
	}
}

func TestSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a|col:1", "z|col:9"},
		{"abc|col:2", "abc|col:2"},
	}
	for _, p := range pairs {
		got := similarity(p[0], p[1], 16)
		if got < 0 || got > 1 {
			t.Errorf("similarity(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestCosine_ZeroMagnitude(t *testing.T) {
	if got := cosine(make([]float64, 4), []float64{1, 0, 0, 0}); got != 0 {
		t.Errorf("cosine(zero, v) = %v, want 0", got)
	}
}

func TestStyleSimilarity_CompatibleCounts(t *testing.T) {
	if got := styleSimilarity("x|col:2", "y|col:4"); got != 1.0 {
		t.Errorf("styleSimilarity() = %v, want 1.0", got)
	}
}
