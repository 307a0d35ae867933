package engine

import "testing"

func TestSuppressor_BelowThreshold(t *testing.T) {
	s := newSuppressor(5)
	for i := 1; i <= 5; i++ {
		if s.duplicate("fp") {
			t.Fatalf("sighting %d suppressed, want allowed", i)
		}
	}
}

func TestSuppressor_AboveThreshold(t *testing.T) {
	s := newSuppressor(5)
	for i := 1; i <= 5; i++ {
		s.duplicate("fp")
	}
	for i := 6; i <= 10; i++ {
		if !s.duplicate("fp") {
			t.Fatalf("sighting %d allowed, want suppressed", i)
		}
	}
}

func TestSuppressor_ResetsPastTwiceThreshold(t *testing.T) {
	s := newSuppressor(5)
	// 11th sighting exceeds twice the threshold and resets the counter.
	for i := 1; i <= 11; i++ {
		s.duplicate("fp")
	}
	if s.duplicate("fp") {
		t.Error("sighting after reset suppressed, want allowed")
	}
}

func TestSuppressor_IndependentFingerprints(t *testing.T) {
	s := newSuppressor(5)
	for i := 0; i < 10; i++ {
		s.duplicate("noisy")
	}
	if s.duplicate("quiet") {
		t.Error("unrelated fingerprint suppressed")
	}
}
