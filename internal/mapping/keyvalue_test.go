package mapping

import (
	"reflect"
	"testing"
)

func TestPairs(t *testing.T) {
	block := "name|alice|\nage|30|\n"

	got := Pairs(block)
	want := []Pair{
		{Key: "name", Value: "alice"},
		{Key: "age", Value: "30"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}

func TestPairs_TrimsAndEscapes(t *testing.T) {
	block := " a<b | x/y |\n"

	got := Pairs(block)
	want := []Pair{{Key: "a&lt;b", Value: "x&#x2F;y"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}

func TestPairs_NoPairs(t *testing.T) {
	if got := Pairs("just text without separators"); len(got) != 0 {
		t.Errorf("Pairs() = %v, want none", got)
	}
}
