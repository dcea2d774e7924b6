package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(t *testing.T, input string) []string {
	t.Helper()
	var got []string
	err := Enumerate(context.Background(), []rune(input), func(c string) bool {
		got = append(got, c)
		return true
	})
	if err != nil {
		t.Fatalf("Enumerate(%q) failed: %v", input, err)
	}
	return got
}

// checks the closed form against the enumerator for every length up to 7
func TestEnumerateCandidateCount(t *testing.T) {
	letters := "abcdefg"
	expected := []uint64{0, 1, 4, 15, 64, 325, 1956, 13699}

	for n := 0; n <= len(letters); n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			got := collect(t, letters[:n])
			if uint64(len(got)) != expected[n] {
				t.Errorf("expected %d candidates, got %d", expected[n], len(got))
			}
			if CandidateCount(n) != expected[n] {
				t.Errorf("CandidateCount(%d) = %d, expected %d", n, CandidateCount(n), expected[n])
			}
		})
	}
}

func TestEnumerateDistinctLettersYieldEachArrangementOnce(t *testing.T) {
	got := collect(t, "abcd")

	seen := make(map[string]bool, len(got))
	for _, c := range got {
		if seen[c] {
			t.Errorf("candidate %q produced more than once", c)
		}
		seen[c] = true

		used := make(map[rune]bool)
		for _, r := range c {
			if used[r] {
				t.Errorf("candidate %q reuses letter %q", c, r)
			}
			used[r] = true
			if r < 'a' || r > 'd' {
				t.Errorf("candidate %q contains foreign letter %q", c, r)
			}
		}
	}
	for _, must := range []string{"a", "d", "ba", "dcba", "cab", "bd"} {
		if !seen[must] {
			t.Errorf("expected candidate %q", must)
		}
	}
}

func TestEnumerateRepeatedLettersArePositions(t *testing.T) {
	got := collect(t, "aab")
	if len(got) != 15 {
		t.Fatalf("expected 15 candidates for 3 positions, got %d", len(got))
	}

	counts := make(map[string]int)
	for _, c := range got {
		counts[c]++
	}
	expected := map[string]int{
		"a": 2, "b": 1,
		"aa": 2, "ab": 2, "ba": 2,
		"aab": 2, "aba": 2, "baa": 2,
	}
	if diff := cmp.Diff(expected, counts); diff != "" {
		t.Errorf("candidate multiplicity mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateStopsWhenYieldDeclines(t *testing.T) {
	calls := 0
	err := Enumerate(context.Background(), []rune("abcdef"), func(string) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 calls, got %d", calls)
	}
}

func TestEnumerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Enumerate(ctx, []rune("abcdefgh"), func(string) bool {
		calls++
		return true
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if uint64(calls) >= CandidateCount(8) {
		t.Errorf("expected enumeration to stop early, got all %d candidates", calls)
	}
}

func TestEnumerateUnicodeLetters(t *testing.T) {
	got := collect(t, "éa")
	sort.Strings(got)
	if diff := cmp.Diff([]string{"a", "aé", "é", "éa"}, got); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidateCountLarge(t *testing.T) {
	if got := CandidateCount(10); got != 9864100 {
		t.Errorf("CandidateCount(10) = %d, expected 9864100", got)
	}
	if got := CandidateCount(100); got != math.MaxUint64 {
		t.Errorf("expected saturation for 100 letters, got %d", got)
	}
}

func BenchmarkEnumerate7(b *testing.B) {
	letters := []rune("stained")
	for i := 0; i < b.N; i++ {
		Enumerate(context.Background(), letters, func(string) bool { return true })
	}
}
