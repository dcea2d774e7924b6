/*
Package solver finds the dictionary words hidden in a handful of letters.

The search is exhaustive: Enumerate produces every ordered arrangement of
every non-empty subset of the input positions, and Search keeps the ones the
dictionary contains. Two positions holding the same letter are still distinct
positions, so "aab" yields "ab" twice; the result set collapses such
repeats. For n positions the candidate count is

	Σ_{k=1}^{n} n!/(n-k)!

which is 13,699 for seven letters and 9,864,100 for ten. No pruning is
applied; CandidateCount reports the exact figure up front.

Rank orders matches longest first, then alphabetically, and Format lays them
out in fixed-width rows for terminals. Engine ties these together behind a
readiness gate so a search is rejected until the dictionary has loaded.
*/
package solver

import (
	"context"
	"math"
	"math/bits"
)

// ctxCheckInterval is how many candidates are produced between context checks.
const ctxCheckInterval = 4096

// Enumerate calls yield once for every ordered arrangement of every
// non-empty subset of positions in letters. Emission order is unspecified.
//
// Enumeration stops early without error when yield returns false, and with
// ctx.Err() when ctx is cancelled.
func Enumerate(ctx context.Context, letters []rune, yield func(candidate string) bool) error {
	if len(letters) == 0 {
		return nil
	}
	w := &walker{
		ctx:     ctx,
		letters: letters,
		used:    make([]bool, len(letters)),
		prefix:  make([]rune, 0, len(letters)),
		yield:   yield,
	}
	w.extend()
	return w.err
}

// walker holds the depth-first state: prefix is the arrangement built so
// far and used marks the positions it consumed.
type walker struct {
	ctx     context.Context
	letters []rune
	used    []bool
	prefix  []rune
	yield   func(string) bool
	emitted uint64
	err     error
}

// extend grows the current prefix by each unused position in turn.
// Every prefix is a candidate, so each arrangement is visited exactly once.
func (w *walker) extend() bool {
	for i, r := range w.letters {
		if w.used[i] {
			continue
		}
		w.used[i] = true
		w.prefix = append(w.prefix, r)

		ok := w.emit() && w.extend()

		w.prefix = w.prefix[:len(w.prefix)-1]
		w.used[i] = false
		if !ok {
			return false
		}
	}
	return true
}

func (w *walker) emit() bool {
	w.emitted++
	if w.emitted%ctxCheckInterval == 0 {
		if err := w.ctx.Err(); err != nil {
			w.err = err
			return false
		}
	}
	return w.yield(string(w.prefix))
}

// CandidateCount returns Σ_{k=1}^{n} n!/(n-k)!, the number of candidates
// Enumerate produces for n letters. It saturates at math.MaxUint64.
func CandidateCount(n int) uint64 {
	var total, term uint64 = 0, 1
	for k := 1; k <= n; k++ {
		hi, lo := bits.Mul64(term, uint64(n-k+1))
		if hi != 0 {
			return math.MaxUint64
		}
		term = lo
		var carry uint64
		total, carry = bits.Add64(total, term, 0)
		if carry != 0 {
			return math.MaxUint64
		}
	}
	return total
}
