package solver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bastiangx/unscramble/internal/utils"
	"github.com/bastiangx/unscramble/pkg/dictionary"
	"github.com/charmbracelet/log"
)

var (
	// ErrNotReady rejects a search issued before the dictionary has loaded.
	ErrNotReady = dictionary.ErrNotReady

	// ErrBusy rejects a search issued while another one is running.
	ErrBusy = errors.New("another search is in progress")
)

// InputTooLongError rejects inputs with more letters than the engine allows.
type InputTooLongError struct {
	Letters int
	Max     int
}

func (e *InputTooLongError) Error() string {
	return fmt.Sprintf("input has %d letters, maximum is %d", e.Letters, e.Max)
}

// Gate hands out the dictionary once it is ready.
// *dictionary.Loader implements it.
type Gate interface {
	Dictionary() (*dictionary.Dictionary, error)
}

// Options tune an Engine.
type Options struct {
	// Lowercase folds input letters before searching. The dictionary itself
	// is always matched case-sensitively.
	Lowercase bool
	// MaxLetters rejects longer inputs; zero means unlimited.
	MaxLetters int
	// Timeout bounds a single search; zero means none.
	Timeout time.Duration
}

// Result is the outcome of one search.
type Result struct {
	Input      string
	Letters    string
	Words      []string
	Count      int
	Candidates uint64
	Elapsed    time.Duration
}

// ElapsedSeconds is the search time in whole seconds.
func (r *Result) ElapsedSeconds() int {
	return int(r.Elapsed / time.Second)
}

// Engine runs searches against a gated dictionary, one at a time.
type Engine struct {
	gate Gate
	opts Options
	mu   sync.Mutex
}

// NewEngine creates an engine reading its dictionary from gate.
func NewEngine(gate Gate, opts Options) *Engine {
	return &Engine{gate: gate, opts: opts}
}

// Search filters raw down to its letters and returns every dictionary word
// they spell, ranked.
//
// It returns ErrNotReady while the dictionary is loading, the load error if
// loading failed, and ErrBusy if a search is already running. Requests are
// never queued. An input without letters yields an empty result.
func (e *Engine) Search(ctx context.Context, raw string) (*Result, error) {
	start := time.Now()

	dict, err := e.gate.Dictionary()
	if err != nil {
		return nil, err
	}

	if !e.mu.TryLock() {
		return nil, ErrBusy
	}
	defer e.mu.Unlock()

	letters := utils.FilterLetters(raw)
	if e.opts.Lowercase {
		letters = utils.LowerLetters(letters)
	}
	if e.opts.MaxLetters > 0 && len(letters) > e.opts.MaxLetters {
		return nil, &InputTooLongError{Letters: len(letters), Max: e.opts.MaxLetters}
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	candidates := CandidateCount(len(letters))
	log.Debugf("Searching %q: %d letters, %d candidates", string(letters), len(letters), candidates)

	found, err := Search(ctx, letters, dict)
	if err != nil {
		log.Debugf("Search for %q abandoned after %v: %v", string(letters), time.Since(start), err)
		return nil, err
	}
	words := Rank(found)

	return &Result{
		Input:      raw,
		Letters:    string(letters),
		Words:      words,
		Count:      len(words),
		Candidates: candidates,
		Elapsed:    time.Since(start),
	}, nil
}
