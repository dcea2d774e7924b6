package dictionary

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNotReady is returned by Loader.Dictionary while loading is in progress.
var ErrNotReady = errors.New("dictionary not ready")

// Status is the lifecycle state of a Loader.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a load notification. Progress events carry StatusLoading and a
// Percent; the last event on the channel is terminal.
type Event struct {
	Status  Status
	Percent int
	Words   int
	Elapsed time.Duration
	Err     error
}

// Terminal reports whether e is the final ready or failed event.
func (e Event) Terminal() bool {
	return e.Status == StatusReady || e.Status == StatusFailed
}

// one event per milestone 0..100 plus the terminal one
const eventBufferSize = 102

// Loader loads a dictionary once, in the background.
type Loader struct {
	src      Source
	expected int

	mu      sync.RWMutex
	status  Status
	percent int
	dict    *Dictionary
	err     error

	once   sync.Once
	events chan Event
	done   chan struct{}
}

// NewLoader prepares a background load of src. expected is the line count
// used for progress milestones.
func NewLoader(src Source, expected int) *Loader {
	return &Loader{
		src:      src,
		expected: expected,
		status:   StatusIdle,
		events:   make(chan Event, eventBufferSize),
		done:     make(chan struct{}),
	}
}

// Start begins loading on a new goroutine and returns the event stream.
// Calling Start again returns the same stream without reloading.
// The channel is buffered for every event a load can produce, so an absent
// or slow reader never stalls the load. It is closed after the terminal event.
func (l *Loader) Start(ctx context.Context) <-chan Event {
	l.once.Do(func() {
		l.mu.Lock()
		l.status = StatusLoading
		l.mu.Unlock()
		go l.run(ctx)
	})
	return l.events
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)
	defer close(l.events)

	start := time.Now()
	log.Debugf("Loading word list from %s (expecting ~%d lines)", l.src.Name(), l.expected)
	dict, err := loadSource(ctx, l.src, l.expected, l.publish)
	elapsed := time.Since(start)

	l.mu.Lock()
	if err != nil {
		l.status = StatusFailed
		l.err = err
	} else {
		l.status = StatusReady
		l.dict = dict
	}
	l.mu.Unlock()

	if err != nil {
		log.Errorf("Dictionary load failed: %v", err)
		l.events <- Event{Status: StatusFailed, Percent: l.Progress(), Elapsed: elapsed, Err: err}
		return
	}
	log.Debugf("Dictionary ready: %d words in %v", dict.Len(), elapsed)
	l.events <- Event{Status: StatusReady, Percent: l.Progress(), Words: dict.Len(), Elapsed: elapsed}
}

func (l *Loader) publish(percent int) {
	l.mu.Lock()
	l.percent = percent
	l.mu.Unlock()
	l.events <- Event{Status: StatusLoading, Percent: percent}
}

// Status returns the current lifecycle state.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Progress returns the last reported milestone.
func (l *Loader) Progress() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.percent
}

// Dictionary returns the loaded dictionary. It returns ErrNotReady before
// loading completes and the load error once loading has failed; a failed
// loader never becomes ready.
func (l *Loader) Dictionary() (*Dictionary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	switch l.status {
	case StatusReady:
		return l.dict, nil
	case StatusFailed:
		return nil, l.err
	default:
		return nil, ErrNotReady
	}
}

// Wait blocks until loading finishes or ctx is done.
// Wait on a loader that was never started only returns through ctx.
func (l *Loader) Wait(ctx context.Context) (*Dictionary, error) {
	select {
	case <-l.done:
		return l.Dictionary()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
