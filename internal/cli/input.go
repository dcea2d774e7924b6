// Package cli is the interactive front end: it reads letters from stdin and
// prints every word they spell, ranked.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/unscramble/internal/utils"
	"github.com/bastiangx/unscramble/pkg/dictionary"
	"github.com/bastiangx/unscramble/pkg/solver"
	"github.com/charmbracelet/log"
)

const (
	quitCommand  = ":q"
	lookupPrefix = "?"
)

// Searcher runs one search for raw input text. *solver.Engine implements it.
type Searcher interface {
	Search(ctx context.Context, raw string) (*solver.Result, error)
}

// DictionaryState exposes the loading dictionary. *dictionary.Loader implements it.
type DictionaryState interface {
	Progress() int
	Dictionary() (*dictionary.Dictionary, error)
}

// InputHandler reads lines from stdin and answers them.
// A plain line is searched, a line starting with "?" lists dictionary words
// with that prefix and ":q" quits.
type InputHandler struct {
	searcher    Searcher
	dict        DictionaryState
	lookupLimit int

	in          io.Reader
	display     *display
	interactive bool

	requestCount int
}

// NewInputHandler creates a handler on stdin/stdout.
func NewInputHandler(searcher Searcher, dict DictionaryState, perLine, lookupLimit int) *InputHandler {
	h := NewInputHandlerWithIO(searcher, dict, perLine, lookupLimit, os.Stdin, os.Stdout)
	h.interactive = isTerminal(os.Stdin)
	return h
}

// NewInputHandlerWithIO creates a handler on the given streams.
func NewInputHandlerWithIO(searcher Searcher, dict DictionaryState, perLine, lookupLimit int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		searcher:    searcher,
		dict:        dict,
		lookupLimit: lookupLimit,
		in:          in,
		display:     newDisplay(out, perLine),
	}
}

// Start runs the input loop until stdin ends, ":q" is read or ctx is done.
// Load progress from events is reported in the background; searches typed
// before the dictionary is ready are rejected, not queued.
func (h *InputHandler) Start(ctx context.Context, events <-chan dictionary.Event) error {
	log.Print("unscramble CLI")
	log.Print("type some letters and press Enter, ?prefix to browse the dictionary, :q to exit")

	if events != nil {
		go func() {
			if err := h.awaitLoad(ctx, events, true); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("Dictionary unavailable: %v", err)
			}
		}()
	}

	reader := bufio.NewReader(h.in)
	for {
		if h.interactive {
			h.display.prompt()
		}
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			if quit := h.handleInput(ctx, line); quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// RunOnce waits for the dictionary, searches letters once and prints the
// result.
func (h *InputHandler) RunOnce(ctx context.Context, letters string, events <-chan dictionary.Event) error {
	if events != nil {
		if err := h.awaitLoad(ctx, events, false); err != nil {
			return err
		}
	}
	res, err := h.searcher.Search(ctx, letters)
	if err != nil {
		return err
	}
	h.display.result(res)
	return nil
}

// awaitLoad consumes load events until the terminal one. Progress goes to
// the log every ten percent; verbose prints it regardless of level.
func (h *InputHandler) awaitLoad(ctx context.Context, events <-chan dictionary.Event, verbose bool) error {
	report := log.Debugf
	if verbose {
		report = log.Printf
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.Terminal() {
				if ev.Percent%10 == 0 {
					report("Loading dictionary: %d%%", ev.Percent)
				}
				continue
			}
			if ev.Err != nil {
				return ev.Err
			}
			report("Dictionary ready: %s words in %s", utils.FormatWithCommas(ev.Words), formatElapsed(ev.Elapsed))
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// handleInput answers one line and reports whether the loop should stop.
func (h *InputHandler) handleInput(ctx context.Context, line string) bool {
	switch {
	case line == quitCommand:
		return true
	case strings.HasPrefix(line, lookupPrefix):
		h.handleLookup(strings.TrimPrefix(line, lookupPrefix))
		return false
	}

	h.requestCount++
	if !utils.HasOnlyLetters(line) {
		log.Debug("Ignoring non-letters", "input", line, "digits", utils.ContainsNumbers(line))
	}

	res, err := h.searcher.Search(ctx, line)
	if err != nil {
		h.reportError(err)
		return false
	}
	log.Debugf("Request %d: %q -> %d words from %d candidates in %v",
		h.requestCount, res.Letters, res.Count, res.Candidates, res.Elapsed)
	if res.Letters == "" {
		log.Warnf("No letters in %q", line)
	}
	h.display.result(res)
	return false
}

func (h *InputHandler) handleLookup(prefix string) {
	dict, err := h.dict.Dictionary()
	if err != nil {
		h.reportError(err)
		return
	}
	h.display.lookup(prefix, dict.Lookup(prefix, h.lookupLimit))
}

func (h *InputHandler) reportError(err error) {
	var tooLong *solver.InputTooLongError
	var loadErr *dictionary.LoadError
	switch {
	case errors.Is(err, solver.ErrNotReady):
		log.Warnf("Dictionary not ready (%d%% loaded), please wait", h.dict.Progress())
	case errors.As(err, &loadErr):
		log.Errorf("Dictionary unavailable: %v", loadErr)
	case errors.As(err, &tooLong):
		log.Errorf("Too many letters: %d (maximum %d)", tooLong.Letters, tooLong.Max)
	case errors.Is(err, context.DeadlineExceeded):
		log.Error("Search timed out")
	default:
		log.Errorf("Search failed: %v", err)
	}
}
