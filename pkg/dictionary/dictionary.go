/*
Package dictionary loads line-oriented word lists into an immutable set.

A Dictionary answers exact, case-sensitive membership queries in constant
time and is never mutated once Load returns. Each non-empty line of the
source becomes one entry; only the trailing line terminator is removed.

	dict, err := dictionary.Load(strings.NewReader("cat\nact\n"), 2, nil)
	dict.Contains("cat") // true
	dict.Contains("Cat") // false

Loading a large list is usually done in the background through a Loader,
which reports integer progress milestones and a terminal ready or failed
event. Searches must not call Contains until the Loader is ready.

Next to the hash set, every entry is indexed in a Patricia trie so the
dictionary can be inspected by prefix with Lookup. The trie is never used
to prune a search.
*/
package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/exp/slices"
)

// maxSizeHint caps the map preallocation taken from an expected line count.
const maxSizeHint = 1 << 20

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 1024

// Dictionary is an immutable set of words.
type Dictionary struct {
	words map[string]struct{}
	trie  *patricia.Trie
}

// LoadError is returned when a word list cannot be fully read.
// Nothing read before the failure is kept.
type LoadError struct {
	Source string
	Line   int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load dictionary %s: after line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("load dictionary %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newDictionary(sizeHint int) *Dictionary {
	if sizeHint < 0 {
		sizeHint = 0
	}
	if sizeHint > maxSizeHint {
		sizeHint = maxSizeHint
	}
	return &Dictionary{
		words: make(map[string]struct{}, sizeHint),
		trie:  patricia.NewTrie(),
	}
}

// New builds a dictionary from the given words. Empty strings are skipped.
func New(words ...string) *Dictionary {
	d := newDictionary(len(words))
	for _, w := range words {
		if w != "" {
			d.add(w)
		}
	}
	return d
}

func (d *Dictionary) add(word string) {
	if _, exists := d.words[word]; exists {
		return
	}
	d.words[word] = struct{}{}
	d.trie.Insert(patricia.Prefix(word), struct{}{})
}

// Contains reports whether word is an entry, by exact string equality.
func (d *Dictionary) Contains(word string) bool {
	if d == nil {
		return false
	}
	_, ok := d.words[word]
	return ok
}

// Len returns the number of distinct entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// Lookup returns the entries starting with prefix in lexicographic order.
// A limit of zero or less returns every match.
func (d *Dictionary) Lookup(prefix string, limit int) []string {
	if d == nil {
		return nil
	}

	var matches []string
	collect := func(p patricia.Prefix, _ patricia.Item) error {
		matches = append(matches, string(p))
		return nil
	}

	var err error
	if prefix == "" {
		err = d.trie.Visit(collect)
	} else {
		err = d.trie.VisitSubtree(patricia.Prefix(prefix), collect)
	}
	if err != nil {
		return nil
	}

	slices.Sort(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Load reads one word per line from r.
//
// expected is the number of lines the source is believed to hold; it only
// drives the progress milestones passed to progress, which may be nil.
// Milestones start at 0, increase by one and never exceed 100. A wrong
// expected count makes them stop early or never reach 100.
func Load(r io.Reader, expected int, progress func(percent int)) (*Dictionary, error) {
	return load(context.Background(), "reader", r, expected, progress)
}

func load(ctx context.Context, name string, r io.Reader, expected int, progress func(int)) (*Dictionary, error) {
	d := newDictionary(expected)
	milestones := newMilestones(expected, progress)
	reader := bufio.NewReaderSize(r, 64*1024)

	lines := 0
	for {
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, &LoadError{Source: name, Line: lines, Err: err}
		}
		if len(text) > 0 {
			lines++
			if word := strings.TrimRight(text, "\r\n"); word != "" {
				d.add(word)
			}
			milestones.advance(lines)
		}
		if err != nil {
			break
		}
		if lines%ctxCheckInterval == 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, &LoadError{Source: name, Line: lines, Err: ctxErr}
			}
		}
	}
	return d, nil
}

// milestones turns lines-read into percentage notifications.
type milestones struct {
	expected int
	last     int
	notify   func(int)
}

func newMilestones(expected int, notify func(int)) *milestones {
	m := &milestones{expected: expected, notify: notify}
	if notify != nil {
		notify(0)
	}
	return m
}

func (m *milestones) advance(lines int) {
	if m.notify == nil || m.expected <= 0 || m.last >= 100 {
		return
	}
	percent := int(int64(lines) * 100 / int64(m.expected))
	if percent > 100 {
		percent = 100
	}
	for m.last < percent {
		m.last++
		m.notify(m.last)
	}
}
