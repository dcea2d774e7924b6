package dictionary

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func drain(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var got []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("timed out waiting for loader events")
		}
	}
}

func TestLoaderReady(t *testing.T) {
	loader := NewLoader(ReaderSource("test", strings.NewReader("cat\nact\nat\na\n")), 4)
	if loader.Status() != StatusIdle {
		t.Fatalf("expected idle loader, got %s", loader.Status())
	}
	if _, err := loader.Dictionary(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady before start, got %v", err)
	}

	events := drain(t, loader.Start(context.Background()))
	if len(events) == 0 {
		t.Fatal("expected events")
	}

	last := events[len(events)-1]
	if last.Status != StatusReady || !last.Terminal() {
		t.Fatalf("expected terminal ready event, got %+v", last)
	}
	if last.Words != 4 {
		t.Errorf("expected 4 words, got %d", last.Words)
	}
	for _, ev := range events[:len(events)-1] {
		if ev.Terminal() {
			t.Errorf("terminal event before the end: %+v", ev)
		}
	}

	dict, err := loader.Dictionary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dict.Contains("act") {
		t.Error("expected 'act' in loaded dictionary")
	}
	if loader.Status() != StatusReady || loader.Progress() != 100 {
		t.Errorf("expected ready at 100%%, got status=%v progress=%d", loader.Status(), loader.Progress())
	}
}

func TestLoaderStartIsIdempotent(t *testing.T) {
	loader := NewLoader(ReaderSource("test", strings.NewReader("cat\n")), 1)
	first := loader.Start(context.Background())
	second := loader.Start(context.Background())
	if first != second {
		t.Error("expected Start to return the same event stream")
	}
	drain(t, first)
	if loader.Status() != StatusReady {
		t.Error("expected loader to be ready")
	}
}

func TestLoaderNotReadyWhileLoading(t *testing.T) {
	pr, pw := io.Pipe()
	loader := NewLoader(ReaderSource("pipe", pr), 2)
	events := loader.Start(context.Background())

	if _, err := pw.Write([]byte("cat\n")); err != nil {
		t.Fatal(err)
	}
	if loader.Status() != StatusLoading {
		t.Errorf("expected loading status, got %s", loader.Status())
	}
	if _, err := loader.Dictionary(); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady while loading, got %v", err)
	}

	if _, err := pw.Write([]byte("dog\n")); err != nil {
		t.Fatal(err)
	}
	pw.Close()

	drain(t, events)
	dict, err := loader.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dict.Len() != 2 {
		t.Errorf("expected 2 words, got %d", dict.Len())
	}
}

func TestLoaderFailureIsTerminal(t *testing.T) {
	cause := errors.New("truncated asset")
	pr, pw := io.Pipe()
	loader := NewLoader(ReaderSource("pipe", pr), 100)
	events := loader.Start(context.Background())

	go func() {
		pw.Write([]byte("cat\ndog\n"))
		pw.CloseWithError(cause)
	}()

	got := drain(t, events)
	last := got[len(got)-1]
	if last.Status != StatusFailed {
		t.Fatalf("expected failed terminal event, got %+v", last)
	}
	if !errors.Is(last.Err, cause) {
		t.Errorf("expected event error to wrap cause, got %v", last.Err)
	}

	dict, err := loader.Dictionary()
	if dict != nil {
		t.Error("expected no dictionary after failure")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T (%v)", err, err)
	}
	if loader.Status() != StatusFailed {
		t.Errorf("failed loader must stay failed, got %v", loader.Status())
	}
}

func TestLoaderWaitRespectsContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	loader := NewLoader(ReaderSource("pipe", pr), 1)
	loader.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := loader.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestStatusString(t *testing.T) {
	for status, expected := range map[Status]string{
		StatusIdle:    "idle",
		StatusLoading: "loading",
		StatusReady:   "ready",
		StatusFailed:  "error",
		Status(42):    "unknown",
	} {
		if status.String() != expected {
			t.Errorf("expected %q, got %q", expected, status.String())
		}
	}
}
