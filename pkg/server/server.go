package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/unscramble/internal/logger"
	"github.com/bastiangx/unscramble/pkg/config"
	"github.com/bastiangx/unscramble/pkg/dictionary"
	"github.com/bastiangx/unscramble/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Searcher runs one search for raw input text.
type Searcher interface {
	Search(ctx context.Context, raw string) (*solver.Result, error)
}

// DictionaryState exposes the loading dictionary. *dictionary.Loader implements it.
type DictionaryState interface {
	Status() dictionary.Status
	Progress() int
	Dictionary() (*dictionary.Dictionary, error)
}

// Server handles msgpack IPC for searches.
// All writes happen on the goroutine running Start.
type Server struct {
	searcher Searcher
	dict     DictionaryState
	events   <-chan dictionary.Event
	config   config.ServerConfig

	in     io.Reader
	out    *bufio.Writer
	enc    *msgpack.Encoder
	logger *log.Logger

	requestCount int
}

// NewServer creates a server on stdin/stdout. events is the loader's
// progress stream; it may be nil when the dictionary is already loaded.
func NewServer(searcher Searcher, dict DictionaryState, events <-chan dictionary.Event, cfg config.ServerConfig) *Server {
	return NewServerWithIO(searcher, dict, events, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server on the given streams.
func NewServerWithIO(searcher Searcher, dict DictionaryState, events <-chan dictionary.Event, cfg config.ServerConfig, in io.Reader, out io.Writer) *Server {
	w := bufio.NewWriter(out)
	return &Server{
		searcher: searcher,
		dict:     dict,
		events:   events,
		config:   cfg,
		in:       in,
		out:      w,
		enc:      msgpack.NewEncoder(w),
		logger:   logger.New("server"),
	}
}

// Start serves requests until the input ends or ctx is done.
// It first writes the current dictionary status, then forwards load events
// as they arrive, interleaved with responses.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting msgpack IPC")

	requests := make(chan msgpack.RawMessage)
	readErr := make(chan error, 1)
	go s.readRequests(ctx, requests, readErr)

	s.send(s.statusResponse(""))

	events := s.events
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.send(eventResponse(ev))
			if ev.Terminal() {
				s.logger.Debug("Dictionary load finished", "status", ev.Status, "words", ev.Words, "elapsed", ev.Elapsed)
			}
		case raw := <-requests:
			s.handleRequest(ctx, raw)
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Client closed input", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Reading request stream: %v", err)
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

// readRequests splits the input into one raw msgpack value per request.
// Decoding into Request happens later so a malformed value only fails that
// request.
func (s *Server) readRequests(ctx context.Context, requests chan<- msgpack.RawMessage, readErr chan<- error) {
	dec := msgpack.NewDecoder(bufio.NewReader(s.in))
	for {
		raw, err := dec.DecodeRaw()
		if err != nil {
			readErr <- err
			return
		}
		select {
		case requests <- raw:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, raw msgpack.RawMessage) {
	s.requestCount++

	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "invalid request", 400)
		return
	}

	switch req.Action {
	case "", ActionSearch:
		s.handleSearch(ctx, req)
	case ActionStatus:
		s.send(s.statusResponse(req.ID))
	case ActionLookup:
		s.handleLookup(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleSearch(ctx context.Context, req Request) {
	result, err := s.searcher.Search(ctx, req.Letters)
	if err != nil {
		message, code := errorCode(err)
		s.logger.Debug("Search rejected", "id", req.ID, "code", code, "err", err)
		s.sendError(req.ID, message, code)
		return
	}

	s.logger.Debugf("Search %s: %q -> %d words in %v", req.ID, result.Letters, result.Count, result.Elapsed)
	s.send(SearchResponse{
		ID:         req.ID,
		Words:      result.Words,
		Count:      result.Count,
		Candidates: result.Candidates,
		Seconds:    result.ElapsedSeconds(),
		TimeTaken:  result.Elapsed.Microseconds(),
	})
}

func (s *Server) handleLookup(req Request) {
	dict, err := s.dict.Dictionary()
	if err != nil {
		message, code := errorCode(err)
		s.sendError(req.ID, message, code)
		return
	}

	limit := req.Limit
	if limit <= 0 || (s.config.LookupLimit > 0 && limit > s.config.LookupLimit) {
		limit = s.config.LookupLimit
	}
	words := dict.Lookup(req.Prefix, limit)
	if words == nil {
		words = []string{}
	}
	s.send(LookupResponse{ID: req.ID, Words: words, Count: len(words)})
}

func (s *Server) statusResponse(id string) StatusResponse {
	resp := StatusResponse{
		ID:       id,
		Status:   s.dict.Status().String(),
		Progress: s.dict.Progress(),
	}
	dict, err := s.dict.Dictionary()
	switch {
	case err == nil:
		resp.Words = dict.Len()
	case !errors.Is(err, dictionary.ErrNotReady):
		resp.Error = err.Error()
	}
	return resp
}

func eventResponse(ev dictionary.Event) StatusResponse {
	resp := StatusResponse{
		Status:   ev.Status.String(),
		Progress: ev.Percent,
		Words:    ev.Words,
	}
	if ev.Err != nil {
		resp.Error = ev.Err.Error()
	}
	return resp
}

// errorCode maps engine and loader errors onto response codes.
func errorCode(err error) (string, int) {
	var loadErr *dictionary.LoadError
	var tooLong *solver.InputTooLongError
	switch {
	case errors.Is(err, solver.ErrNotReady):
		return "dictionary not ready", 503
	case errors.As(err, &loadErr):
		return "dictionary unavailable: " + loadErr.Error(), 503
	case errors.Is(err, solver.ErrBusy):
		return err.Error(), 409
	case errors.As(err, &tooLong):
		return tooLong.Error(), 400
	case errors.Is(err, context.DeadlineExceeded):
		return "search timed out", 504
	case errors.Is(err, context.Canceled):
		return "search cancelled", 503
	default:
		return "internal server error", 500
	}
}

// send encodes one response and flushes it.
func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
