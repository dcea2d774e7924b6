/*
Package server implements msgpack IPC for unscramble searches.

Clients write consecutive msgpack maps to stdin and read consecutive msgpack
maps from stdout. Every request carries an id which is echoed back.

# Requests

Search the letters of "q" (the default action):

	{"id": "req_001", "a": "search", "q": "tca"}

The response lists the matches longest first, with the match count, the
number of arrangements tried, whole seconds and microseconds taken:

	{"id": "req_001", "w": ["act", "cat", "at", "a"], "c": 4, "n": 15, "s": 0, "t": 42}

Ask for the dictionary state:

	{"id": "st_001", "a": "status"}
	{"id": "st_001", "status": "loading", "progress": 37}

List dictionary entries by prefix:

	{"id": "lk_001", "a": "lookup", "p": "cat", "l": 10}
	{"id": "lk_001", "w": ["cat", "catalog"], "c": 2}

# Load notifications

While the word list loads, the server pushes a status message with an empty
id for each progress milestone, then one "ready" or "error" message. A search
sent before "ready" is rejected with code 503 and is not queued.

# Errors

	{"id": "req_002", "e": "dictionary not ready", "c": 503}

Codes: 400 bad request or too many letters, 409 another search is running,
503 dictionary not ready or failed or search cancelled, 504 search timed out, 500 otherwise.
*/
package server

const (
	ActionSearch = "search"
	ActionStatus = "status"
	ActionLookup = "lookup"
)

// Request is any client message. Action defaults to search.
type Request struct {
	ID      string `msgpack:"id"`
	Action  string `msgpack:"a,omitempty"`
	Letters string `msgpack:"q,omitempty"`
	Prefix  string `msgpack:"p,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
}

// SearchResponse - ranked search result
type SearchResponse struct {
	ID         string   `msgpack:"id"`
	Words      []string `msgpack:"w"`
	Count      int      `msgpack:"c"`
	Candidates uint64   `msgpack:"n"`
	Seconds    int      `msgpack:"s"`
	TimeTaken  int64    `msgpack:"t"`
}

// StatusResponse - dictionary state, solicited or pushed during load
type StatusResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Progress int    `msgpack:"progress"`
	Words    int    `msgpack:"words,omitempty"`
	Error    string `msgpack:"error,omitempty"`
}

// LookupResponse - dictionary entries for a prefix
type LookupResponse struct {
	ID    string   `msgpack:"id"`
	Words []string `msgpack:"w"`
	Count int      `msgpack:"c"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
