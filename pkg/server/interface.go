/*
Package server implements msgpack IPC for longest chain queries.

The server reads a stream of msgpack encoded requests from its input and
writes one msgpack response per request to its output. Requests are handled
synchronously and every response carries the handling time in microseconds.

# IPC

Each request carries an ID that is echoed back, and an action. A missing
action means a chain query:

	{"id": "req_001", "w": "sail", "l": 16}

The response holds the maximal chain length and every chain up to the limit:

	{"id": "req_001", "start": "sail", "n": 4, "ch": [["sail", "nails", "aliens", "salient"]], "c": 1, "t": 87}

Prefix suggestions over the loaded dictionary:

	{"id": "req_002", "action": "suggest", "w": "sa", "l": 5}

Dictionary info, including the longest chain in the whole dictionary once
the solver has been precomputed:

	{"id": "req_003", "action": "info"}

Failed requests get an ErrorResponse whose code follows HTTP conventions:
400 for a malformed word or request, 404 for a word missing from the
dictionary and 500 for anything else. A 404 also carries suggestions.
*/
package server

const (
	ActionChain   = "chain"
	ActionSuggest = "suggest"
	ActionInfo    = "info"
)

// Request is the single request shape accepted by the server.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Word   string `msgpack:"w,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// ChainResponse answers a chain query.
type ChainResponse struct {
	ID        string     `msgpack:"id"`
	Start     string     `msgpack:"start"`
	Length    int        `msgpack:"n"`
	Chains    [][]string `msgpack:"ch"`
	Count     int        `msgpack:"c"`
	Truncated bool       `msgpack:"tr,omitempty"`
	TimeTaken int64      `msgpack:"t"`
}

// SuggestResponse answers a suggest query.
type SuggestResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"s"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// InfoResponse describes the loaded dictionary.
type InfoResponse struct {
	ID           string   `msgpack:"id"`
	Status       string   `msgpack:"status"`
	Words        int      `msgpack:"words"`
	Keys         int      `msgpack:"keys"`
	Duplicates   int      `msgpack:"duplicates"`
	LongestWord  int      `msgpack:"longest_word"`
	Precomputed  bool     `msgpack:"precomputed"`
	LongestChain int      `msgpack:"longest_chain,omitempty"`
	Starts       []string `msgpack:"starts,omitempty"`
	CachedChains int      `msgpack:"cached"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string   `msgpack:"id"`
	Error string   `msgpack:"e"`
	Code  int      `msgpack:"c"`
	Hints []string `msgpack:"h,omitempty"`
}

// StatusResponse is sent once when the server is ready.
type StatusResponse struct {
	Status string `msgpack:"status"`
}
