package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/wordchain/internal/logger"
	"github.com/bastiangx/wordchain/pkg/anagram"
	"github.com/bastiangx/wordchain/pkg/chain"
	"github.com/bastiangx/wordchain/pkg/config"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for chain queries.
type Server struct {
	solver       *chain.Solver
	config       *config.Config
	cache        *resultCache
	dec          *msgpack.Decoder
	enc          *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w.
// The solver must have been precomputed or the server must be its only user.
func NewServer(solver *chain.Solver, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		solver: solver,
		config: cfg,
		cache:  newResultCache(cfg.Server.CacheSize),
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
		logger: logger.Default("ipc"),
	}
}

// Start sends a ready status and serves requests until the input ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting Server.")

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		s.requestCount++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400, nil)
			continue
		}
		s.handleRequest(req)
	}
}

// RequestCount returns the number of requests read so far.
func (s *Server) RequestCount() int {
	return s.requestCount
}

func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case "", ActionChain:
		s.handleChain(req)
	case ActionSuggest:
		s.handleSuggest(req)
	case ActionInfo:
		s.handleInfo(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400, nil)
	}
}

func (s *Server) handleChain(req Request) {
	if req.Word == "" {
		s.sendError(req.ID, "missing 'w' parameter", 400, nil)
		s.logger.Debug("Word is empty in request")
		return
	}

	limit := req.Limit
	if maxChains := s.config.Server.MaxChains; maxChains > 0 && (limit <= 0 || limit > maxChains) {
		limit = maxChains
	}

	start := time.Now()
	res, ok := s.cache.get(req.Word, limit)
	if !ok {
		var err error
		res, err = s.solver.Find(req.Word, limit)
		if err != nil {
			s.sendFindError(req, err)
			return
		}
		s.cache.put(req.Word, limit, res)
	}
	elapsed := time.Since(start)

	s.send(ChainResponse{
		ID:        req.ID,
		Start:     res.Start,
		Length:    res.MaxLen,
		Chains:    res.Chains,
		Count:     len(res.Chains),
		Truncated: res.Truncated,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleSuggest(req Request) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.config.Server.SuggestLimit
	}

	start := time.Now()
	words := s.solver.Index().Complete(req.Word, limit)
	elapsed := time.Since(start)

	if words == nil {
		words = []string{}
	}
	s.send(SuggestResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleInfo(req Request) {
	stats := s.solver.Index().Stats()
	resp := InfoResponse{
		ID:           req.ID,
		Status:       "ok",
		Words:        stats.Words,
		Keys:         stats.Keys,
		Duplicates:   stats.Duplicates,
		LongestWord:  stats.LongestWord,
		Precomputed:  s.solver.Precomputed(),
		CachedChains: s.cache.len(),
	}
	// without a precomputed memo this would walk the whole dictionary
	if resp.Precomputed {
		n, starts := s.solver.Longest()
		resp.LongestChain = n
		for _, e := range starts {
			resp.Starts = append(resp.Starts, e.Original)
		}
	}
	s.send(resp)
}

func (s *Server) sendFindError(req Request, err error) {
	switch {
	case errors.Is(err, anagram.ErrMalformedWord):
		s.sendError(req.ID, err.Error(), 400, nil)
	case errors.Is(err, dictionary.ErrWordNotFound):
		hints := s.solver.Index().Suggest(req.Word, s.config.Server.SuggestLimit)
		s.sendError(req.ID, err.Error(), 404, hints)
	case errors.Is(err, dictionary.ErrResourceExhausted):
		s.sendError(req.ID, err.Error(), 413, nil)
	default:
		s.logger.Errorf("Chain query for %q failed: %v", req.Word, err)
		s.sendError(req.ID, err.Error(), 500, nil)
	}
}

// send encodes one response onto the output.
func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, message string, code int, hints []string) {
	s.send(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
		Hints: hints,
	})
}
