// Package cli handles the one-shot output format and an interactive prompt
// for running many chain queries against one loaded dictionary.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordchain/internal/utils"
	"github.com/bastiangx/wordchain/pkg/chain"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	sepStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// InputHandler reads start words line by line and prints their maximal
// chains. The solver's memo is shared across queries, so repeated lookups
// in the same region of the dictionary get cheaper.
type InputHandler struct {
	solver       *chain.Solver
	in           io.Reader
	out          io.Writer
	maxChains    int
	separator    string
	suggestLimit int
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(solver *chain.Solver, in io.Reader, out io.Writer, maxChains int, separator string) *InputHandler {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &InputHandler{
		solver:       solver,
		in:           in,
		out:          out,
		maxChains:    maxChains,
		separator:    separator,
		suggestLimit: 5,
	}
}

// Start begins the interface loop. It returns nil at end of input.
func (h *InputHandler) Start() error {
	stats := h.solver.Index().Stats()
	log.Printf("wordchain: %s words, %s keys loaded",
		utils.FormatWithCommas(stats.Words), utils.FormatWithCommas(stats.Keys))
	log.Print("type a start word and press Enter (Ctrl+D to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		log.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		h.handleInput(word)
	}
}

// handleInput runs one query and prints the result or a diagnostic.
func (h *InputHandler) handleInput(word string) {
	h.requestCount++
	start := time.Now()

	res, err := h.solver.Find(word, h.maxChains)
	log.Debugf("Took [ %v ] for %q (request %d)", time.Since(start), word, h.requestCount)

	if err != nil {
		h.reportError(word, err)
		return
	}

	fmt.Fprintln(h.out, titleStyle.Render(fmt.Sprintf("Longest chain length: %d", res.MaxLen)))
	sep := sepStyle.Render(h.separator)
	for _, c := range res.Chains {
		styled := make([]string, len(c))
		for i, w := range c {
			styled[i] = wordStyle.Render(w)
		}
		fmt.Fprintln(h.out, strings.Join(styled, sep))
	}
	if res.Truncated {
		log.Warnf("Showing the first %d chains only", len(res.Chains))
	}
}

func (h *InputHandler) reportError(word string, err error) {
	log.Error(err)
	if !errors.Is(err, dictionary.ErrWordNotFound) {
		return
	}
	if hints := h.solver.Index().Suggest(word, h.suggestLimit); len(hints) > 0 {
		log.Info("Did you mean", "words", strings.Join(hints, ", "))
	}
}
