// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordchain command: longest derived anagram chains
from a dictionary file.

A derived anagram of a word is a word holding all of its letters plus exactly
one more, in any order. A chain starts at a given word and keeps stepping to
derived anagrams found in the dictionary. wordchain prints every chain of
maximal length from the start word.

# Usage

One-shot query, printing to stdout:

	wordchain -dict words.txt -word sail

The dictionary and start word may also be given positionally:

	wordchain words.txt sail

Output is the maximal chain length followed by one chain per line:

	Longest chain length: 4
	sail->nails->aliens->salient

Interactive mode keeps the dictionary loaded and reads one start word per line:

	wordchain -dict words.txt -c

Server mode speaks msgpack over stdin/stdout, see package server:

	wordchain -dict words.txt -s -precompute

# Dictionaries

A dictionary is a text file with one word per line, a binary chunk file
(.bin) or a directory of dict_NNNN.bin chunks. Words are printable ASCII
without spaces, at most 255 bytes each.

# Configuration

Defaults live in a TOML file created on first run under
~/.config/wordchain/config.toml:

	[dict]
	max_words = 2000000
	skip_blank_lines = false

	[chain]
	precompute = false
	workers = 0
	max_chains = 0

	[server]
	max_chains = 1000
	cache_size = 256
	suggest_limit = 10

	[cli]
	separator = "->"
	log_level = "warn"

Command line flags override the file.

# Command Line Flags

	-dict string
	    Dictionary file or chunk directory
	-word string
	    Start word
	-config string
	    Path to a config file
	-d  Enable debug logging
	-c  Interactive mode
	-s  msgpack server mode
	-precompute
	    Compute every chain length up front
	-workers int
	    Goroutines used by -precompute (0 for NumCPU)
	-max int
	    Print at most this many chains (0 for all)
	-version
	    Show current version

Any error exits with status 1.
*/
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bastiangx/wordchain/internal/cli"
	"github.com/bastiangx/wordchain/internal/logger"
	"github.com/bastiangx/wordchain/internal/utils"
	"github.com/bastiangx/wordchain/pkg/chain"
	"github.com/bastiangx/wordchain/pkg/config"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/bastiangx/wordchain/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordchain"
	gh      = "https://github.com/bastiangx/wordchain"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary loading and the selected mode together.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Dictionary file or directory of binary chunks")
	startWord := flag.String("word", "", "Start word for the chain")
	configPath := flag.String("config", "", "Path to a TOML config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Interactive mode: read start words from stdin")
	serverMode := flag.Bool("s", false, "Serve msgpack requests over stdin/stdout")
	precompute := flag.Bool("precompute", defaultConfig.Chain.Precompute, "Compute every chain length before answering")
	workers := flag.Int("workers", defaultConfig.Chain.Workers, "Goroutines for -precompute (0 uses all CPUs)")
	maxChains := flag.Int("max", defaultConfig.Chain.MaxChains, "Print at most this many chains (0 for all)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := logger.Setup(defaultConfig.CLI.LogLevel, *debugMode); err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Setup(cfg.CLI.LogLevel, *debugMode); err != nil {
		log.Warnf("Ignoring log level from config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activePath))

	// flags set on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "precompute":
			cfg.Chain.Precompute = *precompute
		case "workers":
			cfg.Chain.Workers = *workers
		case "max":
			cfg.Chain.MaxChains = *maxChains
		}
	})

	if *dictPath == "" {
		*dictPath = flag.Arg(0)
	}
	if *startWord == "" && flag.NArg() > 1 {
		*startWord = flag.Arg(1)
	}
	if *dictPath == "" {
		log.Error("No dictionary given")
		fmt.Fprintf(os.Stderr, "usage: %s [flags] -dict <file> -word <word>\n", AppName)
		flag.PrintDefaults()
		os.Exit(1)
	}
	if !*cliMode && !*serverMode && *startWord == "" {
		log.Fatal("No start word given (use -word, -c or -s)")
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	resolved, err := pathResolver.ResolveDictPath(*dictPath)
	if err != nil {
		log.Fatalf("Failed to resolve dictionary: %v", err)
	}

	start := time.Now()
	idx, err := dictionary.LoadFile(resolved, cfg.DictOptions()...)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	stats := idx.Stats()
	log.Debugf("Loaded %s words (%s keys) from %s in [ %v ]",
		utils.FormatWithCommas(stats.Words), utils.FormatWithCommas(stats.Keys), resolved, time.Since(start))

	solver := chain.NewSolver(idx)
	if cfg.Chain.Precompute {
		if err := solver.Precompute(context.Background(), cfg.Chain.Workers); err != nil {
			log.Fatalf("Precompute failed: %v", err)
		}
	}

	switch {
	case *serverMode:
		log.Debug("spawning IPC")
		srv := server.NewServer(solver, cfg, os.Stdin, os.Stdout)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case *cliMode:
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(solver, os.Stdin, os.Stdout, cfg.Chain.MaxChains, cfg.CLI.Separator)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	default:
		if err := runOnce(solver, *startWord, cfg); err != nil {
			os.Exit(1)
		}
	}
}

// runOnce answers a single query on stdout.
func runOnce(solver *chain.Solver, word string, cfg *config.Config) error {
	res, err := solver.Find(word, cfg.Chain.MaxChains)
	if err != nil {
		log.Error(err)
		if errors.Is(err, dictionary.ErrWordNotFound) {
			if hints := solver.Index().Suggest(word, 5); len(hints) > 0 {
				log.Printf("did you mean: %s", strings.Join(hints, ", "))
			}
		}
		return err
	}
	if res.Truncated {
		log.Warnf("Showing the first %d chains only", len(res.Chains))
	}

	w := bufio.NewWriter(os.Stdout)
	if err := cli.WriteResult(w, res, cfg.CLI.Separator); err != nil {
		log.Error(err)
		return err
	}
	if err := w.Flush(); err != nil {
		log.Error(err)
		return err
	}
	return nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordchain ] Longest derived anagram chains")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
