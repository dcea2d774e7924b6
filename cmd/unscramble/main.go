// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the unscramble word finder server and CLI.

unscramble loads a word list in the background, then finds every word that
can be spelled from a set of letters, using each letter at most once and any
number of them. Results are ranked longest first, then alphabetically.

The search is exhaustive: every ordered arrangement of every non-empty subset
of the input letters is checked against the dictionary, so the work grows
factorially with the input length. Keep inputs short.

# Usage

Start the msgpack IPC server on stdin/stdout:

	unscramble

Search once and exit:

	unscramble -w tca

	act       cat       at       a
	Found 4 words in 0s

Run the interactive CLI with debug logging and a custom word list:

	unscramble -c -d -dict /usr/share/dict/words -expected 235886

In the CLI, a plain line is searched, "?prefix" lists dictionary words with
that prefix and ":q" exits. Searches typed while the word list is still
loading are rejected with "dictionary not ready".

# Configuration

The config file lives in the user config dir (unscramble/config.toml) and is
created with defaults if missing. Flags override it.

	[dict]
	path = "words.txt"
	expected_words = 172820

	[search]
	lowercase = false
	max_letters = 0
	timeout_ms = 0

	[display]
	words_per_line = 5

	[server]
	max_letters = 10
	timeout_ms = 30000
	lookup_limit = 50

Relative word list paths are tried against the working directory, the
executable's directory and the config dir, in that order.

# Command Line Flags

	-version  Show current version
	-d        Enable debug logging
	-c        Run the interactive CLI
	-w string
	    Search these letters once, print the result and exit
	-dict string
	    Word list, one word per line
	-expected int
	    Expected number of lines, used for load progress
	-config string
	    Path to a config file
	-lower
	    Lowercase input letters before searching
	-max int
	    Maximum number of letters per search (0 for no limit)
	-per-line int
	    Words per output line

Logs always go to stderr; stdout carries only results or msgpack.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/unscramble/internal/cli"
	"github.com/bastiangx/unscramble/internal/logger"
	"github.com/bastiangx/unscramble/internal/utils"
	"github.com/bastiangx/unscramble/pkg/config"
	"github.com/bastiangx/unscramble/pkg/dictionary"
	"github.com/bastiangx/unscramble/pkg/server"
	"github.com/bastiangx/unscramble/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "unscramble"
	gh      = "https://github.com/bastiangx/unscramble"
)

// sigHandler cancels the returned context on SIGINT or SIGTERM. A second
// signal exits immediately, which matters when a long search is running.
func sigHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		<-c
		os.Exit(1)
	}()
	return ctx
}

// main wires the loader, engine and front end together; it holds no logic of
// its own.
func main() {
	ctx := sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI")
	letters := flag.String("w", "", "Search these letters once and exit")
	dictPath := flag.String("dict", "", "Word list, one word per line (default from config)")
	expected := flag.Int("expected", 0, "Expected number of lines for load progress (default from config)")
	configPath := flag.String("config", "", "Path to a config file")
	lowercase := flag.Bool("lower", defaultConfig.Search.Lowercase, "Lowercase input letters before searching")
	maxLetters := flag.Int("max", -1, "Maximum letters per search, 0 for no limit (default from config)")
	perLine := flag.Int("per-line", 0, "Words per output line (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	} else {
		log.Debugf("Config dir: %s", pathResolver.GetConfigDir())
	}

	appConfig, usedConfig, err := config.LoadConfigWithPriority(*configPath, pathResolver)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedConfig))

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			appConfig.Dict.Path = *dictPath
		case "expected":
			appConfig.Dict.ExpectedWords = *expected
		case "lower":
			appConfig.Search.Lowercase = *lowercase
		case "max":
			appConfig.Search.MaxLetters = *maxLetters
			appConfig.Server.MaxLetters = *maxLetters
		case "per-line":
			appConfig.Display.WordsPerLine = *perLine
		}
	})

	wordList := appConfig.Dict.Path
	if pathResolver != nil {
		wordList, err = pathResolver.ResolveWordList(appConfig.Dict.Path)
		if err != nil {
			log.Fatalf("Failed to resolve word list: %v", err)
		}
	}
	log.Debugf("Using word list at: %s", wordList)

	loader := dictionary.NewLoader(dictionary.FileSource(wordList), appConfig.Dict.ExpectedWords)
	events := loader.Start(ctx)

	if *letters != "" || *cliMode {
		engine := solver.NewEngine(loader, solver.Options{
			Lowercase:  appConfig.Search.Lowercase,
			MaxLetters: appConfig.Search.MaxLetters,
			Timeout:    appConfig.Search.Timeout(),
		})
		inputHandler := cli.NewInputHandler(engine, loader, appConfig.Display.WordsPerLine, appConfig.Server.LookupLimit)

		if *letters != "" {
			if err := inputHandler.RunOnce(ctx, *letters, events); err != nil {
				log.Fatalf("Search failed: %v", err)
			}
			return
		}

		log.Debug("CLI options",
			"lowercase", appConfig.Search.Lowercase,
			"maxLetters", appConfig.Search.MaxLetters,
			"perLine", appConfig.Display.WordsPerLine)
		if err := inputHandler.Start(ctx, events); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	engine := solver.NewEngine(loader, solver.Options{
		Lowercase:  appConfig.Search.Lowercase,
		MaxLetters: appConfig.Server.MaxLetters,
		Timeout:    appConfig.Server.Timeout(),
	})
	srv := server.NewServer(engine, loader, events, appConfig.Server)

	showStartupInfo(wordList)

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	l := logger.NewWithConfig(os.Stderr, "", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ unscramble ] Finds every word hiding in your letters")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo writes basic process info to stderr in debug mode.
func showStartupInfo(wordList string) {
	log.Debug("===========")
	log.Debugf(" %s %s", AppName, Version)
	log.Debug("===========")
	log.Debugf("Process ID: [ %d ]", os.Getpid())
	log.Debugf("word list: ( %s )", wordList)
	log.Debug("status: loading")
}
