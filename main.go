package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"golang.org/x/term"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rvasm: ")
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := loadConfig(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Print(err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := &translator{
		log: log.New(os.Stderr, log.Prefix(), log.Flags()),
	}
	if cfg.Quiet {
		t.log.SetOutput(io.Discard)
	}
	if cfg.Dump {
		t.dump = &lockedWriter{w: os.Stderr}
	}

	var stats fileStats
	if cfg.streaming() {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			t.log.Print("reading instructions from the terminal; end input with Ctrl-D")
			t.flushLines = true
		}
		stats, err = t.translate(os.Stdin, os.Stdout)
		if err != nil {
			log.Printf("failed to translate standard input: %s", err)
			return 1
		}
	} else {
		if info, err := os.Stat(cfg.InputDir); err != nil || !info.IsDir() {
			log.Printf("input directory %q was not found", cfg.InputDir)
			return 1
		}
		stats, err = t.translateDir(ctx, cfg.InputDir, cfg.OutputDir, cfg.InputExt, cfg.Jobs)
		if err != nil {
			log.Print(err)
			return 1
		}
		t.log.Printf("done: %d files, %d lines, %d instructions, %d errors", stats.Files, stats.Lines, stats.Encoded, stats.Failed)
	}

	if stats.Failed > 0 {
		return 1
	}
	return 0
}
