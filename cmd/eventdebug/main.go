// Package main is a debugging tool that replays a JSON Lines event
// log through the editing engine and reports what it produced.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/inkstone-edit/inkstone/internal/config"
	"github.com/inkstone-edit/inkstone/internal/engine"
	"github.com/inkstone-edit/inkstone/internal/engine/event"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, err := event.LoadFile(opts.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	printStats(log)

	ed, err := engine.ReplayLog(opts.logPath, engine.WithConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: replay failed: %v\n", err)
		return 1
	}

	fmt.Printf("\nbuffer after replay (%d bytes, %d cursors):\n", ed.Buffer().Len(), ed.CursorCount())
	if opts.printContent {
		fmt.Println(ed.Content())
	}
	if snap, ok := ed.Log().NearestSnapshot(ed.Log().Len()); ok {
		fmt.Printf("latest snapshot at log index %d (%d bytes)\n", snap.LogIndex, len(snap.Content))
	}
	return 0
}

func printStats(log *event.Log) {
	counts := make(map[event.Kind]int)
	var first, last int64
	for i, entry := range log.Entries() {
		counts[entry.Event.Kind()]++
		if i == 0 {
			first = entry.Timestamp
		}
		last = entry.Timestamp
	}

	fmt.Printf("%d events", log.Len())
	if log.Len() > 1 && last > first {
		fmt.Printf(" spanning %.1fs", float64(last-first)/1000)
	}
	fmt.Println()
	for _, kind := range []event.Kind{
		event.KindInsert, event.KindDelete, event.KindMoveCursor,
		event.KindAddCursor, event.KindRemoveCursor, event.KindScroll,
		event.KindSetViewport, event.KindChangeMode,
	} {
		if n := counts[kind]; n > 0 {
			fmt.Printf("  %-14s %d\n", kind, n)
		}
	}
}

type options struct {
	logPath      string
	configPath   string
	printContent bool
	verbose      bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.printContent, "print", false, "Print the replayed buffer content")
	flag.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "eventdebug - replay an editor event log\n\n")
		fmt.Fprintf(os.Stderr, "Usage: eventdebug [options] <events.jsonl>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.logPath = flag.Arg(0)
	return opts
}
