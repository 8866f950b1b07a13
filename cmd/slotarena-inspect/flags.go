package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

type options struct {
	addr    string
	format  string
	timeout time.Duration
	watch   time.Duration
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("slotarena-inspect", flag.ContinueOnError)
	addr := fs.String("addr", "http://localhost:8080/debug/slotarena/snapshot", "URL of the snapshot endpoint to query")
	format := fs.String("format", "table", "output format: table or json")
	timeout := fs.Duration("timeout", 5*time.Second, "HTTP request timeout")
	watch := fs.Duration("watch", 0, "re-fetch and print the snapshot on this interval instead of exiting after one fetch (0 disables watch mode)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{addr: *addr, format: *format, timeout: *timeout, watch: *watch}
	if opts.format != "table" && opts.format != "json" {
		return options{}, fmt.Errorf("unknown -format %q: want table or json", opts.format)
	}
	if opts.watch < 0 {
		return options{}, fmt.Errorf("-watch must be >= 0, got %s", opts.watch)
	}
	return opts, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
