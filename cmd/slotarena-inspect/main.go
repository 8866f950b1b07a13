// Command slotarena-inspect fetches a debug snapshot from a running
// process that exposes a Container's slotarena.Snapshot over HTTP (by
// default at http://localhost:8080/debug/slotarena/snapshot, see -addr)
// and prints it either as a table or as raw JSON.
//
// Adapted from arena-cache's cmd/arena-cache-inspect, whose main.go
// called a parseFlags/options pair that the source repo never actually
// defined; flags.go here fills that gap with a complete implementation
// sized to slotarena.Snapshot's fields instead of the cache's hit/miss
// counters.
//
// © 2025 slotarena authors. MIT License.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Voskan/slotarena/pkg/slotarena"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fatalf("slotarena-inspect: %v", err)
	}

	if opts.watch == 0 {
		printOnce(opts)
		return
	}

	ticker := time.NewTicker(opts.watch)
	defer ticker.Stop()
	printOnce(opts)
	for range ticker.C {
		printOnce(opts)
	}
}

func printOnce(opts options) {
	snap, raw, err := fetchSnapshot(opts)
	if err != nil {
		fatalf("slotarena-inspect: %v", err)
	}

	switch opts.format {
	case "json":
		fmt.Println(string(raw))
	default:
		printTable(snap)
	}
}

func fetchSnapshot(opts options) (slotarena.Snapshot, []byte, error) {
	client := &http.Client{Timeout: opts.timeout}

	resp, err := client.Get(opts.addr)
	if err != nil {
		return slotarena.Snapshot{}, nil, fmt.Errorf("fetching %s: %w", opts.addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return slotarena.Snapshot{}, nil, fmt.Errorf("%s returned status %s", opts.addr, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return slotarena.Snapshot{}, nil, fmt.Errorf("reading response body: %w", err)
	}

	var snap slotarena.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return slotarena.Snapshot{}, nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, body, nil
}

func printTable(snap slotarena.Snapshot) {
	fmt.Printf("fetched at       %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("len              %d\n", snap.Len)
	fmt.Printf("capacity         %d\n", snap.Capacity)
	fmt.Printf("freelist_runs    %d\n", snap.FreelistRuns)
	fmt.Printf("growths          %d\n", snap.Growths)
	if snap.Capacity > 0 {
		fmt.Printf("load_factor      %.2f%%\n", 100*float64(snap.Len)/float64(snap.Capacity))
	}
}
