// Command slotfuzz emits a deterministic, seeded sequence of
// insert/remove operations against an imagined container, one per line,
// for feeding into a container_test.go-style replay harness or a
// standalone fuzz driver.
//
// Adapted from arena-cache's tools/dataset_gen, which emits a seeded
// sequence of cache keys under a uniform or Zipf distribution; slotfuzz
// keeps the same flag shape and distribution choices but emits container
// operations instead of bare keys, since there is no dataset to replay
// against, only a sequence of mutations.
//
// © 2025 slotarena authors. MIT License.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

type config struct {
	n       int
	dist    string
	zipfS   float64
	zipfV   float64
	seed    int64
	out     string
	removeP float64
}

func parseConfig() config {
	var c config
	flag.IntVar(&c.n, "n", 10000, "number of operations to emit")
	flag.StringVar(&c.dist, "dist", "uniform", "distribution for choosing which live index to remove: uniform or zipf")
	flag.Float64Var(&c.zipfS, "zipfs", 1.5, "zipf distribution s parameter")
	flag.Float64Var(&c.zipfV, "zipfv", 1.0, "zipf distribution v parameter")
	flag.Int64Var(&c.seed, "seed", 1, "random seed")
	flag.StringVar(&c.out, "out", "", "output file path (default stdout)")
	flag.Float64Var(&c.removeP, "remove-prob", 0.4, "probability of emitting a remove instead of an insert, while any element is live")
	flag.Parse()
	return c
}

func main() {
	c := parseConfig()

	out := os.Stdout
	if c.out != "" {
		f, err := os.Create(c.out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "slotfuzz: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	defer w.Flush()

	rng := rand.New(rand.NewSource(c.seed))
	var zipf *rand.Zipf
	if c.dist == "zipf" {
		zipf = rand.NewZipf(rng, c.zipfS, c.zipfV, uint64(c.n))
	}

	live := make([]int, 0, c.n)
	nextIndex := 0

	for i := 0; i < c.n; i++ {
		if len(live) > 0 && rng.Float64() < c.removeP {
			pos := choosePosition(rng, zipf, len(live))
			idx := live[pos]
			live[pos] = live[len(live)-1]
			live = live[:len(live)-1]
			fmt.Fprintf(w, "remove %d\n", idx)
			continue
		}
		fmt.Fprintf(w, "insert\n")
		live = append(live, nextIndex)
		nextIndex++
	}
}

// choosePosition picks a position within [0, n) of the live slice,
// either uniformly or skewed toward low positions via a Zipf draw
// wrapped into range with a modulo — mirroring dataset_gen's key-selection step, just
// applied to "which live element to remove" instead of "which key to
// request".
func choosePosition(rng *rand.Rand, zipf *rand.Zipf, n int) int {
	if zipf == nil {
		return rng.Intn(n)
	}
	v := int(zipf.Uint64())
	if v >= n {
		v = v % n
	}
	return v
}
