// Command bench measures the cost of the planner's write-everything
// persistence model on each storage adapter.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/planner"
	domain "github.com/aretw0/planner/pkg/planner"
)

func main() {
	count := flag.Int("count", 500, "Number of slots to add")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "planner_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	type result struct {
		adapter string
		add     time.Duration
		reload  time.Duration
	}
	var results []result

	for _, adapter := range []string{"memory", "fs", "sqlite"} {
		dir := fmt.Sprintf("%s/%s", benchDir, adapter)
		svc, err := planner.New(dir, planner.WithAdapter(adapter), planner.WithLogger(logger))
		if err != nil {
			panic(err)
		}

		p := planner.Open(ctx, svc, domain.WithLogger(logger))
		fmt.Printf("Adding %d slots (%s)...\n", *count, adapter)
		start := time.Now()
		for i := 0; i < *count; i++ {
			day := domain.Weekdays[i%len(domain.Weekdays)]
			if _, err := p.AddSlot(ctx, domain.SlotInput{Day: day, StartTime: "09:00", EndTime: "10:00", Topic: fmt.Sprintf("Slot %d", i)}); err != nil {
				panic(err)
			}
		}
		add := time.Since(start)
		if err := p.PersistErr(); err != nil {
			panic(err)
		}

		// A fresh planner simulates a new CLI command run.
		start = time.Now()
		reopened := planner.Open(ctx, svc, domain.WithLogger(logger))
		loaded := len(reopened.Slots(ctx))
		reload := time.Since(start)
		if adapter != "memory" && loaded != *count {
			panic(fmt.Sprintf("%s: reloaded %d slots, want %d", adapter, loaded, *count))
		}

		_ = svc.Close()
		results = append(results, result{adapter: adapter, add: add, reload: reload})
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d slots):\n", *count)
	for _, r := range results {
		fmt.Printf("  %-7s add: %-14v (%v/slot)  reload: %v\n", r.adapter, r.add, r.add/time.Duration(*count), r.reload)
	}
	fmt.Printf("--------------------------------------------------\n")
}
