// Package parallel provides batch fan-out utilities for the Forge ML framework.
//
// Batch rows are independent in every layer, so cross-row work may run on
// multiple goroutines without changing observable results. Layer order and
// recurrent time steps stay strictly sequential; only the per-row (or
// per-row-per-channel) inner work goes through this package.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls fan-out behavior.
type Config struct {
	Enabled    bool // Whether fan-out is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinTasks   int  // Minimum task count before goroutines are worth spawning.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinTasks:   4,
	}
}

// For executes f(i) for i in [0, n), fanning out across workers when worth it.
// Falls back to a plain loop if fan-out is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinTasks {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch runs f(b, c) over a batch x channels grid.
// This is the convolution fan-out pattern: one task per sample per
// output channel, each task writing a disjoint feature map.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	For(batch*channels, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}
