package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForCoversAllIndices(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinTasks: 1}

	var sum int64
	For(100, func(i int) {
		atomic.AddInt64(&sum, int64(i))
	}, cfg)

	if sum != 4950 {
		t.Errorf("For sum = %d, want 4950", sum)
	}
}

func TestForSequentialFallback(t *testing.T) {
	cfg := Config{Enabled: false}

	order := make([]int, 0, 5)
	For(5, func(i int) {
		order = append(order, i)
	}, cfg)

	for i, v := range order {
		if v != i {
			t.Errorf("sequential fallback out of order: %v", order)
			break
		}
	}
}

func TestForBatchGrid(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 2, MinTasks: 1}

	seen := make([]int64, 3*4)
	ForBatch(3, 4, func(b, c int) {
		atomic.AddInt64(&seen[b*4+c], 1)
	}, cfg)

	for k, n := range seen {
		if n != 1 {
			t.Errorf("cell %d visited %d times, want exactly once", k, n)
		}
	}
}

func TestForZeroTasks(t *testing.T) {
	For(0, func(int) { t.Error("f must not be called for n=0") }, DefaultConfig())
}
