package lhe

import (
	"sync/atomic"
	"testing"
)

func TestParallelFor(t *testing.T) {
	n := 1000

	var count int64
	ParallelFor(n, func(i int) {
		atomic.AddInt64(&count, 1)
	})

	if count != int64(n) {
		t.Errorf("ParallelFor processed %d items, want %d", count, n)
	}
}

func TestParallelForSmall(t *testing.T) {
	n := 3
	results := make([]int, n)

	ParallelFor(n, func(i int) {
		results[i] = i * 2
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForWithError(t *testing.T) {
	n := 100

	err := ParallelForWithError(n, func(i int) error {
		return nil
	})
	if err != nil {
		t.Errorf("ParallelForWithError returned error: %v", err)
	}

	expectedErr := ErrCorruptStream
	err = ParallelForWithError(n, func(i int) error {
		if i == 50 {
			return expectedErr
		}
		return nil
	})
	if err != expectedErr {
		t.Errorf("ParallelForWithError returned %v, want %v", err, expectedErr)
	}
}

func TestParallelConfig(t *testing.T) {
	original := GetParallelConfig()
	defer SetParallelConfig(original)

	config := ParallelConfig{
		NumWorkers: 8,
		GrainSize:  16,
	}
	SetParallelConfig(config)

	got := GetParallelConfig()
	if got.NumWorkers != 8 {
		t.Errorf("NumWorkers = %d, want 8", got.NumWorkers)
	}
	if got.GrainSize != 16 {
		t.Errorf("GrainSize = %d, want 16", got.GrainSize)
	}
}

func TestChunks(t *testing.T) {
	tests := []struct {
		n      int
		config ParallelConfig
		want   int // number of chunks, 0 for sequential
	}{
		{3, ParallelConfig{NumWorkers: 4, GrainSize: 1}, 3},
		{3, ParallelConfig{NumWorkers: 1, GrainSize: 1}, 0},
		{1, ParallelConfig{NumWorkers: 4, GrainSize: 1}, 0},
		{100, ParallelConfig{NumWorkers: 4, GrainSize: 1}, 4},
		{100, ParallelConfig{NumWorkers: 4, GrainSize: 60}, 0},
		{100, ParallelConfig{NumWorkers: 8, GrainSize: 25}, 4},
	}
	for _, tt := range tests {
		parts := chunks(tt.n, tt.config)
		if len(parts) != tt.want {
			t.Errorf("chunks(%d, %+v) = %d chunks, want %d", tt.n, tt.config, len(parts), tt.want)
			continue
		}
		covered := 0
		for _, p := range parts {
			covered += p[1] - p[0]
		}
		if tt.want > 0 && covered != tt.n {
			t.Errorf("chunks(%d, %+v) cover %d items", tt.n, tt.config, covered)
		}
	}
}
