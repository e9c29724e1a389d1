package lhe

import (
	"runtime"
	"sync"
)

// ParallelConfig configures how planes and rows are spread over goroutines.
type ParallelConfig struct {
	// NumWorkers is the number of worker goroutines. 0 means runtime.GOMAXPROCS(0).
	NumWorkers int

	// GrainSize is the minimum work items per worker before parallelization.
	// If total work items < GrainSize * NumWorkers, runs sequentially.
	GrainSize int
}

// DefaultParallelConfig returns the default parallel configuration.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		NumWorkers: 0,
		GrainSize:  1,
	}
}

var (
	parallelConfig   = DefaultParallelConfig()
	parallelConfigMu sync.RWMutex
)

// SetParallelConfig sets the global parallel configuration.
func SetParallelConfig(config ParallelConfig) {
	parallelConfigMu.Lock()
	defer parallelConfigMu.Unlock()
	parallelConfig = config
}

// GetParallelConfig returns the current parallel configuration.
func GetParallelConfig() ParallelConfig {
	parallelConfigMu.RLock()
	defer parallelConfigMu.RUnlock()
	return parallelConfig
}

func effectiveWorkers(config ParallelConfig) int {
	if config.NumWorkers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return config.NumWorkers
}

// chunks splits [0, n) into at most numWorkers contiguous ranges, or
// returns nil when the work should run on the calling goroutine.
func chunks(n int, config ParallelConfig) [][2]int {
	numWorkers := effectiveWorkers(config)
	grain := max(config.GrainSize, 1)
	if numWorkers == 1 || n < 2 || n < grain*2 {
		return nil
	}
	numWorkers = min(numWorkers, (n+grain-1)/grain)
	chunkSize := (n + numWorkers - 1) / numWorkers

	var out [][2]int
	for start := 0; start < n; start += chunkSize {
		out = append(out, [2]int{start, min(start+chunkSize, n)})
	}
	return out
}

// ParallelFor runs fn(i) for i in [0, n) in parallel.
// Small n or a single worker runs sequentially.
func ParallelFor(n int, fn func(i int)) {
	parts := chunks(n, GetParallelConfig())
	if parts == nil {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	for _, p := range parts {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				fn(i)
			}
		}(p[0], p[1])
	}
	wg.Wait()
}

// ParallelForWithError runs fn(i) for i in [0, n) in parallel with error handling.
// Returns the first error encountered (order not guaranteed).
func ParallelForWithError(n int, fn func(i int) error) error {
	parts := chunks(n, GetParallelConfig())
	if parts == nil {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error
	for _, p := range parts {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				if err := fn(i); err != nil {
					errOnce.Do(func() {
						firstErr = err
					})
					return
				}
			}
		}(p[0], p[1])
	}
	wg.Wait()
	return firstErr
}
