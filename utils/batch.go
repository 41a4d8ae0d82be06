package utils

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/vox"
)

// BatchResult is the outcome of converting one input.
type BatchResult struct {
	Input  string
	Output string
	Err    error
}

// RunBatch converts every input to <outDir>/<name>.glb using a bounded pool
// of workers (NumCPU when workers <= 0). Identical inputs are decoded once.
// Results keep the order of inputs; the returned error joins all failures.
func RunBatch(inputs []string, outDir string, workers int, opts vox.Options, logger *slog.Logger) ([]BatchResult, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no .vox files provided")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	dec := api.NewDecoder(opts, len(inputs))
	results := make([]BatchResult, len(inputs))
	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	start := time.Now()
	var wg sync.WaitGroup
	used := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		base := modelName(in)
		name := base
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = true
		out := filepath.Join(outDir, name+".glb")
		results[i] = BatchResult{Input: in, Output: out}
		wg.Add(1)
		i, in := i, in
		pool.Submit(func() {
			defer wg.Done()
			if err := convertGLB(dec, in, out); err != nil {
				results[i].Err = err
				logger.Warn("conversion failed", "input", in, "err", err)
				return
			}
			logger.Debug("converted", "input", in, "output", out)
		})
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	logger.Info("batch finished", "files", len(inputs), "failed", len(errs),
		"cache_hits", dec.Hits(), "ms", time.Since(start).Milliseconds())
	return results, errors.Join(errs...)
}
