package scalebench

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Measurement produces the per-key counter values observed at scale n.
// Implementations typically expand a templated input to size n, invoke an
// external program on it, and harvest its counters. Every invocation must
// report the same key set; a key that appears or disappears between levels
// fails collection.
type Measurement func(ctx context.Context, n int) (map[string]float64, error)

// CollectConfig controls measurement collection.
type CollectConfig struct {
	// Levels are the scaling-parameter values to measure at, in the order
	// they should be run.
	Levels []int

	// Runs is the number of repeated measurements per level, aggregated by
	// mean to smooth out run-to-run noise. Zero means one run.
	Runs int

	// Logger receives per-level progress. Nil falls back to slog.Default().
	Logger *slog.Logger
}

// DefaultCollectConfig returns sensible defaults.
func DefaultCollectConfig() CollectConfig {
	return CollectConfig{
		Levels: []int{1, 2, 4, 8, 16},
		Runs:   1,
	}
}

// SampleSet holds per-key measurement series aligned to the same N levels.
// Every series in Values has exactly len(Ns) entries.
type SampleSet struct {
	Ns     []int
	Values map[string][]float64
}

// Keys returns the measured keys in sorted order.
func (s *SampleSet) Keys() []string {
	keys := make([]string, 0, len(s.Values))
	for key := range s.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Collect runs the measurement at every configured level and assembles the
// aligned per-key series the classifier consumes. With Runs > 1 each level
// is measured repeatedly and the values averaged.
//
// Collection is fail-fast: a measurement error, a canceled context, or a key
// set that changes between levels aborts with an error.
func Collect(ctx context.Context, m Measurement, cfg CollectConfig) (*SampleSet, error) {
	if len(cfg.Levels) == 0 {
		return nil, fmt.Errorf("%w: no scaling levels configured", ErrBadDataset)
	}
	runs := cfg.Runs
	if runs <= 0 {
		runs = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	set := &SampleSet{
		Ns:     append([]int(nil), cfg.Levels...),
		Values: make(map[string][]float64),
	}

	for i, n := range cfg.Levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		totals := make(map[string]float64)
		for r := 0; r < runs; r++ {
			counters, err := m(ctx, n)
			if err != nil {
				return nil, fmt.Errorf("measurement failed at N=%d: %w", n, err)
			}
			for key, v := range counters {
				totals[key] += v
			}
		}

		if len(totals) == 0 {
			return nil, fmt.Errorf("%w: no counters reported at N=%d", ErrBadDataset, n)
		}

		for key, total := range totals {
			series, seen := set.Values[key]
			if !seen && i > 0 {
				return nil, fmt.Errorf("%w: key %q first appeared at N=%d", ErrBadDataset, key, n)
			}
			set.Values[key] = append(series, total/float64(runs))
		}
		for key, series := range set.Values {
			if len(series) != i+1 {
				return nil, fmt.Errorf("%w: key %q missing at N=%d", ErrBadDataset, key, n)
			}
		}

		logger.Info("level measured", "n", n, "runs", runs, "keys", len(set.Values))
	}

	return set, nil
}
