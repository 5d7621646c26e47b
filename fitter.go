package scalebench

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoConvergence is returned when every restart attempt fails the
// acceptance gate. At the classifier level this means "no candidate from
// this model family", not a fatal error.
var ErrNoConvergence = errors.New("scalebench: fit did not converge")

// ErrBadDataset reports an empty or misaligned dataset. Usage errors are
// rejected before optimization begins, never discovered mid-loop.
var ErrBadDataset = errors.New("scalebench: invalid dataset")

// Model evaluates a parametric curve family with the given parameters at x.
type Model func(params Point, x float64) float64

// FitConfig controls the randomized-restart fitting loop.
type FitConfig struct {
	// MaxAttempts is the restart budget. Each attempt runs the optimizer
	// against a fresh random simplex.
	MaxAttempts int

	// SmallValue is the numerical negligibility floor. It guards the
	// SS_total division, gates fit acceptance, and zeroes out meaningless
	// growth parameters behind near-zero coefficients.
	SmallValue float64

	// Simplex configures the optimizer run underneath every attempt.
	Simplex SimplexConfig
}

// DefaultFitConfig returns the caps and floor used by the classifier.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		MaxAttempts: 100,
		SmallValue:  1e-4,
		Simplex:     DefaultSimplexConfig(),
	}
}

// FitResult holds fitted parameters and their goodness of fit.
// RSquared is 1 for a perfect fit and can in principle be negative for a
// fit worse than the mean, though the acceptance gate never lets such a
// result through.
type FitResult struct {
	Params   Point
	RSquared float64
}

// Fit finds parameters minimizing Σ(y − model(params, x))² over the dataset.
//
// The acceptance gate is strict: an attempt is accepted only when its
// residual sum of squares is negligible relative to the total sum of
// squares, meaning the model explains the data to within noise. This is not
// a best-seen-so-far search; a moderately good fit is discarded and retried
// under a new random simplex. Exhausting the restart budget returns
// ErrNoConvergence.
func Fit(model Model, bounds []Bound, xs, ys []float64, cfg FitConfig, rng *rand.Rand) (FitResult, error) {
	if err := validateDataset(xs, ys); err != nil {
		return FitResult{}, err
	}

	mean := 0.0
	for _, y := range ys {
		mean += y
	}
	mean /= float64(len(ys))

	ssTotal := 0.0
	for _, y := range ys {
		d := y - mean
		ssTotal += d * d
	}
	// Near-constant data would blow up the R² division.
	if ssTotal < cfg.SmallValue {
		ssTotal = cfg.SmallValue
	}

	residuals := func(p Point) float64 {
		sum := 0.0
		for i, x := range xs {
			d := ys[i] - model(p, x)
			sum += d * d
		}
		return sum
	}

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		params, ssResidual, err := Minimize(residuals, bounds, cfg.Simplex, rng)
		if err != nil {
			return FitResult{}, err
		}
		if ssResidual/ssTotal < cfg.SmallValue {
			return FitResult{Params: params, RSquared: 1 - ssResidual/ssTotal}, nil
		}
	}

	return FitResult{}, fmt.Errorf("no acceptable fit after %d restarts: %w", cfg.MaxAttempts, ErrNoConvergence)
}

func validateDataset(xs, ys []float64) error {
	if len(xs) == 0 || len(ys) == 0 {
		return fmt.Errorf("%w: empty dataset", ErrBadDataset)
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d xs vs %d ys", ErrBadDataset, len(xs), len(ys))
	}
	return nil
}
