package scalebench

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
)

// ModelKind names the curve family a verdict was fitted with.
type ModelKind string

const (
	ModelPolynomial  ModelKind = "polynomial"
	ModelExponential ModelKind = "exponential"
)

// ClassifierConfig gathers every tunable of the classifier. There are no
// module-level mutable defaults; pass a config explicitly.
type ClassifierConfig struct {
	// PolynomialThreshold flags polynomial verdicts whose exponent meets
	// or exceeds it.
	PolynomialThreshold float64

	// ExponentialThreshold flags exponential verdicts whose base meets or
	// exceeds it.
	ExponentialThreshold float64

	// MinRSquared is the goodness-of-fit floor a family must exceed to be
	// a candidate model for a key.
	MinRSquared float64

	// Fit controls the restart loop and the optimizer underneath it.
	Fit FitConfig
}

// DefaultClassifierConfig returns the conventional thresholds: growth beyond
// n^1.2 or 1.2^n is flagged, and a model needs R² > 0.9 to count.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		PolynomialThreshold:  1.2,
		ExponentialThreshold: 1.2,
		MinRSquared:          0.9,
		Fit:                  DefaultFitConfig(),
	}
}

// Verdict is the classification outcome for one measured key.
type Verdict struct {
	Key      string
	Model    ModelKind
	Growth   float64 // exponent (polynomial) or base (exponential)
	RSquared float64

	// RawValues are the floored values the fit actually ran against.
	RawValues []float64

	// Bad is true when Growth meets the threshold for its model kind.
	Bad bool
}

// GrowthLabel renders the human-readable growth descriptor, "n^1.2" for
// polynomial growth or "2.0^n" for exponential growth.
func (v Verdict) GrowthLabel() string {
	if v.Model == ModelExponential {
		return fmt.Sprintf("%.1f^n", v.Growth)
	}
	return fmt.Sprintf("n^%.1f", v.Growth)
}

// Report is the aggregate classification outcome.
type Report struct {
	// Verdicts is ordered with polynomial models first, then by growth
	// parameter ascending.
	Verdicts []Verdict

	// Bad is true when any key is bad-scaling. Callers typically map it to
	// a nonzero process exit status.
	Bad bool
}

// NoFitError reports a key for which neither model family produced a
// reliable fit. Classification stops at the first such key; the remaining
// keys are not evaluated.
type NoFitError struct {
	Key string
}

func (e *NoFitError) Error() string {
	return fmt.Sprintf("no reliable growth model for %q: neither polynomial nor exponential fit reached the R² floor", e.Key)
}

// Classifier fits competing growth models to per-key measurements and
// applies pass/fail thresholds.
type Classifier struct {
	cfg    ClassifierConfig
	rng    *rand.Rand
	logger *slog.Logger
}

// NewClassifier creates a classifier. The rng seeds every optimizer restart;
// inject a fixed seed for reproducible runs. A nil logger falls back to
// slog.Default().
func NewClassifier(cfg ClassifierConfig, rng *rand.Rand, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{cfg: cfg, rng: rng, logger: logger}
}

// Classify produces one verdict per key in series, where every key's values
// are aligned to the same ns. Keys are processed in sorted order so verdicts
// and failure order are deterministic.
//
// Raw values are floored at 1 before fitting: growth-curve fitting operates
// effectively in log space, and non-positive values are invalid there.
//
// A family whose fit fails with ErrNoConvergence simply offers no candidate.
// A key with no candidate at all aborts classification with a *NoFitError;
// callers must treat that as a failed aggregate verdict.
func (c *Classifier) Classify(ns []int, series map[string][]float64) (*Report, error) {
	keys := make([]string, 0, len(series))
	for key := range series {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	xs := make([]float64, len(ns))
	for i, n := range ns {
		xs[i] = float64(n)
	}

	report := &Report{}
	for _, key := range keys {
		values := series[key]
		if len(values) != len(ns) {
			return nil, fmt.Errorf("%w: key %q has %d values for %d levels",
				ErrBadDataset, key, len(values), len(ns))
		}

		floored := make([]float64, len(values))
		for i, v := range values {
			if v < 1 {
				v = 1
			}
			floored[i] = v
		}

		verdict, err := c.classifyKey(key, xs, floored)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("key classified",
			"key", verdict.Key,
			"model", verdict.Model,
			"growth", verdict.GrowthLabel(),
			"r2", verdict.RSquared,
			"bad", verdict.Bad)

		if verdict.Bad {
			report.Bad = true
		}
		report.Verdicts = append(report.Verdicts, verdict)
	}

	sort.Slice(report.Verdicts, func(i, j int) bool {
		a, b := report.Verdicts[i], report.Verdicts[j]
		if a.Model != b.Model {
			return a.Model == ModelPolynomial
		}
		return a.Growth < b.Growth
	})

	return report, nil
}

// ClassifySet is a convenience over a collected SampleSet.
func (c *Classifier) ClassifySet(set *SampleSet) (*Report, error) {
	return c.Classify(set.Ns, set.Values)
}

// classifyKey runs both model families against one floored series and picks
// the presented model. The polynomial model wins ties and wins whenever its
// R² is greater-or-equal; the exponential model must fit strictly better.
func (c *Classifier) classifyKey(key string, xs, floored []float64) (Verdict, error) {
	poly, perr := FitPolynomial(xs, floored, c.cfg.Fit, c.rng)
	if perr != nil && !errors.Is(perr, ErrNoConvergence) {
		return Verdict{}, fmt.Errorf("polynomial fit for %q: %w", key, perr)
	}
	exp, eerr := FitExponential(xs, floored, c.cfg.Fit, c.rng)
	if eerr != nil && !errors.Is(eerr, ErrNoConvergence) {
		return Verdict{}, fmt.Errorf("exponential fit for %q: %w", key, eerr)
	}

	polyOK := perr == nil && poly.RSquared > c.cfg.MinRSquared
	expOK := eerr == nil && exp.RSquared > c.cfg.MinRSquared

	if !polyOK && !expOK {
		return Verdict{}, &NoFitError{Key: key}
	}

	if polyOK && (!expOK || poly.RSquared >= exp.RSquared) {
		return Verdict{
			Key:       key,
			Model:     ModelPolynomial,
			Growth:    poly.Exponent,
			RSquared:  poly.RSquared,
			RawValues: floored,
			Bad:       poly.Exponent >= c.cfg.PolynomialThreshold,
		}, nil
	}

	return Verdict{
		Key:       key,
		Model:     ModelExponential,
		Growth:    exp.Base,
		RSquared:  exp.RSquared,
		RawValues: floored,
		Bad:       exp.Base >= c.cfg.ExponentialThreshold,
	}, nil
}
