// Package scalebench estimates how a measured quantity grows with a scaling
// parameter N and classifies that growth as acceptable or pathological.
//
// # Overview
//
// scalebench answers the question "does this counter blow up when the input
// gets bigger?". Feed it per-key measurements taken at several values of N
// (for example compiler-internal counters collected while compiling
// progressively larger synthesized inputs) and it fits competing growth
// models to each key, picks the better one, and applies a growth-rate
// threshold to decide pass or fail.
//
// # Architecture
//
// Three components, in dependency order:
//
//   - simplex.go  - Nelder–Mead derivative-free minimizer (leaf)
//   - fitter.go   - least-squares model fitting with randomized restarts
//   - classify.go - competitive model selection and pass/fail verdicts
//
// Supporting surfaces:
//
//   - models.go     - the polynomial and exponential curve families
//   - collect.go    - measurement collection over N levels
//   - assertions.go - test helpers for scaling properties
//
// # Quick Start
//
// Collect counters at several scales and classify them:
//
//	measure := func(ctx context.Context, n int) (map[string]float64, error) {
//	    counters, err := compileAtScale(ctx, n)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return counters, nil
//	}
//
//	set, err := scalebench.Collect(ctx, measure, scalebench.DefaultCollectConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c := scalebench.NewClassifier(scalebench.DefaultClassifierConfig(),
//	    rand.New(rand.NewSource(time.Now().UnixNano())), nil)
//
//	report, err := c.ClassifySet(set)
//	if err != nil {
//	    log.Fatal(err) // a key had no reliable growth model
//	}
//
//	for _, v := range report.Verdicts {
//	    fmt.Printf("%s grows like %s (R²=%.3f)\n", v.Key, v.GrowthLabel(), v.RSquared)
//	}
//	if report.Bad {
//	    os.Exit(1)
//	}
//
// # The Models
//
// Two curve families compete for every key:
//
//	polynomial:  y = const + coeff·x^exponent    exponent ∈ [0.25, 3.0]
//	exponential: y = const + coeff·base^x        base ∈ [0, 10]
//
// The polynomial model wins ties and wins whenever its R² is at least the
// exponential R²; the exponential model must fit strictly better to be
// chosen. A key is flagged as bad-scaling when the chosen model's growth
// parameter (exponent or base) meets its threshold, 1.2 by default.
//
// # The Fitter
//
// Fitting minimizes the residual sum of squares with the Nelder–Mead method
// under a strict acceptance gate:
//
//	R² = 1 − SS_residual/SS_total
//
// A restart is accepted only when SS_residual/SS_total is numerically
// negligible, i.e. the model explains the data to within noise. A moderately
// good fit is rejected and retried under a fresh random simplex, up to 100
// times; exhausting the budget yields ErrNoConvergence. The optimizer itself
// is capped at 1024 iterations per run, so termination is always guaranteed.
//
// Heuristic, restart-based optimization makes no global-optimum promise.
// Inject a seeded *rand.Rand when you need reproducible fits.
//
// # Testing
//
// Use assertions to validate scaling properties of your own operations:
//
//	func TestParserScaling(t *testing.T) {
//	    set := collectParserCounters(t)
//	    c := scalebench.NewClassifier(scalebench.DefaultClassifierConfig(),
//	        rand.New(rand.NewSource(1)), nil)
//
//	    scalebench.AssertGoodScaling(t, c, set)
//	}
//
// # Philosophy
//
// Traditional benchmarks answer: "How fast is this?"
// scalebench answers: "What is the growth law?"
//
// A routine that takes 2ms today and grows like 2^n is a far worse liability
// than one that takes 200ms and grows like n^1.1. Classifying the curve, not
// the constant, is what keeps pathological growth out of production.
package scalebench
