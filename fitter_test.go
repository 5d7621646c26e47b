package scalebench

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFit_InvalidDataset verifies usage errors are rejected before any
// optimization starts.
func TestFit_InvalidDataset(t *testing.T) {
	model := func(p Point, x float64) float64 { return p[0] + p[1]*x }
	bounds := []Bound{{Lo: 0, Hi: 1}, {Lo: 0, Hi: 1}}
	rng := rand.New(rand.NewSource(1))

	_, err := Fit(model, bounds, nil, nil, DefaultFitConfig(), rng)
	assert.ErrorIs(t, err, ErrBadDataset, "empty dataset must be rejected")

	_, err = Fit(model, bounds, []float64{1, 2, 3}, []float64{1, 2}, DefaultFitConfig(), rng)
	assert.ErrorIs(t, err, ErrBadDataset, "mismatched lengths must be rejected")
}

// TestFitPolynomial_ConstantSeries verifies the short-circuit: identical
// values skip the optimizer and report a flat perfect fit.
func TestFitPolynomial_ConstantSeries(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6}
	ys := []float64{7, 7, 7, 7, 7, 7}

	fit, err := FitPolynomial(xs, ys, DefaultFitConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, 0.0, fit.Exponent, "constant data has no growth")
	assert.Equal(t, 0.0, fit.Coeff)
	assert.Equal(t, 7.0, fit.Const)
	assert.Equal(t, 1.0, fit.RSquared)
}

// TestFitPolynomial_Linear verifies y=x recovers exponent 1.
func TestFitPolynomial_Linear(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6}
	ys := []float64{1, 2, 3, 4, 5, 6}

	fit, err := FitPolynomial(xs, ys, DefaultFitConfig(), rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, fit.Exponent, 0.1, "linear data should fit exponent ≈ 1")
	assert.Greater(t, fit.RSquared, 0.999)

	t.Logf("fit: %.3f + %.3f·x^%.3f, R²=%.6f", fit.Const, fit.Coeff, fit.Exponent, fit.RSquared)
}

// TestFitPolynomial_LinearScaled verifies the exponent is invariant under
// scaling of the dependent values.
func TestFitPolynomial_LinearScaled(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 100 * x
	}

	fit, err := FitPolynomial(xs, ys, DefaultFitConfig(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, fit.Exponent, 0.1, "scaling ys must not change the exponent")
	assert.Greater(t, fit.RSquared, 0.999)
}

// TestFitPolynomial_Quadratic verifies y=x² recovers exponent 2.
func TestFitPolynomial_Quadratic(t *testing.T) {
	xs := []float64{10, 20, 30, 40, 50, 60}
	ys := []float64{100, 400, 900, 1600, 2500, 3600}

	fit, err := FitPolynomial(xs, ys, DefaultFitConfig(), rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fit.Exponent, 0.1, "quadratic data should fit exponent ≈ 2")
	assert.Greater(t, fit.RSquared, 0.999)

	for i, x := range xs {
		t.Logf("x=%.0f: measured=%.0f predicted=%.1f", x, ys[i], fit.Predict(x))
	}
}

// TestFitExponential_PowersOfTwo verifies 2^x recovers base 2.
func TestFitExponential_PowersOfTwo(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 8, 16, 32}

	fit, err := FitExponential(xs, ys, DefaultFitConfig(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fit.Base, 0.1, "doubling data should fit base ≈ 2")
	assert.Greater(t, fit.RSquared, 0.999)

	t.Logf("fit: %.3f + %.3f·%.3f^x, R²=%.6f", fit.Const, fit.Coeff, fit.Base, fit.RSquared)
}

// TestFitExponential_QuadraticData verifies the strict acceptance gate: an
// exponential model can never explain quadratic data to within noise, so
// every restart is rejected.
func TestFitExponential_QuadraticData(t *testing.T) {
	xs := []float64{10, 20, 30, 40, 50, 60}
	ys := []float64{100, 400, 900, 1600, 2500, 3600}

	cfg := DefaultFitConfig()
	cfg.MaxAttempts = 20 // keep the exhaustion test quick

	_, err := FitExponential(xs, ys, cfg, rand.New(rand.NewSource(6)))
	assert.ErrorIs(t, err, ErrNoConvergence, "cross-family fit must exhaust retries")
}

// TestFitPolynomial_ExponentialData is the mirror case: polynomial growth
// cannot track exponential-shaped data.
func TestFitPolynomial_ExponentialData(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{1002, 1004, 1008, 1016, 1032}

	cfg := DefaultFitConfig()
	cfg.MaxAttempts = 20

	_, err := FitPolynomial(xs, ys, cfg, rand.New(rand.NewSource(7)))
	assert.ErrorIs(t, err, ErrNoConvergence, "cross-family fit must exhaust retries")
}

// TestFitExponential_OscillatingData verifies sign-alternating data cannot
// be accepted: y = const + coeff·(−1)^x would thread oscillating values
// exactly, but a negative base is not a growth curve and must be rejected
// even though the search is free to leave the initialization bounds.
func TestFitExponential_OscillatingData(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{1, 100, 1, 100, 1}

	cfg := DefaultFitConfig()
	cfg.MaxAttempts = 20

	_, err := FitExponential(xs, ys, cfg, rand.New(rand.NewSource(9)))
	assert.ErrorIs(t, err, ErrNoConvergence, "a negative-base fit must never be accepted")
}

// TestFitPolynomial_NearZeroCoeff verifies the post-processing rule: a
// negligible coefficient zeroes the reported exponent, because whatever the
// optimizer landed on for a dead growth term is meaningless.
func TestFitPolynomial_NearZeroCoeff(t *testing.T) {
	// Values differ (so the constant short-circuit does not trigger) but
	// only by an amount far below the smallness floor relative to the
	// clamped SS_total, so coeff ≈ 0 fits are accepted.
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{5, 5, 5, 5, 5 + 1e-7}

	fit, err := FitPolynomial(xs, ys, DefaultFitConfig(), rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	if math.Abs(fit.Coeff) < DefaultFitConfig().SmallValue {
		assert.Equal(t, 0.0, fit.Exponent, "near-zero coeff must zero the exponent")
	}
	t.Logf("fit: %.6f + %.2g·x^%.3f", fit.Const, fit.Coeff, fit.Exponent)
}
