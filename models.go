package scalebench

import (
	"math"
	"math/rand"
)

// Parameter order for the polynomial family: (const, coeff, exponent).
// The order must match the bounds handed to the optimizer.
const (
	polyConst = iota
	polyCoeff
	polyExponent
)

// Parameter order for the exponential family: (base, coeff, const).
const (
	expBase = iota
	expCoeff
	expConst
)

// PolynomialFit is a fitted y = Const + Coeff·x^Exponent curve.
type PolynomialFit struct {
	Const    float64
	Coeff    float64
	Exponent float64
	RSquared float64
}

// Predict evaluates the fitted curve at x.
func (p PolynomialFit) Predict(x float64) float64 {
	return p.Const + p.Coeff*math.Pow(x, p.Exponent)
}

// ExponentialFit is a fitted y = Const + Coeff·Base^x curve.
type ExponentialFit struct {
	Base     float64
	Coeff    float64
	Const    float64
	RSquared float64
}

// Predict evaluates the fitted curve at x.
func (e ExponentialFit) Predict(x float64) float64 {
	return e.Const + e.Coeff*math.Pow(e.Base, x)
}

// FitPolynomial fits y = const + coeff·x^exponent to the dataset.
//
// An all-identical series is flat by construction, so the optimizer is
// skipped entirely and the fit reports exponent 0 with a perfect R².
func FitPolynomial(xs, ys []float64, cfg FitConfig, rng *rand.Rand) (PolynomialFit, error) {
	if err := validateDataset(xs, ys); err != nil {
		return PolynomialFit{}, err
	}

	constant := true
	for _, y := range ys[1:] {
		if y != ys[0] {
			constant = false
			break
		}
	}
	if constant {
		return PolynomialFit{Const: ys[0], RSquared: 1}, nil
	}

	limit := maxAbs(ys)
	bounds := []Bound{
		polyConst:    {Lo: 0, Hi: limit},
		polyCoeff:    {Lo: 0, Hi: limit},
		polyExponent: {Lo: 0.25, Hi: 3.0},
	}
	model := func(p Point, x float64) float64 {
		return p[polyConst] + p[polyCoeff]*math.Pow(x, p[polyExponent])
	}

	res, err := Fit(model, bounds, xs, ys, cfg, rng)
	if err != nil {
		return PolynomialFit{}, err
	}

	fit := PolynomialFit{
		Const:    res.Params[polyConst],
		Coeff:    res.Params[polyCoeff],
		Exponent: res.Params[polyExponent],
		RSquared: res.RSquared,
	}
	// A near-zero coefficient means the growth term contributes nothing;
	// whatever exponent the optimizer landed on is meaningless.
	if math.Abs(fit.Coeff) < cfg.SmallValue {
		fit.Exponent = 0
	}
	return fit, nil
}

// FitExponential fits y = const + coeff·base^x to the dataset.
func FitExponential(xs, ys []float64, cfg FitConfig, rng *rand.Rand) (ExponentialFit, error) {
	if err := validateDataset(xs, ys); err != nil {
		return ExponentialFit{}, err
	}

	limit := maxAbs(ys)
	bounds := []Bound{
		expBase:  {Lo: 0, Hi: 10},
		expCoeff: {Lo: -limit, Hi: limit},
		expConst: {Lo: -limit, Hi: limit},
	}
	model := func(p Point, x float64) float64 {
		// The search may leave the initialization bounds, but a negative
		// base oscillates in sign and is not a growth curve; make such
		// candidates maximally bad so they can never pass the gate.
		if p[expBase] < 0 {
			return math.Inf(1)
		}
		return p[expConst] + p[expCoeff]*math.Pow(p[expBase], x)
	}

	res, err := Fit(model, bounds, xs, ys, cfg, rng)
	if err != nil {
		return ExponentialFit{}, err
	}

	fit := ExponentialFit{
		Base:     res.Params[expBase],
		Coeff:    res.Params[expCoeff],
		Const:    res.Params[expConst],
		RSquared: res.RSquared,
	}
	if math.Abs(fit.Coeff) < cfg.SmallValue {
		fit.Base = 0
	}
	return fit, nil
}

// maxAbs returns the largest absolute value in ys.
func maxAbs(ys []float64) float64 {
	limit := 0.0
	for _, y := range ys {
		if a := math.Abs(y); a > limit {
			limit = a
		}
	}
	return limit
}
