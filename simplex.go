package scalebench

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ErrDegenerate reports a parameter space too small for a simplex.
// The Nelder–Mead method needs at least two dimensions; one-parameter
// models are a documented limitation of this engine.
var ErrDegenerate = errors.New("scalebench: simplex needs at least 2 parameters")

// Point is a location in parameter space. The coordinate order is fixed by
// the model family that owns it.
type Point []float64

// Vertex pairs a location with the objective value measured there.
type Vertex struct {
	Location Point
	Value    float64
}

// Objective maps a point in parameter space to a cost. Lower is better.
type Objective func(Point) float64

// Bound is the closed interval [Lo, Hi] for one parameter. Bounds drive the
// randomized placement of the initial simplex only; the search is free to
// leave them afterwards.
type Bound struct {
	Lo, Hi float64
}

// Standard Nelder–Mead coefficients.
const (
	reflectionCoeff  = 1.0
	expansionCoeff   = 2.0
	contractionCoeff = 0.5
	shrinkCoeff      = 0.5
)

// SimplexConfig controls a single optimizer run.
type SimplexConfig struct {
	// MaxIterations is the hard iteration cap. Termination is guaranteed
	// even when the simplex never converges.
	MaxIterations int

	// Tolerance is the convergence radius: the run stops once every vertex
	// lies within this Euclidean distance of the centroid.
	Tolerance float64
}

// DefaultSimplexConfig returns the caps used by the fitter.
func DefaultSimplexConfig() SimplexConfig {
	return SimplexConfig{
		MaxIterations: 1024,
		Tolerance:     1e-4,
	}
}

// Minimize runs the Nelder–Mead method against obj.
//
// The initial simplex has len(bounds)+1 vertices, every coordinate drawn
// uniformly at random from its bound; initialization is the only step that
// consumes entropy from rng. The run ends when all vertices fall within
// cfg.Tolerance of the centroid or when the iteration cap is exhausted,
// whichever comes first. A capped-out result is a best-effort estimate, not
// a certified optimum.
//
// Non-finite objective values are treated as maximally bad costs so that
// extreme parameter guesses are rejected instead of poisoning the simplex.
func Minimize(obj Objective, bounds []Bound, cfg SimplexConfig, rng *rand.Rand) (Point, float64, error) {
	dim := len(bounds)
	if dim < 2 {
		return nil, 0, fmt.Errorf("%w (got %d)", ErrDegenerate, dim)
	}

	eval := func(p Point) float64 {
		v := obj(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.MaxFloat64
		}
		return v
	}

	simplex := make([]Vertex, dim+1)
	for i := range simplex {
		loc := make(Point, dim)
		for j, b := range bounds {
			loc[j] = b.Lo + rng.Float64()*(b.Hi-b.Lo)
		}
		simplex[i] = Vertex{Location: loc, Value: eval(loc)}
	}

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		sort.Slice(simplex, func(a, b int) bool { return simplex[a].Value < simplex[b].Value })

		best := simplex[0]
		secondWorst := simplex[dim-1]
		worst := simplex[dim]

		// Centroid of every vertex except the worst.
		others := make([]Point, dim)
		for i := 0; i < dim; i++ {
			others[i] = simplex[i].Location
		}
		center := centroid(others)

		if converged(simplex, center, cfg.Tolerance) {
			break
		}

		reflected := extrapolate(center, worst.Location, reflectionCoeff)
		rv := eval(reflected)

		switch {
		case best.Value <= rv && rv < secondWorst.Value:
			simplex[dim] = Vertex{Location: reflected, Value: rv}

		case rv < best.Value:
			// Reflection beat everything; try going further.
			expanded := extrapolate(center, reflected, -expansionCoeff)
			if ev := eval(expanded); ev < rv {
				simplex[dim] = Vertex{Location: expanded, Value: ev}
			} else {
				simplex[dim] = Vertex{Location: reflected, Value: rv}
			}

		default:
			contracted := extrapolate(center, worst.Location, -contractionCoeff)
			if cv := eval(contracted); cv < worst.Value {
				simplex[dim] = Vertex{Location: contracted, Value: cv}
			} else {
				// Nothing along the centroid axis helped; shrink every
				// non-best vertex toward the best one.
				for i := 1; i <= dim; i++ {
					loc := simplex[i].Location
					for j := range loc {
						loc[j] = best.Location[j] + shrinkCoeff*(loc[j]-best.Location[j])
					}
					simplex[i].Value = eval(loc)
				}
			}
		}
	}

	sort.Slice(simplex, func(a, b int) bool { return simplex[a].Value < simplex[b].Value })
	return simplex[0].Location, simplex[0].Value, nil
}

// extrapolate returns c + coeff*(c - p): the point reached by moving away
// from p through c. A negative coeff moves from c toward p instead.
func extrapolate(c, p Point, coeff float64) Point {
	out := make(Point, len(c))
	for i := range c {
		out[i] = c[i] + coeff*(c[i]-p[i])
	}
	return out
}

// centroid returns the coordinate-wise mean of the given points.
func centroid(points []Point) Point {
	dim := len(points[0])
	out := make(Point, dim)
	for _, p := range points {
		for i, v := range p {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(points))
	}
	return out
}

// euclidean returns the Euclidean distance between two points of equal
// dimension.
func euclidean(a, b Point) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// converged reports whether every vertex lies within tol of center.
func converged(simplex []Vertex, center Point, tol float64) bool {
	for _, v := range simplex {
		if euclidean(v.Location, center) > tol {
			return false
		}
	}
	return true
}
