package scalebench

import (
	"errors"
	"testing"
)

// AssertGoodScaling classifies the sample set and fails the test when any
// key is bad-scaling or has no reliable growth model. Returns the report for
// further inspection; nil when classification itself failed.
func AssertGoodScaling(t *testing.T, c *Classifier, set *SampleSet) *Report {
	t.Helper()

	report, err := c.ClassifySet(set)
	if err != nil {
		var nf *NoFitError
		if errors.As(err, &nf) {
			t.Errorf("Key %q has no reliable growth model.\n"+
				"Neither polynomial nor exponential fit reached R² > %.2f.\n"+
				"Check for noisy or non-monotone measurements.",
				nf.Key, c.cfg.MinRSquared)
			return nil
		}
		t.Fatalf("Classification failed: %v", err)
	}

	for _, v := range report.Verdicts {
		if v.Bad {
			t.Errorf("Key %q scales like %s (R²=%.4f) - exceeds threshold",
				v.Key, v.GrowthLabel(), v.RSquared)
		}
	}
	if !report.Bad {
		t.Logf("✓ All %d keys within growth thresholds", len(report.Verdicts))
	}
	return report
}

// AssertPolynomialGrowth verifies every key is best modeled polynomially
// with an exponent below maxExponent. Use it to pin an operation to, say,
// sub-quadratic behavior regardless of the classifier thresholds.
func AssertPolynomialGrowth(t *testing.T, c *Classifier, set *SampleSet, maxExponent float64) {
	t.Helper()

	report, err := c.ClassifySet(set)
	if err != nil {
		t.Fatalf("Classification failed: %v", err)
	}

	for _, v := range report.Verdicts {
		if v.Model != ModelPolynomial {
			t.Errorf("Key %q grows like %s - expected polynomial growth", v.Key, v.GrowthLabel())
			continue
		}
		if v.Growth >= maxExponent {
			t.Errorf("Key %q grows like %s (max allowed: n^%.1f)", v.Key, v.GrowthLabel(), maxExponent)
		}
	}
	t.Logf("✓ Polynomial growth below n^%.1f for %d keys", maxExponent, len(report.Verdicts))
}

// PrintReport outputs a per-key growth table to the test log.
func PrintReport(t *testing.T, report *Report) {
	t.Helper()

	t.Logf("\n=== Growth Analysis ===")
	t.Logf("  %-20s %-12s %-10s %-8s %s", "key", "model", "growth", "R²", "verdict")
	for _, v := range report.Verdicts {
		verdict := "ok"
		if v.Bad {
			verdict = "BAD"
		}
		t.Logf("  %-20s %-12s %-10s %-8.4f %s",
			v.Key, v.Model, v.GrowthLabel(), v.RSquared, verdict)
	}
	if report.Bad {
		t.Logf("Aggregate: BAD (at least one key exceeds its growth threshold)")
	} else {
		t.Logf("Aggregate: ok")
	}
}
