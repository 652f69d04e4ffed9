package report

import (
	"fmt"
	"strings"

	"github.com/peekknuf/wineqa/internal/analysis"
	"github.com/peekknuf/wineqa/internal/hypothesis"
)

func reportText(r *analysis.Report) string {
	var sections []string
	if r.Explore != nil {
		sections = append(sections, exploreText(r.Explore))
	}
	if r.MeanVariance != nil {
		sections = append(sections, meanVarianceText(r.MeanVariance))
	}
	if r.Correlation != nil {
		sections = append(sections, correlationText(r.Correlation))
	}
	if r.SimpleRegression != nil {
		sections = append(sections, simpleRegressionText(r.SimpleRegression))
	}
	if r.MultipleRegression != nil {
		sections = append(sections, multipleRegressionText(r.MultipleRegression))
	}
	return strings.Join(sections, "\n")
}

func writeRemovals(b *strings.Builder, removals []analysis.Removal) {
	for _, rm := range removals {
		fmt.Fprintf(b, "Removed %d from %s.\n", rm.Removed, rm.Label)
	}
	b.WriteString("\n")
}

func percent(level float64) string {
	return fmt.Sprintf("%.4g%%", level*100)
}

func exploreText(res *analysis.ExploreResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== VARIABLE EXPLORATION: %s ===\n", res.Column)
	writeRemovals(&b, res.Removals)

	for _, v := range res.Variants {
		fmt.Fprintf(&b, "%s wine %s %s confidence interval: (%.4f, %.4f)\n",
			v.Variant.Title(), res.Column, percent(v.Mean.Interval.Level), v.Mean.Interval.Lower, v.Mean.Interval.Upper)
	}
	b.WriteString("\n")

	for _, v := range res.Variants {
		fmt.Fprintf(&b, "%s wine test statistic: %v\n", v.Variant.Title(), v.Mean.Statistic)
		verdict := "Fail to reject"
		if v.Mean.Decision == hypothesis.Reject {
			verdict = "Reject"
		}
		fmt.Fprintf(&b, "%s wine %s: %s the null hypothesis (p-value = %.4f).\n",
			v.Variant.Title(), res.Column, verdict, v.Mean.PValue)
	}
	b.WriteString("\n")

	for _, v := range res.Variants {
		p := v.Proportion
		fmt.Fprintf(&b, "%s wine: Proportion below %v = %.4f, z-score = %.4f, p-value = %.4f\n",
			v.Variant.Title(), p.Threshold, p.Proportion, p.Statistic, p.PValue)
	}
	return b.String()
}

func meanVarianceText(res *analysis.MeanVarianceResult) string {
	var b strings.Builder
	b.WriteString("=== MEAN AND VARIANCE COMPARISON ===\n")
	writeRemovals(&b, res.Removals)

	for _, c := range res.Comparisons {
		b.WriteString(c.Label() + "\n")
		fmt.Fprintf(&b, "Test statistic: %v; p-value: %v\n", c.Welch.Statistic, c.Welch.PValue)
		fmt.Fprintf(&b, "Confidence Interval: (%v, %v)\n", c.Welch.Interval.Lower, c.Welch.Interval.Upper)

		f := c.Variance
		fmt.Fprintf(&b, "F-stat: %v; low critical value: %v; high critical value: %v\n",
			f.Statistic, f.CriticalLow, f.CriticalHigh)
		if f.Decision == hypothesis.Reject {
			b.WriteString("Reject the null hypothesis: Variances are significantly different.\n")
		} else {
			b.WriteString("Fail to reject the null hypothesis: No significant difference in variances.\n")
		}
		fmt.Fprintf(&b, "Variance Confidence Interval: (%v, %v)\n", f.Interval.Lower, f.Interval.Upper)

		fmt.Fprintf(&b, "Coefficient of Variation for %s %s: %v\n", c.Variant, c.First, c.CoeffVarFirst)
		fmt.Fprintf(&b, "Coefficient of Variation for %s %s: %v\n\n", c.Variant, c.Second, c.CoeffVarSecond)
	}
	return b.String()
}

func correlationText(res *analysis.CorrelationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== CORRELATION (pairing: %s) ===\n", res.Pairing)
	writeRemovals(&b, res.Removals)

	for _, p := range res.Pairs {
		b.WriteString(p.Label() + "\n")
		fmt.Fprintf(&b, "Statistic: %v; p-value: %v\n", p.Test.R, p.Test.PValue)
		fmt.Fprintf(&b, "%s confidence interval: %s (n = %d)\n\n", percent(p.Test.Interval.Level), p.Test.Interval, p.Test.N)
	}
	return b.String()
}

func simpleRegressionText(res *analysis.SimpleRegressionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== SIMPLE REGRESSION: %s ~ %s ===\n", res.Response, res.Predictor)
	writeRemovals(&b, res.Removals)

	for _, fit := range res.Fits {
		fmt.Fprintf(&b, "%s wine: intercept = %v, slope = %v\n",
			fit.Variant.Title(), fit.Model.Intercept(), fit.Model.Coefficients[1])
		fmt.Fprintf(&b, "Adjusted R^2: %v\n", fit.Model.AdjRSquared)
		if fit.FitPlot != "" {
			fmt.Fprintf(&b, "Plots saved to %s and %s\n", fit.FitPlot, fit.ResidualPlot)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func multipleRegressionText(res *analysis.MultipleRegressionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== MULTIPLE REGRESSION: %s ===\n", res.Response)

	var current string
	for _, rm := range res.Removals {
		if string(rm.Variant) != current {
			current = string(rm.Variant)
			fmt.Fprintf(&b, "%s wine:\n", rm.Variant.Title())
		}
		fmt.Fprintf(&b, "Removed %d outliers from %s.\n", rm.Removed, rm.Column)
	}

	current = ""
	for _, m := range res.Models {
		if string(m.Variant) != current {
			current = string(m.Variant)
			fmt.Fprintf(&b, "\n%s Wine Models:\n", m.Variant.Title())
		}
		fmt.Fprintf(&b, "Adjusted R-squared for %s: %.4f\n", m.Label(), m.Model.AdjRSquared)
	}
	return b.String()
}
