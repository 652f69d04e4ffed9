// Package hypothesis implements the parametric tests used by the wine studies:
// one-sample and Welch t-tests, the variance-ratio F-test, Pearson correlation
// and a one-sample proportion z-test. Every test reports a two-sided p-value
// and, where the test defines one, a confidence interval.
package hypothesis
