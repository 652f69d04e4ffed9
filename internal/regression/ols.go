// Package regression fits ordinary least squares models with an intercept.
package regression

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewObservations is returned when n does not exceed the parameter count
	ErrTooFewObservations = errors.New("too few observations for the number of predictors")
	// ErrSingular is returned for rank-deficient designs
	ErrSingular = errors.New("design matrix is singular")
	// ErrConstantResponse is returned when R² is undefined
	ErrConstantResponse = errors.New("response has zero variance")
)

// rankTolerance is the relative singular value below which a design column
// counts as linearly dependent
const rankTolerance = 1e-10

// Model is a fitted OLS model y = b0 + b1·x1 + ... + bp·xp
type Model struct {
	Predictors   []string  `json:"predictors" yaml:"predictors"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"` // Intercept first
	N            int       `json:"n" yaml:"n"`
	P            int       `json:"p" yaml:"p"`
	RSquared     float64   `json:"rSquared" yaml:"rSquared"`
	AdjRSquared  float64   `json:"adjRSquared" yaml:"adjRSquared"`
	Fitted       []float64 `json:"-" yaml:"-"`
	Residuals    []float64 `json:"-" yaml:"-"`
}

// Intercept returns b0
func (m *Model) Intercept() float64 {
	return m.Coefficients[0]
}

// Predict evaluates the model at one observation of the predictors
func (m *Model) Predict(x ...float64) (float64, error) {
	if len(x) != m.P {
		return 0, fmt.Errorf("model takes %d predictors, got %d", m.P, len(x))
	}
	y := m.Coefficients[0]
	for i, v := range x {
		y += m.Coefficients[i+1] * v
	}
	return y, nil
}

// Fit regresses y on the given predictor columns plus an intercept
func Fit(y []float64, predictors [][]float64, names []string) (*Model, error) {
	n, p := len(y), len(predictors)
	if len(names) != p {
		return nil, fmt.Errorf("got %d predictor names for %d predictors", len(names), p)
	}
	if n <= p+1 {
		return nil, fmt.Errorf("%w: n=%d, p=%d", ErrTooFewObservations, n, p)
	}
	for i, col := range predictors {
		if len(col) != n {
			return nil, fmt.Errorf("predictor %q has %d values, response has %d", names[i], len(col), n)
		}
	}

	// Design matrix with a leading column of ones
	design := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		for j, col := range predictors {
			design.Set(i, j+1, col[i])
		}
	}
	response := mat.NewVecDense(n, append([]float64(nil), y...))

	var svd mat.SVD
	if !svd.Factorize(design, mat.SVDThin) {
		return nil, fmt.Errorf("%w: factorization failed", ErrSingular)
	}
	if rank := svd.Rank(rankTolerance); rank < p+1 {
		return nil, fmt.Errorf("%w: rank %d < %d", ErrSingular, rank, p+1)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(design, response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	var fitted mat.VecDense
	fitted.MulVec(design, &beta)

	m := &Model{
		Predictors:   append([]string(nil), names...),
		Coefficients: make([]float64, p+1),
		N:            n,
		P:            p,
		Fitted:       make([]float64, n),
		Residuals:    make([]float64, n),
	}
	for j := range m.Coefficients {
		m.Coefficients[j] = beta.AtVec(j)
	}
	for i := range y {
		m.Fitted[i] = fitted.AtVec(i)
		m.Residuals[i] = y[i] - m.Fitted[i]
	}
	if err := m.score(y); err != nil {
		return nil, err
	}
	return m, nil
}

// FitSimple regresses y on a single predictor x
func FitSimple(x, y []float64, name string) (*Model, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("predictor %q has %d values, response has %d", name, len(x), len(y))
	}
	if len(y) <= 2 {
		return nil, fmt.Errorf("%w: n=%d, p=1", ErrTooFewObservations, len(y))
	}
	if stat.Variance(x, nil) == 0 {
		return nil, ErrSingular
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	m := &Model{
		Predictors:   []string{name},
		Coefficients: []float64{alpha, beta},
		N:            len(y),
		P:            1,
		Fitted:       make([]float64, len(y)),
		Residuals:    make([]float64, len(y)),
	}
	for i := range y {
		m.Fitted[i] = alpha + beta*x[i]
		m.Residuals[i] = y[i] - m.Fitted[i]
	}
	if err := m.score(y); err != nil {
		return nil, err
	}
	return m, nil
}

// score fills R² and adjusted R² = 1 - (1-R²)(n-1)/(n-p-1)
func (m *Model) score(y []float64) error {
	mean := stat.Mean(y, nil)
	var ssTot, ssRes float64
	for i, v := range y {
		ssTot += (v - mean) * (v - mean)
		ssRes += m.Residuals[i] * m.Residuals[i]
	}
	if ssTot == 0 {
		return ErrConstantResponse
	}
	m.RSquared = 1 - ssRes/ssTot
	n, p := float64(m.N), float64(m.P)
	m.AdjRSquared = 1 - (1-m.RSquared)*(n-1)/(n-p-1)
	return nil
}
