package hypothesis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	oneToFive  = []float64{1, 2, 3, 4, 5}
	evensToTen = []float64{2, 4, 6, 8, 10}
)

func TestOneSampleT(t *testing.T) {
	res, err := OneSampleT(oneToFive, 2, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 5, res.N1)
	assert.InDelta(t, 3.0, res.Mean1, 1e-12)
	assert.InDelta(t, math.Sqrt2, res.Statistic, 1e-9)
	assert.InDelta(t, 4.0, res.DF, 1e-12)
	assert.InDelta(t, 0.2302, res.PValue, 1e-4)
	assert.InDelta(t, 2.776445, res.Critical, 1e-5)
	assert.InDelta(t, 1.036757, res.Interval.Lower, 1e-5)
	assert.InDelta(t, 4.963243, res.Interval.Upper, 1e-5)
	assert.InDelta(t, 0.05, res.Alpha, 1e-12)
	assert.Equal(t, FailToReject, res.Decision)
}

func TestOneSampleT_Rejects(t *testing.T) {
	x := []float64{0.995, 0.996, 0.997, 0.9965, 0.9955, 0.9962}
	res, err := OneSampleT(x, 1.0, 0.99)
	require.NoError(t, err)
	assert.Less(t, res.Statistic, 0.0)
	assert.Equal(t, Reject, res.Decision)
	assert.False(t, res.Interval.Contains(1.0))
}

func TestOneSampleT_Errors(t *testing.T) {
	_, err := OneSampleT([]float64{1}, 0, 0.95)
	assert.ErrorIs(t, err, ErrSampleSize)

	_, err = OneSampleT([]float64{1, 1, 1}, 0, 0.95)
	assert.ErrorIs(t, err, ErrZeroVariance)

	_, err = OneSampleT(oneToFive, 0, 1.5)
	assert.ErrorIs(t, err, ErrConfidence)
}

func TestWelchT(t *testing.T) {
	res, err := WelchT(oneToFive, evensToTen, 0.99)
	require.NoError(t, err)

	se := math.Sqrt(2.5/5 + 10.0/5)
	assert.InDelta(t, -3/se, res.Statistic, 1e-9)
	assert.InDelta(t, 6.25/(0.25/4+4.0/4), res.DF, 1e-9)
	assert.InDelta(t, tTwoSided(res.Statistic, res.DF), res.PValue, 1e-6)

	// Interval uses df = min(n1-1, n2-1) = 4
	crit := tCritical(0.99, 4)
	assert.InDelta(t, crit, res.Critical, 1e-12)
	assert.InDelta(t, -3-crit*se, res.Interval.Lower, 1e-9)
	assert.InDelta(t, -3+crit*se, res.Interval.Upper, 1e-9)
	assert.True(t, res.Interval.Contains(0))
	assert.Equal(t, FailToReject, res.Decision)
}

func TestWelchT_Errors(t *testing.T) {
	_, err := WelchT([]float64{1}, oneToFive, 0.99)
	assert.ErrorIs(t, err, ErrSampleSize)

	_, err = WelchT([]float64{2, 2}, []float64{3, 3}, 0.99)
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestVarianceF(t *testing.T) {
	res, err := VarianceF(oneToFive, evensToTen, 0.95)
	require.NoError(t, err)

	assert.True(t, res.Swapped)
	assert.InDelta(t, 4.0, res.Statistic, 1e-12)
	assert.Equal(t, 4.0, res.DF1)
	assert.Equal(t, 4.0, res.DF2)
	assert.InDelta(t, 9.6045, res.CriticalHigh, 1e-3)
	assert.InDelta(t, 1/9.6045, res.CriticalLow, 1e-4)
	// I_0.8(2, 2) = 0.896, so the two-sided p-value is 2·0.104
	assert.InDelta(t, 0.208, res.PValue, 1e-9)
	assert.InDelta(t, 4/res.CriticalHigh, res.Interval.Lower, 1e-12)
	assert.InDelta(t, 4/res.CriticalLow, res.Interval.Upper, 1e-12)
	assert.True(t, res.Interval.Contains(1))
	assert.Equal(t, FailToReject, res.Decision)
}

func TestVarianceF_CriticalValuesInvertCDF(t *testing.T) {
	for _, df := range [][2]float64{{4, 4}, {9, 14}, {97, 99}} {
		for _, p := range []float64{0.005, 0.025, 0.5, 0.975, 0.995} {
			q := fQuantile(p, df[0], df[1])
			assert.InDelta(t, p, fCDF(q, df[0], df[1]), 1e-9, "df=%v p=%v", df, p)
		}
	}
}

func TestVarianceF_Rejects(t *testing.T) {
	narrow := []float64{10, 10.1, 9.9, 10.05, 9.95, 10.02, 9.98, 10.01}
	wide := []float64{1, 20, 5, 15, 8, 12, 3, 18}
	res, err := VarianceF(narrow, wide, 0.99)
	require.NoError(t, err)
	assert.True(t, res.Swapped)
	assert.Equal(t, Reject, res.Decision)
	assert.Less(t, res.PValue, 0.01)
}

func TestVarianceF_Errors(t *testing.T) {
	_, err := VarianceF([]float64{1}, oneToFive, 0.99)
	assert.ErrorIs(t, err, ErrSampleSize)

	_, err = VarianceF([]float64{1, 1}, oneToFive, 0.99)
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestPearson(t *testing.T) {
	y := []float64{2, 4, 5, 4, 5}
	res, err := Pearson(oneToFive, y, 0.95)
	require.NoError(t, err)

	r := 6 / math.Sqrt(60)
	assert.Equal(t, 5, res.N)
	assert.InDelta(t, r, res.R, 1e-12)
	assert.InDelta(t, 3.0, res.DF, 1e-12)
	assert.InDelta(t, r*math.Sqrt(3/(1-r*r)), float64(res.Statistic), 1e-9)
	assert.InDelta(t, 0.12403, res.PValue, 1e-4)

	half := 1.959964 / math.Sqrt(2)
	assert.InDelta(t, math.Tanh(math.Atanh(r)-half), res.Interval.Lower, 1e-5)
	assert.InDelta(t, math.Tanh(math.Atanh(r)+half), res.Interval.Upper, 1e-5)
}

func TestPearson_Perfect(t *testing.T) {
	res, err := Pearson(oneToFive, evensToTen, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.R, 1e-12)
	assert.Equal(t, 0.0, res.PValue)
	assert.True(t, math.IsInf(float64(res.Statistic), 1))

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"statistic":null`)
}

func TestPearson_Errors(t *testing.T) {
	_, err := Pearson(oneToFive, []float64{1, 2}, 0.95)
	assert.ErrorIs(t, err, ErrMismatchedSamples)

	_, err = Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}, 0.95)
	assert.ErrorIs(t, err, ErrSampleSize)

	_, err = Pearson(oneToFive, []float64{1, 1, 1, 1, 1}, 0.95)
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestProportionZ(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	res, err := ProportionZ(x, 4, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 10, res.N)
	assert.Equal(t, 3, res.Below)
	assert.InDelta(t, 0.3, res.Proportion, 1e-12)
	assert.InDelta(t, -0.2/math.Sqrt(0.025), res.Statistic, 1e-12)
	assert.InDelta(t, 0.2059, res.PValue, 1e-4)
}

func TestProportionZ_Errors(t *testing.T) {
	_, err := ProportionZ(nil, 1, 0.5)
	assert.ErrorIs(t, err, ErrSampleSize)

	_, err = ProportionZ(oneToFive, 1, 1)
	assert.Error(t, err)
}
