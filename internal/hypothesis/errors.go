package hypothesis

import "errors"

var (
	// ErrSampleSize is returned when a sample is too small for the test
	ErrSampleSize = errors.New("sample is too small")
	// ErrZeroVariance is returned when a statistic is undefined because a sample is constant
	ErrZeroVariance = errors.New("sample has zero variance")
	// ErrMismatchedSamples is returned when paired samples differ in length
	ErrMismatchedSamples = errors.New("samples have different lengths")
	// ErrConfidence is returned for confidence levels outside (0, 1)
	ErrConfidence = errors.New("confidence level must be in (0, 1)")
)

func checkConfidence(level float64) error {
	if !(level > 0 && level < 1) {
		return ErrConfidence
	}
	return nil
}
