// Package numeric holds the number types result structs use for statistics
// that may be undefined for a given sample.
package numeric

import (
	"bytes"
	"encoding/json"
	"math"
)

// Float is a float64 that encodes NaN and ±Inf as JSON null
type Float float64

// NaN returns an undefined Float
func NaN() Float {
	return Float(math.NaN())
}

// Defined reports whether f is a finite number
func (f Float) Defined() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// UnmarshalJSON reads null back as NaN
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = NaN()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
