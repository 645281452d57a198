package metric

import (
	"bytes"
	"encoding/json"
)

// Value is a float64 metric that distinguishes "not measured" from zero.
// The zero Value is absent.
type Value struct {
	value   float64
	present bool
}

func Of(v float64) Value {
	return Value{value: v, present: true}
}

func None() Value {
	return Value{}
}

// FromPtr converts a nullable decoded field into a Value.
func FromPtr(p *float64) Value {
	if p == nil {
		return Value{}
	}
	return Of(*p)
}

func (m Value) Present() bool {
	return m.present
}

func (m Value) Get() (float64, bool) {
	return m.value, m.present
}

// Ptr returns a pointer to the value, or nil when absent.
func (m Value) Ptr() *float64 {
	if !m.present {
		return nil
	}
	v := m.value
	return &v
}

func (m Value) MarshalJSON() ([]byte, error) {
	if !m.present {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Value{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Of(v)
	return nil
}

// Average returns the mean of values, absent when the slice is empty.
func Average(values []float64) Value {
	if len(values) == 0 {
		return Value{}
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return Of(sum / float64(len(values)))
}

// Trunc2 truncates toward zero to two decimal places. Truncation, not
// rounding, matches the stored-summary format of upstream consumers.
func Trunc2(v float64) float64 {
	return float64(int64(v*100)) / 100
}
