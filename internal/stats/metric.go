// Package stats turns collections of dated records into the aggregates the
// dashboards consume: daily totals, category breakdowns, trend windows,
// compliance rates, and headline summaries. Every function is pure: inputs
// are never mutated and each call builds a fresh result.
package stats

import (
	"encoding/json"
	"math"
)

// Metric is an optional numeric value. The zero value is the "no data"
// sentinel; it is the single representation for empty averages and missing
// trend days, so NaN never reaches a consumer.
type Metric struct {
	Value float64
	Valid bool
}

// NoData is the sentinel for buckets and averages without input.
var NoData = Metric{}

// Value wraps a number as a present Metric. Non-finite input collapses to
// the sentinel rather than leaking NaN downstream.
func Value(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NoData
	}
	return Metric{Value: v, Valid: true}
}

// MarshalJSON encodes a missing metric as null, never NaN.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = NoData
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Value(v)
	return nil
}
