package stats

// Summary is the scalar roll-up of a completed trend series, shown as the
// headline numbers above a chart.
type Summary struct {
	Average      Metric  `json:"average"`
	Total        float64 `json:"total"`
	NonZeroCount int     `json:"nonZeroCount"`
}

// Summarize reduces a Metric series. The average covers only buckets that
// carry a real value; a window with no data averages to the sentinel, never
// a division by zero.
func Summarize(series []Metric) Summary {
	var out Summary
	valid := 0
	for _, m := range series {
		if !m.Valid {
			continue
		}
		valid++
		out.Total += m.Value
		if m.Value != 0 {
			out.NonZeroCount++
		}
	}
	if valid > 0 {
		out.Average = Value(out.Total / float64(valid))
	}
	return out
}
