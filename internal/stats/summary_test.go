package stats

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	series := []Metric{Value(10), Value(0), NoData, Value(20)}
	got := Summarize(series)

	if got.Total != 30 {
		t.Fatalf("total: got %.2f", got.Total)
	}
	if got.NonZeroCount != 2 {
		t.Fatalf("non-zero count: got %d", got.NonZeroCount)
	}
	// Average covers the three valid buckets, not the sentinel.
	if !got.Average.Valid || math.Abs(got.Average.Value-10) > 1e-9 {
		t.Fatalf("average: got %+v", got.Average)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	for _, series := range [][]Metric{nil, {}, {NoData, NoData}} {
		got := Summarize(series)
		if got.Average.Valid {
			t.Fatalf("empty window must average to the sentinel: %+v", got)
		}
		if got.Total != 0 || got.NonZeroCount != 0 {
			t.Fatalf("empty window totals: %+v", got)
		}
		if math.IsNaN(got.Average.Value) || math.IsNaN(got.Total) {
			t.Fatalf("NaN leaked: %+v", got)
		}
	}
}

func TestMetricRejectsNaN(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if m := Value(v); m.Valid {
			t.Fatalf("non-finite %v must collapse to the sentinel", v)
		}
	}
}

func TestMetricJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Metric{"a": Value(1.5), "b": NoData})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"a":1.5,"b":null}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}

	var round map[string]Metric
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !round["a"].Valid || round["a"].Value != 1.5 || round["b"].Valid {
		t.Fatalf("round trip: %+v", round)
	}
}
