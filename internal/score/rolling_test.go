package score

import (
	"testing"

	"github.com/meltforce/liftscore/internal/models"
)

func d(s string) models.Date {
	date, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}

// TestRollingMax_SingleObservation verifies the plateau property: one
// observation holds its value for the full window length and the series stops
// after that, with no trailing zeros.
func TestRollingMax_SingleObservation(t *testing.T) {
	obs := []DatedScore{{Date: d("2025-01-01"), Score: 250}}
	got := Materialize(RollingMax(obs, 7))
	if len(got) != 7 {
		t.Fatalf("expected 7 points, got %d: %v", len(got), got)
	}
	for i, pt := range got {
		want := d("2025-01-01").AddDays(i)
		if pt.Date != want || pt.Score != 250 {
			t.Errorf("point %d = %+v, want {%s 250}", i, pt, want)
		}
	}
}

// TestRollingMax_WindowMax verifies that a date's value is the maximum over
// the trailing window, dropping back once the peak slides out.
func TestRollingMax_WindowMax(t *testing.T) {
	obs := []DatedScore{
		{Date: d("2025-01-01"), Score: 300},
		{Date: d("2025-01-05"), Score: 200},
	}
	series := Materialize(RollingMax(obs, 7))

	byDate := make(map[models.Date]float64)
	for _, pt := range series {
		byDate[pt.Date] = pt.Score
	}
	cases := []struct {
		date string
		want float64
	}{
		{"2025-01-01", 300},
		{"2025-01-05", 300}, // peak still inside the window
		{"2025-01-07", 300}, // last day the peak counts
		{"2025-01-08", 200}, // peak expired, later observation remains
		{"2025-01-11", 200},
	}
	for _, tc := range cases {
		got, ok := byDate[d(tc.date)]
		if !ok {
			t.Errorf("%s: missing point", tc.date)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: score %v, want %v", tc.date, got, tc.want)
		}
	}
	if last := series[len(series)-1].Date; last != d("2025-01-11") {
		t.Errorf("series ends at %s, want 2025-01-11", last)
	}
}

// TestRollingMax_GapMeansAbsent verifies that a date whose window holds no
// observation is absent from the series entirely, never emitted as zero.
func TestRollingMax_GapMeansAbsent(t *testing.T) {
	obs := []DatedScore{
		{Date: d("2025-01-01"), Score: 300},
		{Date: d("2025-02-01"), Score: 310},
	}
	series := Materialize(RollingMax(obs, 7))
	for _, pt := range series {
		if pt.Score == 0 {
			t.Errorf("zero emitted at %s", pt.Date)
		}
		inFirst := !pt.Date.Before(d("2025-01-01")) && !pt.Date.After(d("2025-01-07"))
		inSecond := !pt.Date.Before(d("2025-02-01")) && !pt.Date.After(d("2025-02-07"))
		if !inFirst && !inSecond {
			t.Errorf("unexpected point in the gap: %+v", pt)
		}
	}
	if len(series) != 14 {
		t.Errorf("expected 14 points (two 7-day plateaus), got %d", len(series))
	}
}

// TestRollingMax_UnsortedInput verifies that observation order does not
// matter and the input slice is not mutated.
func TestRollingMax_UnsortedInput(t *testing.T) {
	obs := []DatedScore{
		{Date: d("2025-01-05"), Score: 200},
		{Date: d("2025-01-01"), Score: 300},
	}
	series := Materialize(RollingMax(obs, 7))
	if series[0].Date != d("2025-01-01") || series[0].Score != 300 {
		t.Errorf("first point = %+v, want {2025-01-01 300}", series[0])
	}
	if obs[0].Date != d("2025-01-05") {
		t.Error("input slice was reordered")
	}
}

// TestRollingMax_Restartable verifies the sequence can be ranged over twice
// with identical results, since consumers may re-iterate.
func TestRollingMax_Restartable(t *testing.T) {
	obs := []DatedScore{
		{Date: d("2025-01-01"), Score: 300},
		{Date: d("2025-01-03"), Score: 280},
	}
	seq := RollingMax(obs, 7)
	first := Materialize(seq)
	second := Materialize(seq)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// TestRollingMax_Empty verifies that no observations yield an empty series.
func TestRollingMax_Empty(t *testing.T) {
	if got := Materialize(RollingMax(nil, 7)); len(got) != 0 {
		t.Errorf("expected empty series, got %v", got)
	}
}
