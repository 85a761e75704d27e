package annual

import (
	"math"
	"testing"
)

func TestSeries_AppendKeepsSortedUniqueYears(t *testing.T) {
	s := &Series{}
	s.Append(2023, 10)
	s.Append(2021, 5)
	s.Append(2022, 7)
	s.Append(2021, 6) // overwrite

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	wantYears := []int{2021, 2022, 2023}
	wantAmounts := []float64{6, 7, 10}
	i := 0
	for y, v := range s.Values() {
		if y != wantYears[i] || v != wantAmounts[i] {
			t.Errorf("entry %d = (%d, %v), want (%d, %v)", i, y, v, wantYears[i], wantAmounts[i])
		}
		i++
	}
}

func TestSeries_SumOuterJoin(t *testing.T) {
	a := New(map[int]float64{2020: 100, 2021: 200})
	b := New(map[int]float64{2021: -50, 2022: 30})

	got := Sum(a, b, nil)

	want := New(map[int]float64{2020: 100, 2021: 150, 2022: 30})
	if !got.Equal(want, 1e-9) {
		t.Errorf("Sum() = %v, want %v", got, want)
	}
}

func TestSeries_SliceInclusive(t *testing.T) {
	s := New(map[int]float64{2020: 1, 2021: 2, 2022: 3, 2023: 4})
	got := s.Slice(2021, 2022)
	if got.Len() != 2 {
		t.Fatalf("Slice() covers %d years, want 2", got.Len())
	}
	if first, v := got.First(); first != 2021 || v != 2 {
		t.Errorf("First() = (%d, %v), want (2021, 2)", first, v)
	}
	if last, v := got.Latest(); last != 2022 || v != 3 {
		t.Errorf("Latest() = (%d, %v), want (2022, 3)", last, v)
	}
}

func TestSeries_LatestOnEmpty(t *testing.T) {
	s := &Series{}
	if y, v := s.Latest(); y != 0 || v != 0 {
		t.Errorf("Latest() on empty = (%d, %v), want (0, 0)", y, v)
	}
}

func TestProject_GeometricGrowth(t *testing.T) {
	past := New(map[int]float64{2023: 90, 2024: 100})

	got := Project(past, 1.03, 2028, nil)

	if !got.Contiguous() {
		t.Fatalf("Project() has gaps: %v", got)
	}
	if first, _ := got.First(); first != 2025 {
		t.Errorf("Project() starts at %d, want 2025", first)
	}
	if last, _ := got.Latest(); last != 2028 {
		t.Errorf("Project() ends at %d, want 2028", last)
	}
	prev := 100.0
	for y := 2025; y <= 2028; y++ {
		want := prev * 1.03
		if v := got.At(y); math.Abs(v-want) > 1e-9 {
			t.Errorf("Project()[%d] = %v, want %v", y, v, want)
		}
		prev = want
	}
}

func TestProject_ManualEntryRebasesGrowth(t *testing.T) {
	past := New(map[int]float64{2024: 100})
	manual := New(map[int]float64{2026: 500})

	got := Project(past, 1.10, 2028, manual)

	testCases := []struct {
		year int
		want float64
	}{
		{2025, 110},
		{2026, 500}, // verbatim
		{2027, 550}, // compounds from the manual base
		{2028, 605},
	}
	for _, tc := range testCases {
		if v := got.At(tc.year); math.Abs(v-tc.want) > 1e-9 {
			t.Errorf("Project()[%d] = %v, want %v", tc.year, v, tc.want)
		}
	}
}

func TestProject_ManualEntryOutsideWindowIgnored(t *testing.T) {
	past := New(map[int]float64{2024: 100})
	manual := New(map[int]float64{2050: 1, 2020: 2})

	got := Project(past, 1.0, 2026, manual)

	want := New(map[int]float64{2025: 100, 2026: 100})
	if !got.Equal(want, 1e-9) {
		t.Errorf("Project() = %v, want %v", got, want)
	}
}

func TestProject_EmptyPast(t *testing.T) {
	got := Project(&Series{}, 1.05, 2030, nil)
	if got.Len() != 0 {
		t.Errorf("Project() on empty past = %v, want empty", got)
	}
}
