package annual

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"
)

// Series stores a chronological series of amounts, each associated with a
// calendar year. It ensures that years are unique and the series is always
// sorted ascending. The zero value is an empty series ready for use.
type Series struct {
	years   []int
	amounts []float64
}

// New builds a series from a year->amount map.
func New(amounts map[int]float64) *Series {
	s := &Series{}
	for y, v := range amounts {
		s.Append(y, v)
	}
	return s
}

// Constant builds a series holding the same amount for every year in [first, last].
func Constant(amount float64, first, last int) *Series {
	s := &Series{}
	for y := first; y <= last; y++ {
		s.Append(y, amount)
	}
	return s
}

// Len returns the number of years in the series.
func (s *Series) Len() int { return len(s.years) }

// Append adds a point to the series.
//
// An existing amount at that year is overwritten.
func (s *Series) Append(year int, amount float64) *Series {
	if i := slices.Index(s.years, year); i >= 0 {
		s.amounts[i] = amount
		return s
	}
	i, _ := slices.BinarySearch(s.years, year)
	s.years = slices.Insert(s.years, i, year)
	s.amounts = slices.Insert(s.amounts, i, amount)
	return s
}

// AppendAdd adds a point to the series.
//
// An existing amount at that year is added to.
func (s *Series) AppendAdd(year int, amount float64) *Series {
	if i := slices.Index(s.years, year); i >= 0 {
		s.amounts[i] += amount
		return s
	}
	return s.Append(year, amount)
}

// Get returns the amount at 'year' and true, or zero and false.
func (s *Series) Get(year int) (float64, bool) {
	if i := slices.Index(s.years, year); i >= 0 {
		return s.amounts[i], true
	}
	return 0, false
}

// At returns the amount at 'year', or zero if the year is absent.
func (s *Series) At(year int) float64 {
	v, _ := s.Get(year)
	return v
}

// First returns the earliest year and amount, or zeros if the series is empty.
func (s *Series) First() (year int, amount float64) {
	if len(s.years) == 0 {
		return 0, 0
	}
	return s.years[0], s.amounts[0]
}

// Latest returns the latest year and amount, or zeros if the series is empty.
func (s *Series) Latest() (year int, amount float64) {
	last := len(s.years) - 1
	if last < 0 {
		return 0, 0
	}
	return s.years[last], s.amounts[last]
}

// Values returns an iterator over all year/amount pairs, in chronological order.
func (s *Series) Values() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i, y := range s.years {
			if !yield(y, s.amounts[i]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the series.
func (s *Series) Clone() *Series {
	return &Series{
		years:   slices.Clone(s.years),
		amounts: slices.Clone(s.amounts),
	}
}

// Slice returns a new series restricted to years in [first, last].
func (s *Series) Slice(first, last int) *Series {
	r := &Series{}
	for i, y := range s.years {
		if y >= first && y <= last {
			r.Append(y, s.amounts[i])
		}
	}
	return r
}

// Sum combines any number of series by outer join: a year present in any
// operand is present in the result, missing years count as zero.
func Sum(series ...*Series) *Series {
	r := &Series{}
	for _, s := range series {
		if s == nil {
			continue
		}
		for y, v := range s.Values() {
			r.AppendAdd(y, v)
		}
	}
	return r
}

// Add returns a new series, the outer-join sum of s and o.
func (s *Series) Add(o *Series) *Series { return Sum(s, o) }

// Scale returns a new series with every amount multiplied by f.
func (s *Series) Scale(f float64) *Series {
	r := s.Clone()
	for i := range r.amounts {
		r.amounts[i] *= f
	}
	return r
}

// Neg returns a new series with every amount negated.
func (s *Series) Neg() *Series { return s.Scale(-1) }

// Map returns a new series with fn applied to every amount.
func (s *Series) Map(fn func(year int, amount float64) float64) *Series {
	r := s.Clone()
	for i, y := range r.years {
		r.amounts[i] = fn(y, r.amounts[i])
	}
	return r
}

// Total returns the sum of all amounts in the series.
func (s *Series) Total() float64 {
	var t float64
	for _, v := range s.amounts {
		t += v
	}
	return t
}

// Equal reports whether both series cover the same years with amounts equal
// within tolerance.
func (s *Series) Equal(o *Series, tolerance float64) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i, y := range s.years {
		if o.years[i] != y || math.Abs(o.amounts[i]-s.amounts[i]) > tolerance {
			return false
		}
	}
	return true
}

// Contiguous reports whether the series has no gap between its first and
// latest years.
func (s *Series) Contiguous() bool {
	for i := 1; i < len(s.years); i++ {
		if s.years[i] != s.years[i-1]+1 {
			return false
		}
	}
	return true
}

// String renders the series as "year: amount" lines, mostly for debugging.
func (s *Series) String() string {
	var b strings.Builder
	for y, v := range s.Values() {
		fmt.Fprintf(&b, "%d: %.2f\n", y, v)
	}
	return b.String()
}
