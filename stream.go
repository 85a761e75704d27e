package hearth

import (
	"log"

	"github.com/hearthlab/hearth/annual"
)

// DefaultEndYear is the projection horizon used when a stream has no
// explicit end year.
const DefaultEndYear = 2100

// Stream binds an annual series to a filtered subset of a transaction or
// budget feed. Historical expenses are negative, incomes positive.
//
// A stream memoizes its past, projected, and combined series; adding a
// manual entry invalidates the caches. Streams are constructed once per
// logical income or expense category and are not safe for concurrent use.
type Stream struct {
	name            string
	feed            *Feed
	filter          Filter
	endYear         int
	inflationFactor float64
	useBudget       bool

	manual    *annual.Series
	past      *annual.Series
	projected *annual.Series
	combined  *annual.Series
}

// NewStream creates a stream over 'feed' selecting records with 'filter',
// projected by 'inflationFactor' through 'endYear'. When 'useBudget' is true
// the historical series is read from the budget feed instead of the
// transaction history.
func NewStream(name string, feed *Feed, filter Filter, endYear int, inflationFactor float64, useBudget bool) *Stream {
	return &Stream{
		name:            name,
		feed:            feed,
		filter:          filter,
		endYear:         endYear,
		inflationFactor: inflationFactor,
		useBudget:       useBudget,
		manual:          &annual.Series{},
	}
}

// Name returns the stream's name.
func (s *Stream) Name() string { return s.name }

// EndYear returns the projection horizon.
func (s *Stream) EndYear() int { return s.endYear }

// AddManualEntry sets an expected amount for a specific projected year,
// invalidating the cached series.
func (s *Stream) AddManualEntry(year int, amount float64) {
	s.manual.Append(year, amount)
	s.projected = nil
	s.combined = nil
}

// PastSeries retrieves the historical series from the feed. Transaction-backed
// streams are smoothed (the in-progress year is replaced with the
// trailing-12-month total); budget-backed streams are read as planned.
func (s *Stream) PastSeries() *annual.Series {
	if s.past == nil {
		if s.useBudget {
			s.past = s.feed.BudgetSeries(s.filter)
		} else {
			s.past = s.feed.PastSeries(s.filter)
		}
	}
	return s.past
}

// ProjectedSeries projects the future series from the historical one.
//
// A budget-backed stream with no budget data falls back to the
// transaction-derived smoothed average as projection base.
func (s *Stream) ProjectedSeries() *annual.Series {
	if s.projected == nil {
		past := s.PastSeries()
		if s.useBudget && past.Len() == 0 {
			log.Printf("no budget data found for %q, falling back on transactions", s.name)
			past = s.feed.PastSeries(s.filter)
		}
		s.projected = annual.Project(past, s.inflationFactor, s.endYear, s.manual)
	}
	return s.projected
}

// StreamSeries returns the combined historical and projected series, sorted
// by year. The result is memoized until a manual entry is added.
func (s *Stream) StreamSeries() *annual.Series {
	if s.combined == nil {
		s.combined = annual.Sum(s.PastSeries(), s.ProjectedSeries())
	}
	return s.combined
}
