package hearth

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/hearthlab/hearth/annual"
)

// WebQuotes fetches quotes and yearly closes from a JSON quote service. The
// URL fields are printf templates with a single %s for the symbol; the path
// fields are jsonpath expressions into the response.
type WebQuotes struct {
	QuoteURL  string // quote endpoint
	PricePath string // path to the last price, a number
	HintPath  string // path to the instrument-class hint, a number
	ClosesURL string // yearly-closes endpoint
	RowsPath  string // path to the close rows, a list of [year, close] pairs
}

// jfloat extracts a float64 at the jsonpath from a decoded JSON document.
// The library sometimes wraps a single answer in a list; unwrap it.
func jfloat(path string, jobj any) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a float %v", path, jval)
	}
	return val, nil
}

// Quote fetches the current quote for the symbol.
func (w *WebQuotes) Quote(symbol string) (Quote, error) {
	var jobj any
	addr := fmt.Sprintf(w.QuoteURL, symbol)
	if err := jwget(daily(), addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error retrieving quote %q: %w", symbol, err)
	}
	price, err := jfloat(w.PricePath, jobj)
	if err != nil {
		return Quote{}, fmt.Errorf("quote %q: %w", symbol, err)
	}
	hint, err := jfloat(w.HintPath, jobj)
	if err != nil {
		return Quote{}, fmt.Errorf("quote %q: %w", symbol, err)
	}
	return Quote{Price: price, Hint: int(hint)}, nil
}

// YearlyCloses fetches the last closing price of each year for the symbol.
func (w *WebQuotes) YearlyCloses(symbol string) (*annual.Series, error) {
	var jobj any
	addr := fmt.Sprintf(w.ClosesURL, symbol)
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving closes %q: %w", symbol, err)
	}
	jval, err := jsonpath.Get(w.RowsPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %q %w", symbol, w.RowsPath, err)
	}
	rows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: %q not a list", symbol, w.RowsPath)
	}
	closes := &annual.Series{}
	for _, row := range rows {
		pair, ok := row.([]any)
		if !ok || len(pair) < 2 {
			return nil, fmt.Errorf("error parsing %q: row %v is not a [year, close] pair", symbol, row)
		}
		year, yok := pair[0].(float64)
		close, cok := pair[1].(float64)
		if !yok || !cok {
			return nil, fmt.Errorf("error parsing %q: row %v is not numeric", symbol, row)
		}
		closes.Append(int(year), close)
	}
	return closes, nil
}

// StaticQuotes is an in-memory price source, used for offline simulations
// and in tests.
type StaticQuotes struct {
	quotes map[string]Quote
	closes map[string]*annual.Series
}

// NewStaticQuotes creates an empty static price source.
func NewStaticQuotes() *StaticQuotes {
	return &StaticQuotes{
		quotes: map[string]Quote{},
		closes: map[string]*annual.Series{},
	}
}

// SetQuote fixes the current quote for a symbol.
func (s *StaticQuotes) SetQuote(symbol string, q Quote) { s.quotes[symbol] = q }

// SetYearlyCloses fixes the yearly close series for a symbol.
func (s *StaticQuotes) SetYearlyCloses(symbol string, closes *annual.Series) {
	s.closes[symbol] = closes
}

// Quote returns the fixed quote for the symbol.
func (s *StaticQuotes) Quote(symbol string) (Quote, error) {
	q, ok := s.quotes[symbol]
	if !ok {
		return Quote{}, fmt.Errorf("no quote for %q", symbol)
	}
	return q, nil
}

// YearlyCloses returns the fixed close series for the symbol.
func (s *StaticQuotes) YearlyCloses(symbol string) (*annual.Series, error) {
	closes, ok := s.closes[symbol]
	if !ok {
		return nil, fmt.Errorf("no yearly closes for %q", symbol)
	}
	return closes, nil
}
