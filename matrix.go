package hearth

// ForecastMatrix is a square year-by-year forecast. Row i holds the state of
// every contribution cohort in year i; column j tracks the cohort first
// contributed in year j. Only the lower triangle (j <= i) is meaningful.
//
// Cells are stored in a single row-major slice.
type ForecastMatrix struct {
	n     int
	cells []float64
}

// NewForecastMatrix creates an n-by-n zero matrix.
func NewForecastMatrix(n int) *ForecastMatrix {
	return &ForecastMatrix{n: n, cells: make([]float64, n*n)}
}

// Size returns the number of rows (and columns).
func (m *ForecastMatrix) Size() int { return m.n }

// At returns the cell at row i, column j.
func (m *ForecastMatrix) At(i, j int) float64 { return m.cells[i*m.n+j] }

// Set assigns the cell at row i, column j.
func (m *ForecastMatrix) Set(i, j int, v float64) { m.cells[i*m.n+j] = v }

// RowSum totals row i, the aggregate value across all cohorts in that year.
func (m *ForecastMatrix) RowSum(i int) float64 {
	var sum float64
	for _, v := range m.cells[i*m.n : (i+1)*m.n] {
		sum += v
	}
	return sum
}

// Clone returns a deep copy.
func (m *ForecastMatrix) Clone() *ForecastMatrix {
	c := NewForecastMatrix(m.n)
	copy(c.cells, m.cells)
	return c
}
