package annual

import "log"

// Project extends a historical series with geometric growth.
//
// Starting from the latest year and amount of 'past', it produces a new
// series covering latest+1 through 'through' where each year's amount is the
// prior year's amount times 'factor'. Years present in 'manual' are used
// verbatim and become the new base for subsequent compounding. Manual entries
// outside the projection window are logged and ignored.
//
// The result always has contiguous year coverage. If 'past' is empty the
// result is empty.
func Project(past *Series, factor float64, through int, manual *Series) *Series {
	r := &Series{}
	if past.Len() == 0 {
		log.Printf("project: empty base series, nothing to project")
		return r
	}
	latest, amount := past.Latest()

	if manual != nil {
		for y := range manual.Values() {
			if y <= latest || y > through {
				log.Printf("project: manual entry for %d is outside projection window (%d, %d]", y, latest, through)
			}
		}
	}

	prev := amount
	for y := latest + 1; y <= through; y++ {
		if manual != nil {
			if v, ok := manual.Get(y); ok {
				prev = v
				r.Append(y, v)
				continue
			}
		}
		prev *= factor
		r.Append(y, prev)
	}
	return r
}
