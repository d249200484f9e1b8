package deck

// SectionArena stores the edge curves of a run of stations in one flat slice,
// indexed by row and [Edge].
type SectionArena struct {
	stations []int
	cells    []Curve
}

// NewSectionArena returns an empty arena with one row per entry of stations.
// Each entry is the station index the row belongs to.
func NewSectionArena(stations []int) *SectionArena {
	return &SectionArena{
		stations: append([]int(nil), stations...),
		cells:    make([]Curve, len(stations)*NumEdges),
	}
}

// Len returns the number of rows.
func (a *SectionArena) Len() int { return len(a.stations) }

// Station returns the station index of row.
func (a *SectionArena) Station(row int) int { return a.stations[row] }

func (a *SectionArena) idx(row int, e Edge) int { return row*NumEdges + int(e) }

func (a *SectionArena) At(row int, e Edge) Curve { return a.cells[a.idx(row, e)] }

// Set stores c for the given row and edge. Distinct cells may be set
// concurrently.
func (a *SectionArena) Set(row int, e Edge, c Curve) { a.cells[a.idx(row, e)] = c }

// Row returns the four edge curves of row in cyclic order.
func (a *SectionArena) Row(row int) [NumEdges]Curve {
	var out [NumEdges]Curve
	copy(out[:], a.cells[a.idx(row, 0):a.idx(row+1, 0)])
	return out
}
