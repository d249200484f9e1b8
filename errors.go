package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with [errors.Is]; the narrower kinds also match
// their parent kind.
var (
	// ErrInputMissing is returned when a required input is absent.
	ErrInputMissing = errors.New("deck: required input missing")
	// ErrInvalidParameter is returned for out-of-range or inconsistent scalar
	// inputs.
	ErrInvalidParameter = errors.New("deck: invalid parameter")
	// ErrGeometricFailure is returned when a geometric operation yields no
	// usable result.
	ErrGeometricFailure = errors.New("deck: geometric operation failed")
	// ErrToleranceWarning marks results that were produced but fell outside a
	// tolerance. It is attached to results, not returned as a failure.
	ErrToleranceWarning = errors.New("deck: tolerance exceeded")

	// ErrInsufficientInput is returned when fewer sections than required
	// survive. It is an [ErrInvalidParameter].
	ErrInsufficientInput error = &kindError{"deck: not enough sections to loft", ErrInvalidParameter}
	// ErrLoftGeometry is an [ErrGeometricFailure] raised by [Loft].
	ErrLoftGeometry error = &kindError{"deck: loft failed", ErrGeometricFailure}
	// ErrCapFailure is an [ErrToleranceWarning]: an end opening could not be
	// closed and the solid was returned open.
	ErrCapFailure error = &kindError{"deck: opening could not be capped", ErrToleranceWarning}
)

// kindError is an error kind refining a broader one.
type kindError struct {
	msg    string
	parent error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.parent }

// Edge names one of the four sides of a cross-section, in the cyclic order
// used to join them.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom

	// NumEdges is the number of edges per cross-section.
	NumEdges = 4
)

var edgeNames = [NumEdges]string{"left", "top", "right", "bottom"}

func (e Edge) String() string {
	if e < 0 || e >= NumEdges {
		return fmt.Sprintf("Edge(%d)", int(e))
	}
	return edgeNames[e]
}

// EdgeCountError reports edge sequences whose station counts disagree.
type EdgeCountError struct {
	Counts   [NumEdges]int
	Expected int
	// Mismatched lists the edges whose count differs from Expected.
	Mismatched []Edge
}

func newEdgeCountError(counts [NumEdges]int) *EdgeCountError {
	// The expected count is the one shared by most edges; ties go to the
	// earlier edge.
	expected, best := counts[0], 0
	for _, c := range counts {
		n := 0
		for _, o := range counts {
			if o == c {
				n++
			}
		}
		if n > best {
			expected, best = c, n
		}
	}
	err := &EdgeCountError{Counts: counts, Expected: expected}
	for e, c := range counts {
		if c != expected {
			err.Mismatched = append(err.Mismatched, Edge(e))
		}
	}
	return err
}

func (e *EdgeCountError) Error() string {
	parts := make([]string, len(e.Mismatched))
	for i, edge := range e.Mismatched {
		parts[i] = fmt.Sprintf("%s has %d", edge, e.Counts[edge])
	}
	return fmt.Sprintf("deck: edge station counts disagree: %s, expected %d", strings.Join(parts, ", "), e.Expected)
}

func (e *EdgeCountError) Unwrap() error { return ErrInvalidParameter }

// StationError attributes a failure to one station.
type StationError struct {
	Station int
	Err     error
}

func (e *StationError) Error() string {
	return fmt.Sprintf("station %d: %v", e.Station, e.Err)
}

func (e *StationError) Unwrap() error { return e.Err }
