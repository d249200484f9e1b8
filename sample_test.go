package deck

import (
	"errors"
	"math"
	"testing"
)

func checkStations(t *testing.T, c Curve, stations []Station, count int) {
	t.Helper()
	if len(stations) != count {
		t.Fatalf("got %d stations, want %d", len(stations), count)
	}
	for i, st := range stations {
		if st.Index != i {
			t.Errorf("station %d has index %d", i, st.Index)
		}
		if i > 0 && !(st.Param > stations[i-1].Param) {
			t.Errorf("station %d: parameter %v does not increase", i, st.Param)
		}
		assertNear(t, st.Frame.Origin, c.Eval(st.Param), 1e-9)
		if !st.Frame.IsOrthonormal(1e-9) {
			t.Errorf("station %d: frame %v is not orthonormal", i, st.Frame)
		}
		if h := st.Frame.Handedness(); math.Abs(h-1) > 1e-9 {
			t.Errorf("station %d: got handedness %v, want 1", i, h)
		}
		assertNearVec(t, st.Frame.Z, Tangent(c, st.Param).Negate(), 1e-9)
	}
}

func TestSampleStraightAxis(t *testing.T) {
	l := Line{Pt(0, 0, 0), Pt(10, 0, 0)}
	for _, policy := range []FramePolicy{PerpendicularFrames, TangentCrossUp} {
		t.Run(policy.String(), func(t *testing.T) {
			stations, err := Sample(l, 5, &SampleOptions{Policy: policy})
			if err != nil {
				t.Fatal(err)
			}
			checkStations(t, l, stations, 5)
			for i := 1; i < len(stations); i++ {
				d := stations[i].Frame.Origin.Distance(stations[i-1].Frame.Origin)
				assertClose(t, d, 2.5, 1e-9)
			}
			for _, st := range stations {
				assertNearVec(t, st.Frame.X, Vec(0, -1, 0), 1e-12)
				assertNearVec(t, st.Frame.Y, Vec(0, 0, 1), 1e-12)
			}
		})
	}
}

func TestSampleCurved(t *testing.T) {
	c := quarterCircle(t)
	for _, policy := range []FramePolicy{PerpendicularFrames, TangentCrossUp} {
		t.Run(policy.String(), func(t *testing.T) {
			for _, count := range []int{2, 3, 10} {
				stations, err := Sample(c, count, &SampleOptions{Policy: policy})
				if err != nil {
					t.Fatal(err)
				}
				checkStations(t, c, stations, count)
				// A planar curve has a constant binormal, so neither policy
				// twists the frames out of the curve's plane.
				for _, st := range stations {
					if d := st.Frame.Y.Dot(Vec(0, 0, 1)); d < 1-1e-9 {
						t.Errorf("got Y %v, want +Z", st.Frame.Y)
					}
				}
			}
		})
	}
}

func TestSampleRotationMinimizing(t *testing.T) {
	// A helix has torsion, so the propagated frame has to turn with it.
	pts := make([]Point, 0, 33)
	for i := range 33 {
		th := float64(i) / 32 * 2 * math.Pi
		pts = append(pts, Pt(10*math.Cos(th), 10*math.Sin(th), float64(i)/8))
	}
	c, err := NewNURBS(3, pts, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	stations, err := Sample(c, 12, nil)
	if err != nil {
		t.Fatal(err)
	}
	checkStations(t, c, stations, 12)
}

func TestSampleErrors(t *testing.T) {
	l := Line{Pt(0, 0, 0), Pt(10, 0, 0)}
	if _, err := Sample(l, 1, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got error %v, want %v", err, ErrInvalidParameter)
	}
	if _, err := Sample(nil, 5, nil); !errors.Is(err, ErrInputMissing) {
		t.Errorf("got error %v, want %v", err, ErrInputMissing)
	}

	vertical := Line{Pt(0, 0, 0), Pt(0, 0, 10)}
	_, err := Sample(vertical, 3, &SampleOptions{Policy: TangentCrossUp})
	var se *StationError
	if !errors.As(err, &se) || se.Station != 0 {
		t.Fatalf("got error %v, want a StationError for station 0", err)
	}
	if !errors.Is(err, ErrGeometricFailure) {
		t.Errorf("got error %v, want %v", err, ErrGeometricFailure)
	}

	// Perpendicular frames fall back to an arbitrary normal.
	stations, err := Sample(vertical, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	checkStations(t, vertical, stations, 3)
}

func TestParseFramePolicy(t *testing.T) {
	for _, p := range []FramePolicy{PerpendicularFrames, TangentCrossUp} {
		got, err := ParseFramePolicy(p.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != p {
			t.Errorf("got %v, want %v", got, p)
		}
	}
	if _, err := ParseFramePolicy("sideways"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got error %v, want %v", err, ErrInvalidParameter)
	}
}
