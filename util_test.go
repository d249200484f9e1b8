package deck

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, got Point, want Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); !(d <= epsilon) {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

func assertNearVec(t *testing.T, got Vec3, want Vec3, epsilon float64) {
	t.Helper()
	if d := got.Sub(want).Hypot(); !(d <= epsilon) {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

func assertClose(t *testing.T, got, want, epsilon float64) {
	t.Helper()
	if !(math.Abs(got-want) <= epsilon) {
		t.Fatalf("got %v, expected %v", got, want)
	}
}

func mustPolyline(t *testing.T, pts ...Point) Polyline {
	t.Helper()
	pl, err := NewPolyline(pts...)
	if err != nil {
		t.Fatal(err)
	}
	return pl
}
