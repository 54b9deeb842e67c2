package mot

import (
	"math"
	"testing"
)

const eps = 0.00001

func TestEuclideanDistance(t *testing.T) {
	p1 := NewPoint(0, 0)
	p2 := NewPoint(3, 4)
	got := euclideanDistance(p1, p2)
	if math.Abs(got-5.0) > eps {
		t.Fatalf("expected distance 5, got %f", got)
	}
}

func TestBoxCenterAndCAH(t *testing.T) {
	b := NewBox(10, 20, 30, 60)
	c := b.Center()
	if math.Abs(c.X-20) > eps || math.Abs(c.Y-40) > eps {
		t.Fatalf("unexpected center: %+v", c)
	}
	cah := b.CAH()
	if math.Abs(cah.cx-20) > eps || math.Abs(cah.cy-40) > eps {
		t.Fatalf("unexpected cah center: %+v", cah)
	}
	if math.Abs(cah.height-40) > eps {
		t.Fatalf("unexpected cah height: %f", cah.height)
	}
	wantAspect := 20.0 / 40.0
	if math.Abs(cah.aspect-wantAspect) > eps {
		t.Fatalf("unexpected cah aspect: %f", cah.aspect)
	}
}

func TestBoxFromCAHRoundTrip(t *testing.T) {
	b := NewBox(10, 20, 30, 60)
	cah := b.CAH()
	back := boxFromCAH(cah.cx, cah.cy, cah.aspect, cah.height)
	if back.Width() != b.Width() || back.Height() != b.Height() {
		t.Fatalf("round trip mismatch: got %+v, want dims %dx%d", back, b.Width(), b.Height())
	}
}
