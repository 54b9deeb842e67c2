package mot

import (
	"math"
	"testing"
)

func TestKalmanInitiatePredictConverges(t *testing.T) {
	kf := newKalmanFilter()
	box := NewBox(100, 100, 140, 200)
	mean, cov := kf.initiate(box.CAH())

	if mean.AtVec(4) != 0 || mean.AtVec(5) != 0 {
		t.Fatalf("expected zero initial velocity, got vx=%f vy=%f", mean.AtVec(4), mean.AtVec(5))
	}

	// A moving box observed repeatedly should pull the filter's velocity
	// estimate towards the true per-frame displacement.
	cx, cy := box.CAH().cx, box.CAH().cy
	for i := 0; i < 20; i++ {
		kf.predict(mean, cov)
		cx += 5
		cy += 2
		moved := boxFromCAH(cx, cy, box.CAH().aspect, box.CAH().height)
		if err := kf.update(mean, cov, moved.CAH()); err != nil {
			t.Fatalf("update failed: %v", err)
		}
	}

	if math.Abs(mean.AtVec(4)-5) > 1.0 {
		t.Fatalf("expected vx close to 5, got %f", mean.AtVec(4))
	}
	if math.Abs(mean.AtVec(5)-2) > 1.0 {
		t.Fatalf("expected vy close to 2, got %f", mean.AtVec(5))
	}
}

func TestKalmanMahalanobisGrowsWithDistance(t *testing.T) {
	kf := newKalmanFilter()
	box := NewBox(0, 0, 40, 80)
	mean, cov := kf.initiate(box.CAH())

	near := NewBox(1, 1, 41, 81)
	far := NewBox(500, 500, 540, 580)

	dNear, err := kf.mahalanobisSq(mean, cov, near.CAH(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dFar, err := kf.mahalanobisSq(mean, cov, far.CAH(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dFar <= dNear {
		t.Fatalf("expected farther box to have larger mahalanobis distance: near=%f far=%f", dNear, dFar)
	}
}

func TestKalmanOnlyPositionUnsupported(t *testing.T) {
	kf := newKalmanFilter()
	box := NewBox(0, 0, 10, 10)
	mean, cov := kf.initiate(box.CAH())
	if _, err := kf.mahalanobisSq(mean, cov, box.CAH(), true); err == nil {
		t.Fatal("expected an error for only-position gating")
	}
}
