package mot

import (
	"log"

	"gonum.org/v1/gonum/mat"
)

// State is a track's lifecycle stage.
type State int

const (
	// Tentative tracks have not yet accumulated enough hits to be trusted.
	Tentative State = iota
	// Confirmed tracks are reported as established identities.
	Confirmed
	// Deleted tracks are purged from the tracker's roster at end of frame.
	Deleted
)

func (s State) String() string {
	switch s {
	case Tentative:
		return "Tentative"
	case Confirmed:
		return "Confirmed"
	case Deleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// Track is a single tracked object: a Kalman belief over its motion plus
// the bookkeeping needed to decide when to trust, keep, or retire it.
//
// A *Track is a borrow: it is owned exclusively by the Tracker that
// returned it and is only valid until that Tracker's next Update call.
type Track struct {
	id   int
	mean *mat.VecDense
	cov  *mat.SymDense

	state           State
	hits            int
	age             int
	timeSinceUpdate int

	lastPosition Box
	trace        []Box
}

func newTrack(id int, box Box, mean *mat.VecDense, cov *mat.SymDense) *Track {
	return &Track{
		id:           id,
		mean:         mean,
		cov:          cov,
		state:        Tentative,
		hits:         1,
		age:          1,
		lastPosition: box,
		trace:        []Box{box},
	}
}

// ID returns the track's stable identifier, assigned once at birth.
func (t *Track) ID() int {
	return t.id
}

// State returns the track's current lifecycle state.
func (t *Track) State() State {
	return t.state
}

// IsConfirmed reports whether the track has been promoted to Confirmed.
func (t *Track) IsConfirmed() bool {
	return t.state == Confirmed
}

// TimeSinceUpdate returns the number of predicts since the last successful
// update.
func (t *Track) TimeSinceUpdate() int {
	return t.timeSinceUpdate
}

// LastPosition returns the most recently observed box.
func (t *Track) LastPosition() Box {
	return t.lastPosition
}

// PredictBox derives a box from the filter's current mean, independent of
// any observation.
func (t *Track) PredictBox() Box {
	return boxFromCAH(t.mean.AtVec(0), t.mean.AtVec(1), t.mean.AtVec(2), t.mean.AtVec(3))
}

// TraceSize returns the number of observations retained in the trail.
func (t *Track) TraceSize() int {
	return len(t.trace)
}

// Location returns the timeSinceUpdate-th most recent observation (0 is the
// newest). An out-of-range index logs a diagnostic and returns the zero
// Box, mirroring the defensive bounds check this behavior is modeled on.
func (t *Track) Location(timeSinceUpdate int) Box {
	if timeSinceUpdate < 0 || timeSinceUpdate >= len(t.trace) {
		log.Printf("mot: location[%d] out of range[%d]", timeSinceUpdate, len(t.trace))
		return Box{}
	}
	return t.trace[len(t.trace)-1-timeSinceUpdate]
}

// TraceLine returns the trail smoothed by a centered moving average: each
// point's x is the average box center, its y the average box bottom (a
// ground-contact approximation).
func (t *Track) TraceLine() []Point {
	n := len(t.trace)
	line := make([]Point, n)
	half := smoothWindow / 2
	for i := 0; i < n; i++ {
		begin := i - half
		if begin < 0 {
			begin = 0
		}
		end := i + half + 1
		if end > n {
			end = n
		}
		var sumX, sumY float64
		for j := begin; j < end; j++ {
			c := t.trace[j].Center()
			sumX += c.X
			sumY += float64(t.trace[j].Bottom)
		}
		count := float64(end - begin)
		line[i] = Point{X: sumX / count, Y: sumY / count}
	}
	return line
}

func (t *Track) predict(kf *kalmanFilter) {
	kf.predict(t.mean, t.cov)
	t.age++
	t.timeSinceUpdate++
}

func (t *Track) markMissed() {
	if t.state == Tentative || t.timeSinceUpdate > ageMax {
		t.state = Deleted
	}
}

func (t *Track) update(kf *kalmanFilter, box Box) error {
	t.trace = append(t.trace, box)
	if len(t.trace) > traceCap {
		t.trace = t.trace[1:]
	}

	if err := kf.update(t.mean, t.cov, box.CAH()); err != nil {
		return err
	}

	t.lastPosition = box
	t.hits++
	t.timeSinceUpdate = 0

	if t.state == Tentative && t.hits >= hitsToConfirm {
		t.state = Confirmed
	}
	return nil
}
