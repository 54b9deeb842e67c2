package mot

// Tracker is a multi-object tracker: it consumes one set of detections per
// frame and maintains a roster of Tracks, each a persistent identity
// hypothesis with its own motion filter.
//
// A Tracker is not safe for concurrent use; all calls on a given instance
// must come from a single goroutine. Separate Tracker instances are fully
// independent.
type Tracker struct {
	kf     *kalmanFilter
	tracks []*Track
	nextID int
}

// New creates an empty Tracker. There are no configuration parameters:
// every threshold is a compile-time constant.
func New() *Tracker {
	return &Tracker{
		kf:     newKalmanFilter(),
		tracks: nil,
		nextID: 1,
	}
}

// Tracks returns the current roster of non-Deleted tracks, ordered by id.
func (tr *Tracker) Tracks() []*Track {
	out := make([]*Track, len(tr.tracks))
	copy(out, tr.tracks)
	return out
}

// Update advances the tracker by one frame: every live track is predicted,
// candidate detections are matched to tracks via the age/state cascade,
// matched pairs are absorbed into their tracks, unmatched tracks are aged
// towards deletion, and unmatched detections spawn new Tentative tracks.
func (tr *Tracker) Update(detections []Box) {
	for _, t := range tr.tracks {
		t.predict(tr.kf)
	}

	unmatchedTrackIdx := make([]int, len(tr.tracks))
	for i := range tr.tracks {
		unmatchedTrackIdx[i] = i
	}
	unmatchedDetIdx := make([]int, len(detections))
	for i := range detections {
		unmatchedDetIdx[i] = i
	}

	matchedTrackIdx, matchedDetIdx := tr.matchCascade(detections, unmatchedTrackIdx, unmatchedDetIdx)

	matchedTracks := make(map[int]bool, len(matchedTrackIdx))
	for _, idx := range matchedTrackIdx {
		matchedTracks[idx] = true
	}
	matchedDets := make(map[int]bool, len(matchedDetIdx))
	for _, idx := range matchedDetIdx {
		matchedDets[idx] = true
	}

	for i, trackIdx := range matchedTrackIdx {
		detIdx := matchedDetIdx[i]
		_ = tr.tracks[trackIdx].update(tr.kf, detections[detIdx])
	}

	for i, t := range tr.tracks {
		if !matchedTracks[i] {
			t.markMissed()
		}
	}

	for i, d := range detections {
		if !matchedDets[i] {
			tr.birth(d)
		}
	}

	tr.purgeDeleted()
}

// birth creates a new Tentative track seeded from an unmatched detection.
func (tr *Tracker) birth(box Box) {
	mean, cov := tr.kf.initiate(box.CAH())
	tr.tracks = append(tr.tracks, newTrack(tr.nextID, box, mean, cov))
	tr.nextID++
}

func (tr *Tracker) purgeDeleted() {
	kept := tr.tracks[:0]
	for _, t := range tr.tracks {
		if t.state != Deleted {
			kept = append(kept, t)
		}
	}
	tr.tracks = kept
}

// matchCascade runs the two-pass, 30-level matching cascade described by
// the tracker's design: Confirmed tracks get first claim on detections,
// then Tentative tracks, within each pass ordered by how long a track has
// gone unmatched (fresher tracks first).
func (tr *Tracker) matchCascade(detections []Box, unmatchedTrackIdx, unmatchedDetIdx []int) ([]int, []int) {
	var matchedTrackIdx, matchedDetIdx []int

	for _, state := range [2]State{Confirmed, Tentative} {
		for level := 0; level < cascadeDepth; level++ {
			if len(unmatchedTrackIdx) == 0 || len(unmatchedDetIdx) == 0 {
				break
			}

			var levelTrackIdx []int
			for _, idx := range unmatchedTrackIdx {
				t := tr.tracks[idx]
				if t.state == state && t.timeSinceUpdate == level+1 {
					levelTrackIdx = append(levelTrackIdx, idx)
				}
			}
			if len(levelTrackIdx) == 0 {
				continue
			}

			mTrack, mDet := tr.matchAt(detections, levelTrackIdx, unmatchedDetIdx)
			if len(mTrack) == 0 {
				continue
			}

			matchedTrackIdx = append(matchedTrackIdx, mTrack...)
			matchedDetIdx = append(matchedDetIdx, mDet...)
			unmatchedTrackIdx = removeAll(unmatchedTrackIdx, mTrack)
			unmatchedDetIdx = removeAll(unmatchedDetIdx, mDet)
		}
	}

	return matchedTrackIdx, matchedDetIdx
}

// matchAt solves one cascade level: builds the pairwise cost matrix over
// the given track and detection indices and accepts every assignment whose
// cost is below costCap.
func (tr *Tracker) matchAt(detections []Box, trackIdx, detIdx []int) ([]int, []int) {
	cost := make([][]float64, len(trackIdx))
	for i, ti := range trackIdx {
		cost[i] = make([]float64, len(detIdx))
		for j, di := range detIdx {
			cost[i][j] = tr.pairCost(tr.tracks[ti], detections[di])
		}
	}

	assignment, _, err := solveAssignment(cost)
	if err != nil {
		return nil, nil
	}

	var mTrack, mDet []int
	for i, col := range assignment {
		if col < 0 {
			continue
		}
		if cost[i][col] >= costCap {
			continue
		}
		mTrack = append(mTrack, trackIdx[i])
		mDet = append(mDet, detIdx[col])
	}
	return mTrack, mDet
}

// pairCost is the association cost between a track and a candidate
// detection: gated out (costReject) when the Mahalanobis distance exceeds
// the chi-squared threshold, otherwise the euclidean pixel distance between
// the track's last observed center and the detection's center.
func (tr *Tracker) pairCost(t *Track, detection Box) float64 {
	m, err := tr.kf.mahalanobisSq(t.mean, t.cov, detection.CAH(), false)
	if err != nil || m > chiSqGate95Dof4 {
		return costReject
	}
	return euclideanDistance(t.lastPosition.Center(), detection.Center())
}

func removeAll(from []int, remove []int) []int {
	if len(remove) == 0 {
		return from
	}
	skip := make(map[int]bool, len(remove))
	for _, v := range remove {
		skip[v] = true
	}
	out := from[:0:0]
	for _, v := range from {
		if !skip[v] {
			out = append(out, v)
		}
	}
	return out
}
