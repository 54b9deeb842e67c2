package mot

// Tracker-wide tuning constants. None of these are exposed as runtime
// configuration; the factory takes no parameters.
const (
	// chiSqGate95Dof4 is the 95% quantile of the chi-squared distribution
	// with 4 degrees of freedom, used to gate the Mahalanobis distance
	// between a track's predicted position and a candidate detection.
	chiSqGate95Dof4 = 9.4877

	// costCap is the pixel-distance ceiling at or above which a gated-in
	// candidate pair is still rejected.
	costCap = 200.0

	// costReject is the sentinel cost assigned to a pair that failed the
	// Mahalanobis gate, chosen to always exceed costCap.
	costReject = 1e5

	// ageMax is the time-since-update threshold beyond which a Confirmed
	// track is deleted once it goes unmatched.
	ageMax = 30

	// cascadeDepth is the number of time-since-update levels the matching
	// cascade iterates per confirmation state.
	cascadeDepth = 30

	// hitsToConfirm is the number of successful updates a Tentative track
	// needs before being promoted to Confirmed.
	hitsToConfirm = 3

	// traceCap bounds the number of past observations retained per track.
	traceCap = 80

	// smoothWindow is the width of the centered moving average used by
	// TraceLine.
	smoothWindow = 5
)
