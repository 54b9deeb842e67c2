package mot

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// errUnsupportedOnlyPosition is returned when a caller asks the filter to
// gate on position alone; the reference this filter is modeled on leaves
// that branch unimplemented, and returning an explicit error here is safer
// than silently falling back to an uninitialized distance.
var errUnsupportedOnlyPosition = errors.New("mot: only-position gating is not supported")

const (
	stdWeightPosition = 1.0 / 20.0
	stdWeightVelocity = 1.0 / 10.0
)

// kalmanFilter is an 8-dimensional constant-velocity filter over the state
// (cx, cy, aspect, height, cx', cy', aspect', height'), with measurements in
// the 4-dimensional (cx, cy, aspect, height) space.
type kalmanFilter struct {
	motionMat *mat.Dense // 8x8
	updateMat *mat.Dense // 4x8
}

func newKalmanFilter() *kalmanFilter {
	motionMat := mat.NewDense(8, 8, nil)
	for i := 0; i < 8; i++ {
		motionMat.Set(i, i, 1)
	}
	for i := 0; i < 4; i++ {
		motionMat.Set(i, i+4, 1)
	}

	updateMat := mat.NewDense(4, 8, nil)
	for i := 0; i < 4; i++ {
		updateMat.Set(i, i, 1)
	}

	return &kalmanFilter{motionMat: motionMat, updateMat: updateMat}
}

// initiate seeds a mean/covariance pair from a single observation. No
// velocity information is available yet, so the velocity components start
// at zero with a correspondingly wide covariance.
func (kf *kalmanFilter) initiate(box bboxCAH) (*mat.VecDense, *mat.SymDense) {
	mean := mat.NewVecDense(8, []float64{box.cx, box.cy, box.aspect, box.height, 0, 0, 0, 0})

	h := box.height
	std := [8]float64{
		2 * stdWeightPosition * h,
		2 * stdWeightPosition * h,
		1e-1,
		2 * stdWeightPosition * h,
		2 * stdWeightVelocity * h,
		2 * stdWeightVelocity * h,
		5e-1,
		10 * stdWeightVelocity * h, // retained as-is, asymmetric with the rest
	}

	cov := mat.NewSymDense(8, nil)
	for i, s := range std {
		cov.SetSym(i, i, s*s)
	}
	return mean, cov
}

// predict advances mean and covariance one time step under the constant
// velocity motion model, in place.
func (kf *kalmanFilter) predict(mean *mat.VecDense, cov *mat.SymDense) {
	h := mean.AtVec(3)
	std := [8]float64{
		stdWeightPosition * h,
		stdWeightPosition * h,
		1e-1,
		stdWeightPosition * h,
		stdWeightVelocity * h,
		stdWeightVelocity * h,
		5e-1,
		stdWeightVelocity * h,
	}

	motionCov := mat.NewSymDense(8, nil)
	for i, s := range std {
		motionCov.SetSym(i, i, s*s)
	}

	var newMean mat.VecDense
	newMean.MulVec(kf.motionMat, mean)
	mean.CopyVec(&newMean)

	var tmp mat.Dense
	tmp.Mul(kf.motionMat, cov)
	var fcf mat.Dense
	fcf.Mul(&tmp, kf.motionMat.T())

	sym := symmetrize(&fcf, 8)
	sym.AddSym(sym, motionCov)
	cov.CopySym(sym)
}

// project maps mean/covariance into the 4-dimensional measurement space.
func (kf *kalmanFilter) project(mean *mat.VecDense, cov *mat.SymDense) (*mat.VecDense, *mat.SymDense) {
	h := mean.AtVec(3)
	std := [4]float64{
		stdWeightPosition * h,
		stdWeightPosition * h,
		5e-1,
		stdWeightPosition * h,
	}

	innovationCov := mat.NewSymDense(4, nil)
	for i, s := range std {
		innovationCov.SetSym(i, i, s*s)
	}

	var projMean mat.VecDense
	projMean.MulVec(kf.updateMat, mean)

	var tmp mat.Dense
	tmp.Mul(kf.updateMat, cov)
	var hch mat.Dense
	hch.Mul(&tmp, kf.updateMat.T())

	sym := symmetrize(&hch, 4)
	sym.AddSym(sym, innovationCov)

	return &projMean, sym
}

// update incorporates a new observation into mean and covariance, in place.
func (kf *kalmanFilter) update(mean *mat.VecDense, cov *mat.SymDense, box bboxCAH) error {
	projMean, projCov := kf.project(mean, cov)

	var chol mat.Cholesky
	if ok := chol.Factorize(projCov); !ok {
		return errors.New("mot: failed to factorize projected covariance")
	}

	var b mat.Dense
	b.Mul(cov, kf.updateMat.T()) // 8x4

	// kalmanGainT solves S * K^T = (cov * H^T)^T for K^T (4x8); S is
	// symmetric so this equals K^T = S^-1 * (cov * H^T)^T.
	var kalmanGainT mat.Dense
	if err := chol.SolveTo(&kalmanGainT, b.T()); err != nil {
		return errors.Wrap(err, "mot: failed to compute kalman gain")
	}

	innovation := mat.NewVecDense(4, []float64{
		box.cx - projMean.AtVec(0),
		box.cy - projMean.AtVec(1),
		box.aspect - projMean.AtVec(2),
		box.height - projMean.AtVec(3),
	})

	var delta mat.VecDense
	delta.MulVec(kalmanGainT.T(), innovation) // K * innovation, 8x1

	var newMean mat.VecDense
	newMean.AddVec(mean, &delta)
	mean.CopyVec(&newMean)

	var kGain mat.Dense
	kGain.CloneFrom(kalmanGainT.T()) // K, 8x4

	var kh mat.Dense
	kh.Mul(&kGain, kf.updateMat) // K * H, 8x8

	var khCov mat.Dense
	khCov.Mul(&kh, cov) // K * H * cov, 8x8

	var newCovDense mat.Dense
	newCovDense.Sub(cov, &khCov)

	newCov := symmetrize(&newCovDense, 8)
	cov.CopySym(newCov)

	return nil
}

// mahalanobisSq returns the squared Mahalanobis distance between the
// filter's current belief and an observed box, using a Cholesky solve
// rather than an explicit matrix inverse. It returns +Inf, never NaN, when
// the projected covariance cannot be factorized.
func (kf *kalmanFilter) mahalanobisSq(mean *mat.VecDense, cov *mat.SymDense, box bboxCAH, onlyPosition bool) (float64, error) {
	if onlyPosition {
		return 0, errUnsupportedOnlyPosition
	}

	projMean, projCov := kf.project(mean, cov)
	d := mat.NewVecDense(4, []float64{
		box.cx - projMean.AtVec(0),
		box.cy - projMean.AtVec(1),
		box.aspect - projMean.AtVec(2),
		box.height - projMean.AtVec(3),
	})

	var chol mat.Cholesky
	if ok := chol.Factorize(projCov); !ok {
		return math.Inf(1), nil
	}

	var y mat.VecDense
	if err := chol.SolveVecTo(&y, d); err != nil {
		return math.Inf(1), nil
	}

	sum := 0.0
	for i := 0; i < 4; i++ {
		sum += d.AtVec(i) * y.AtVec(i)
	}
	return sum, nil
}

// symmetrize averages a nearly-symmetric dense matrix into a SymDense, to
// absorb floating point asymmetry introduced by chained Mul calls.
func symmetrize(d *mat.Dense, n int) *mat.SymDense {
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := (d.At(i, j) + d.At(j, i)) / 2
			sym.SetSym(i, j, v)
		}
	}
	return sym
}
