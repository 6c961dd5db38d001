package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FTRL is the follow-the-regularized-leader proximal update. Per
// coordinate it maintains the z/n accumulators and rewrites the weight in
// closed form; the Laplace weight acts as the sparsity-inducing L1 term and
// the Gaussian weight as the L2 term.
type FTRL struct {
	schedule
	alpha float64
	beta  float64
	z     *mat.VecDense
	n     *mat.VecDense
}

func newFTRL(p Params) *FTRL {
	return &FTRL{
		schedule: newSchedule(p),
		alpha:    p.FTRLAlpha,
		beta:     p.FTRLBeta,
	}
}

// ApplyUpdate folds one gradient into the accumulators and recomputes the
// touched coordinates of w.
func (o *FTRL) ApplyUpdate(w *mat.VecDense, ex Example) {
	dim := ex.X.Len()
	if o.z == nil {
		o.z = mat.NewVecDense(dim, nil)
		o.n = mat.NewVecDense(dim, nil)
	}

	laplace := o.params.Laplace
	gauss := o.params.Gauss

	for i := 0; i < dim; i++ {
		g := ex.Gradient * ex.X.AtVec(i)
		ni := o.n.AtVec(i)
		zi := o.z.AtVec(i)

		if g != 0 {
			sigma := (math.Sqrt(ni+g*g) - math.Sqrt(ni)) / o.alpha
			zi += g - sigma*w.AtVec(i)
			ni += g * g
			o.z.SetVec(i, zi)
			o.n.SetVec(i, ni)
		}

		if math.Abs(zi) <= laplace {
			w.SetVec(i, 0)
			continue
		}
		sign := 1.0
		if zi < 0 {
			sign = -1.0
		}
		w.SetVec(i, -(zi-sign*laplace)/((o.beta+math.Sqrt(ni))/o.alpha+gauss))
	}

	o.tick()
}

// Family implements Optimizer.
func (o *FTRL) Family() Family { return FamilyFTRL }
