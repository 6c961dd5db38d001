package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Adagrad scales the learning rate per coordinate by the inverse square
// root of the accumulated squared gradients, so rarely active features keep
// a higher rate than frequent ones.
type Adagrad struct {
	schedule
	accum *mat.VecDense
	eps   float64
}

func newAdagrad(p Params) *Adagrad {
	return &Adagrad{
		schedule: newSchedule(p),
		eps:      1e-8,
	}
}

// ApplyUpdate takes one per-coordinate adaptive gradient step, then
// regularizes.
func (o *Adagrad) ApplyUpdate(w *mat.VecDense, ex Example) {
	rate := o.EffectiveRate()

	if ex.Gradient != 0 {
		n := ex.X.Len()
		if o.accum == nil {
			o.accum = mat.NewVecDense(n, nil)
		}
		for i := 0; i < n; i++ {
			g := ex.Gradient * ex.X.AtVec(i)
			if g == 0 {
				continue
			}
			acc := o.accum.AtVec(i) + g*g
			o.accum.SetVec(i, acc)
			w.SetVec(i, w.AtVec(i)-rate*g/(math.Sqrt(acc)+o.eps))
		}
	}

	o.regularize(w, rate)
	o.tick()
}

// Family implements Optimizer.
func (o *Adagrad) Family() Family { return FamilyAdagrad }
