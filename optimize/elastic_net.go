package optimize

import (
	"gonum.org/v1/gonum/mat"
)

// ElasticNet is stochastic gradient descent with L1+L2 regularization
// applied after every gradient step.
type ElasticNet struct {
	schedule
}

func newElasticNet(p Params) *ElasticNet {
	return &ElasticNet{schedule: newSchedule(p)}
}

// ApplyUpdate takes one gradient step scaled by the scheduled rate, then
// regularizes.
func (o *ElasticNet) ApplyUpdate(w *mat.VecDense, ex Example) {
	rate := o.EffectiveRate()
	if ex.Gradient != 0 {
		w.AddScaledVec(w, -rate*ex.Gradient, ex.X)
	}
	o.regularize(w, rate)
	o.tick()
}

// Family implements Optimizer.
func (o *ElasticNet) Family() Family { return FamilyElasticNet }
