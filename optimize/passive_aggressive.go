package optimize

import (
	"gonum.org/v1/gonum/mat"
)

// PassiveAggressive is the margin-based PA-II update in hinge-loss mode:
// when an example's margin falls below 1, the weights move just far enough
// to close the loss, capped by the aggressiveness parameter C.
type PassiveAggressive struct {
	schedule
	c float64
}

func newPassiveAggressive(p Params) *PassiveAggressive {
	return &PassiveAggressive{
		schedule: newSchedule(p),
		c:        p.Aggressiveness,
	}
}

// ApplyUpdate moves w by tau·target·x when the hinge margin is violated.
// tau = loss / (||x||^2 + 1/(2C)).
func (o *PassiveAggressive) ApplyUpdate(w *mat.VecDense, ex Example) {
	margin := ex.Target * ex.Score
	if margin < 1 {
		loss := 1 - margin
		tau := loss / (mat.Dot(ex.X, ex.X) + 1.0/(2.0*o.c))
		w.AddScaledVec(w, tau*ex.Target, ex.X)
	}
	o.regularize(w, o.EffectiveRate())
	o.tick()
}

// Family implements Optimizer.
func (o *PassiveAggressive) Family() Family { return FamilyPassiveAggressive }
