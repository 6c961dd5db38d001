package optimize

import (
	"gonum.org/v1/gonum/mat"
)

// MIRA is the margin infused relaxed algorithm: on a margin violation the
// weights take the smallest step that restores a unit margin. Unlike the
// gradient-descent families it has no learning rate of its own, though the
// schedule still tracks examples seen.
type MIRA struct {
	schedule
}

func newMIRA(p Params) *MIRA {
	return &MIRA{schedule: newSchedule(p)}
}

// ApplyUpdate moves w by (loss / ||x||^2)·target·x on a margin violation.
func (o *MIRA) ApplyUpdate(w *mat.VecDense, ex Example) {
	margin := ex.Target * ex.Score
	if margin < 1 {
		loss := 1 - margin
		xx := mat.Dot(ex.X, ex.X)
		if xx > 0 {
			w.AddScaledVec(w, (loss/xx)*ex.Target, ex.X)
		}
	}
	o.tick()
}

// Family implements Optimizer.
func (o *MIRA) Family() Family { return FamilyMIRA }
