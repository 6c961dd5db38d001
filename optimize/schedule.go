package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// schedule holds the state shared by every optimizer family: the immutable
// parameters, and the examples-seen counter that drives learning-rate decay.
// Epochs are continuous, not integer: half an epoch has elapsed after half
// of ExamplesPerEpoch examples.
type schedule struct {
	params   Params
	examples int64
}

func newSchedule(p Params) schedule {
	return schedule{params: p}
}

// tick records that one example has been consumed. Called at the end of
// every ApplyUpdate so the rate used for an update reflects the epoch
// before that example.
func (s *schedule) tick() {
	s.examples++
}

// Epoch returns the continuous epoch count.
func (s *schedule) Epoch() float64 {
	return float64(s.examples) / s.params.ExamplesPerEpoch
}

// ExamplesSeen returns the number of updates applied so far.
func (s *schedule) ExamplesSeen() int64 {
	return s.examples
}

// EffectiveRate returns the learning rate at the current epoch: either the
// exponential schedule InitialRate * DecayBase^epoch, or the inverse
// schedule InitialRate / (1 + epoch).
func (s *schedule) EffectiveRate() float64 {
	epoch := s.Epoch()
	if s.params.ExponentialDecay {
		return s.params.InitialRate * math.Pow(s.params.DecayBase, epoch)
	}
	return s.params.InitialRate / (1.0 + epoch)
}

// regularize applies one step of L2 shrink followed by L1 soft-thresholding
// to w, scaled by the given rate.
func (s *schedule) regularize(w *mat.VecDense, rate float64) {
	gauss := s.params.Gauss
	laplace := s.params.Laplace
	if gauss == 0 && laplace == 0 {
		return
	}

	shrink := 1.0 - rate*gauss
	if shrink < 0 {
		shrink = 0
	}
	clip := rate * laplace

	raw := w.RawVector()
	for i := 0; i < raw.N; i++ {
		v := raw.Data[i*raw.Inc] * shrink
		switch {
		case v > clip:
			v -= clip
		case v < -clip:
			v += clip
		default:
			v = 0
		}
		raw.Data[i*raw.Inc] = v
	}
}
