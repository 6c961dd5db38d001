package model

import "gonum.org/v1/gonum/mat"

// Instance is a single labeled training example. The label is an opaque
// class name from the trainer's fixed category set; the feature vector is
// read-only from the trainer's point of view.
type Instance struct {
	Label    string
	Features mat.Vector
}

// NewInstance builds an Instance from a raw feature slice. The slice is
// copied so the caller may reuse its buffer.
func NewInstance(label string, features []float64) Instance {
	return Instance{
		Label:    label,
		Features: mat.NewVecDense(len(features), append([]float64(nil), features...)),
	}
}

// SliceStream turns a materialized instance slice into the channel form the
// training entry points consume. The channel is closed after the last
// instance.
func SliceStream(instances []Instance) <-chan Instance {
	ch := make(chan Instance, len(instances))
	for _, inst := range instances {
		ch <- inst
	}
	close(ch)
	return ch
}
