// Package ovatrain configures and assembles multiclass online-learning
// trainers for linear classifiers trained incrementally over large,
// possibly imbalanced, labeled datasets.
//
// The library turns a set of hyperparameters into a concrete training run:
// which optimizer family, which regularization and learning-rate schedule,
// which per-class sampling policy, and how per-class binary models compose
// into one one-vs-all multiclass model.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/ovatrain/core/model"
//	    "github.com/YuminosukeSato/ovatrain/trainer"
//	)
//
//	func main() {
//	    cfg, err := trainer.ResolveOptions(map[string]string{
//	        "model":     "linear_svm",
//	        "optimizer": "elastic_net",
//	        "laplace":   "0.1",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    tr, err := trainer.New(cfg, []string{"pos", "neg"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    insts := []model.Instance{
//	        model.NewInstance("pos", []float64{1, 0}),
//	        model.NewInstance("neg", []float64{0, 1}),
//	    }
//	    m, err := tr.Train(context.Background(), model.SliceStream(insts))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    label, _ := m.Predict(insts[0].Features)
//	    fmt.Println(label)
//	}
//
// # Packages
//
//   - trainer: configuration resolution, validation, assembly, and the
//     small/large training strategies
//   - optimize: optimizer families (elastic_net, adagrad,
//     passive_aggressive, ftrl, mira) with shared regularization and
//     learning-rate schedule
//   - linear: per-class binary models (perceptron, linear_svm,
//     logistic_regression, mira) with gradient truncation
//   - multiclass: one-vs-all assembly, prediction, and serialization
//   - sampling: per-class sampling-probability policies
//   - metrics: accuracy and confusion-matrix evaluation
package ovatrain
