package errors

import (
	"strings"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("optimizer", "mira model requires mira optimizer", "elastic_net")

	var cfgErr *ConfigurationError
	if !As(err, &cfgErr) {
		t.Fatal("expected error chain to contain *ConfigurationError")
	}
	if cfgErr.Option != "optimizer" {
		t.Errorf("Option = %q, want %q", cfgErr.Option, "optimizer")
	}
	msg := err.Error()
	if !strings.Contains(msg, "mira model requires mira optimizer") {
		t.Errorf("message %q does not contain the reason", msg)
	}
	if !strings.Contains(msg, "elastic_net") {
		t.Errorf("message %q does not contain the value", msg)
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("/tmp/probs.txt", "spam0.5", "missing colon delimiter")

	var parseErr *ParseError
	if !As(err, &parseErr) {
		t.Fatal("expected error chain to contain *ParseError")
	}
	if parseErr.Source != "/tmp/probs.txt" {
		t.Errorf("Source = %q, want %q", parseErr.Source, "/tmp/probs.txt")
	}
	if !strings.Contains(err.Error(), "missing colon") {
		t.Errorf("message %q does not mention the reason", err.Error())
	}
}

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("MulticlassModel", "Predict")
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Fatal("expected error chain to contain *NotFittedError")
	}
	if nfErr.Method != "Predict" {
		t.Errorf("Method = %q, want Predict", nfErr.Method)
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("Update", 4, 7)
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("expected error chain to contain *DimensionError")
	}
	if dimErr.Expected != 4 || dimErr.Got != 7 {
		t.Errorf("Expected/Got = %d/%d, want 4/7", dimErr.Expected, dimErr.Got)
	}
}

func TestWarnUsesHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewUnknownCategoryWarning("ghost", "inline", 0.5)
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "ghost") {
		t.Errorf("warning %q does not name the label", captured.Error())
	}
}

func TestWarnPrefersZerologSink(t *testing.T) {
	handlerHits := 0
	sinkHits := 0
	SetWarningHandler(func(error) { handlerHits++ })
	SetZerologWarnFunc(func(error) { sinkHits++ })
	defer func() {
		SetWarningHandler(nil)
		SetZerologWarnFunc(nil)
	}()

	Warn(New("some warning"))

	if sinkHits != 1 {
		t.Errorf("zerolog sink hits = %d, want 1", sinkHits)
	}
	if handlerHits != 0 {
		t.Errorf("plain handler hits = %d, want 0", handlerHits)
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("rate", 0.5, 10); err != nil {
		t.Errorf("finite value reported unstable: %v", err)
	}

	err := CheckScalar("rate", nan(), 10)
	if err == nil {
		t.Fatal("NaN not detected")
	}
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("expected *NumericalInstabilityError")
	}
	if numErr.Example != 10 {
		t.Errorf("Example = %d, want 10", numErr.Example)
	}
}

func TestSafeExecuteRecoversPanic(t *testing.T) {
	err := SafeExecute("partition pass", func() error {
		panic("boom")
	})
	if err == nil {
		t.Fatal("panic was not converted to an error")
	}
	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("unexpected error type %T", err)
	}
	if panicErr.Operation != "partition pass" {
		t.Errorf("Operation = %q, want %q", panicErr.Operation, "partition pass")
	}
}

func nan() float64 {
	z := 0.0
	return z / z
}
