// Package sampling resolves per-class sampling probabilities. A policy maps
// category labels to the probability that an example of that class is kept
// during training; classes without an explicit entry are always kept.
package sampling

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/ovatrain/pkg/errors"
	"github.com/YuminosukeSato/ovatrain/pkg/log"
)

// Policy holds the resolved per-class keep probabilities. It is immutable
// after construction and safe for concurrent reads.
type Policy struct {
	probs map[string]float64
}

// NewPolicy builds a policy from an inline specification and an optional
// override file. Both sources use `label:probability` records, the inline
// form comma-separated and the file one record per line. File entries win
// over inline entries for the same label; labels absent from both default
// to probability 1.0.
//
// Labels outside the configured category set are kept in the policy but
// reported through the warning handler, so a typo in a probability list is
// visible without aborting a long training run.
func NewPolicy(categories []string, inline, file string) (*Policy, error) {
	p := &Policy{probs: make(map[string]float64)}

	if inline != "" {
		for _, record := range strings.Split(inline, ",") {
			label, prob, err := parseRecord("class_probs", record)
			if err != nil {
				return nil, err
			}
			p.probs[label] = prob
		}
	}
	if file != "" {
		if err := p.loadFile(file); err != nil {
			return nil, err
		}
	}

	known := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		known[cat] = struct{}{}
	}
	logger := log.GetLoggerWithName("sampling")
	for label, prob := range p.probs {
		if _, ok := known[label]; !ok {
			errors.Warn(&errors.UnknownCategoryWarning{Label: label, Source: "sampling policy", Prob: prob})
			logger.Warn("sampling probability for unconfigured category",
				log.CategoryKey, label,
				log.ProbabilityKey, prob)
		}
	}
	return p, nil
}

func (p *Policy) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening class probability file %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		label, prob, err := parseRecord(fmt.Sprintf("%s:%d", path, lineno), line)
		if err != nil {
			return err
		}
		p.probs[label] = prob
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading class probability file %s", path)
	}
	return nil
}

func parseRecord(source, record string) (string, float64, error) {
	record = strings.TrimSpace(record)
	idx := strings.LastIndex(record, ":")
	if idx < 0 {
		return "", 0, errors.NewParseError(source, record, "expected label:probability")
	}
	label := strings.TrimSpace(record[:idx])
	if label == "" {
		return "", 0, errors.NewParseError(source, record, "empty label")
	}
	prob, err := strconv.ParseFloat(strings.TrimSpace(record[idx+1:]), 64)
	if err != nil {
		return "", 0, errors.NewParseError(source, record, "probability is not a number")
	}
	if prob < 0 || prob > 1 {
		return "", 0, errors.NewValidationError("probability", "must be in [0, 1]", prob)
	}
	return label, prob, nil
}

// Resolve returns the keep probability for a label, defaulting to 1.0 for
// labels the policy has no entry for.
func (p *Policy) Resolve(label string) float64 {
	if prob, ok := p.probs[label]; ok {
		return prob
	}
	return 1.0
}

// Len returns the number of explicit entries.
func (p *Policy) Len() int { return len(p.probs) }
