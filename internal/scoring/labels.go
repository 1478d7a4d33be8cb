package scoring

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultPositiveLabels earn full points on binary criteria.
var DefaultPositiveLabels = []string{
	"yes",
	"provided",
	"discussed",
	"completed",
	"arranged",
	"done",
	"true",
}

// LabelSet matches binary answers ignoring case, surrounding whitespace and
// Unicode composition differences.
type LabelSet struct {
	positive map[string]struct{}
}

// NewLabelSet returns the default labels plus any extras a catalog declares.
func NewLabelSet(extra []string) LabelSet {
	set := LabelSet{positive: make(map[string]struct{}, len(DefaultPositiveLabels)+len(extra))}
	for _, l := range DefaultPositiveLabels {
		set.positive[fold(l)] = struct{}{}
	}
	for _, l := range extra {
		if k := fold(l); k != "" {
			set.positive[k] = struct{}{}
		}
	}
	return set
}

// Positive reports whether the option is a positive label.
func (s LabelSet) Positive(option string) bool {
	_, ok := s.positive[fold(option)]
	return ok
}

func fold(s string) string {
	// cases.Caser is stateful; build one per call.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
