package model

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchKind selects how a Condition pattern is searched for in page content.
type MatchKind string

const (
	// MatchSubstring is a case-sensitive substring test.
	MatchSubstring MatchKind = "substring"

	// MatchSubstringFold is a case-insensitive substring test.
	MatchSubstringFold MatchKind = "substring_fold"

	// MatchRegex is a regular expression search.
	MatchRegex MatchKind = "regex"
)

// Valid reports whether k is a known match kind.
// The empty kind is valid and means MatchSubstring.
func (k MatchKind) Valid() bool {
	switch k {
	case "", MatchSubstring, MatchSubstringFold, MatchRegex:
		return true
	default:
		return false
	}
}

// Condition is one pattern that must be present in the page content.
type Condition struct {
	// Pattern is the literal substring or regular expression.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Match selects the search mode. Empty means MatchSubstring.
	Match MatchKind `yaml:"match,omitempty" json:"match,omitempty"`
}

// CheckRule awards Weight points when all of its conditions are present.
//
// A rule normally has a single condition given inline by Pattern and Match.
// Compound rules list their conditions in All instead, and every one of
// them must match.
type CheckRule struct {
	// Label names the checked feature, e.g. "Lazy Loading".
	Label string `yaml:"label" json:"label"`

	Condition `yaml:",inline"`

	// All holds the conditions of a compound rule.
	All []Condition `yaml:"all,omitempty" json:"all,omitempty"`

	// Weight is the number of points awarded when the rule matches.
	Weight int `yaml:"weight" json:"weight"`

	// Missing overrides the line reported when the rule does not match.
	// Empty means "Missing <Label>".
	Missing string `yaml:"missing,omitempty" json:"missing,omitempty"`
}

// Conditions returns the conditions that must all match.
func (r CheckRule) Conditions() []Condition {
	if len(r.All) > 0 {
		return r.All
	}
	return []Condition{r.Condition}
}

// MissingText returns the line used when the rule is not satisfied.
func (r CheckRule) MissingText() string {
	if r.Missing != "" {
		return r.Missing
	}
	return "Missing " + r.Label
}

// Validate checks that the rule can be evaluated.
func (r CheckRule) Validate() error {
	if strings.TrimSpace(r.Label) == "" {
		return fmt.Errorf("%w: rule label is empty", ErrInvalidRule)
	}
	if r.Weight < 0 {
		return fmt.Errorf("%w: rule %q has negative weight %d", ErrInvalidRule, r.Label, r.Weight)
	}
	if len(r.All) > 0 && r.Pattern != "" {
		return fmt.Errorf("%w: rule %q sets both pattern and all", ErrInvalidRule, r.Label)
	}
	for _, c := range r.Conditions() {
		if c.Pattern == "" {
			return fmt.Errorf("%w: rule %q has an empty pattern", ErrInvalidRule, r.Label)
		}
		if !c.Match.Valid() {
			return fmt.Errorf("%w: rule %q has unknown match kind %q", ErrInvalidRule, r.Label, c.Match)
		}
		if c.Match == MatchRegex {
			if _, err := regexp.Compile(c.Pattern); err != nil {
				return fmt.Errorf("%w: rule %q: %w", ErrInvalidRule, r.Label, err)
			}
		}
	}
	return nil
}

// Contains returns a case-sensitive substring rule.
func Contains(label, pattern string, weight int) CheckRule {
	return CheckRule{Label: label, Condition: Condition{Pattern: pattern, Match: MatchSubstring}, Weight: weight}
}

// ContainsFold returns a case-insensitive substring rule.
func ContainsFold(label, pattern string, weight int) CheckRule {
	return CheckRule{Label: label, Condition: Condition{Pattern: pattern, Match: MatchSubstringFold}, Weight: weight}
}

// Regex returns a regular expression rule.
func Regex(label, pattern string, weight int) CheckRule {
	return CheckRule{Label: label, Condition: Condition{Pattern: pattern, Match: MatchRegex}, Weight: weight}
}

// AllOf returns a compound rule that matches only when every condition does.
func AllOf(label string, weight int, conditions ...Condition) CheckRule {
	return CheckRule{Label: label, All: conditions, Weight: weight}
}

// WithMissing returns a copy of r with a custom unsatisfied line.
func (r CheckRule) WithMissing(text string) CheckRule {
	r.Missing = text
	return r
}
