package model

import "fmt"

// RuleSet holds the presence rules of every category.
// The graduated size and load-time metrics are not part of the rule set;
// they are always evaluated in the performance category.
type RuleSet struct {
	Technical    []CheckRule `yaml:"technical,omitempty" json:"technical,omitempty"`
	Performance  []CheckRule `yaml:"performance,omitempty" json:"performance,omitempty"`
	UX           []CheckRule `yaml:"ux,omitempty" json:"ux,omitempty"`
	Content      []CheckRule `yaml:"content,omitempty" json:"content,omitempty"`
	Presentation []CheckRule `yaml:"presentation,omitempty" json:"presentation,omitempty"`
}

// Rules returns the rule list of the named category.
func (rs RuleSet) Rules(name CategoryName) []CheckRule {
	switch name {
	case CategoryTechnical:
		return rs.Technical
	case CategoryPerformance:
		return rs.Performance
	case CategoryUX:
		return rs.UX
	case CategoryContent:
		return rs.Content
	case CategoryPresentation:
		return rs.Presentation
	default:
		return nil
	}
}

// Override returns a copy of rs in which every non-empty category of
// override replaces the corresponding list.
func (rs RuleSet) Override(override RuleSet) RuleSet {
	result := rs
	if len(override.Technical) > 0 {
		result.Technical = override.Technical
	}
	if len(override.Performance) > 0 {
		result.Performance = override.Performance
	}
	if len(override.UX) > 0 {
		result.UX = override.UX
	}
	if len(override.Content) > 0 {
		result.Content = override.Content
	}
	if len(override.Presentation) > 0 {
		result.Presentation = override.Presentation
	}
	return result
}

// IsEmpty reports whether no category has any rule.
func (rs RuleSet) IsEmpty() bool {
	for _, name := range Categories() {
		if len(rs.Rules(name)) > 0 {
			return false
		}
	}
	return true
}

// Validate checks every rule of every category.
func (rs RuleSet) Validate() error {
	for _, name := range Categories() {
		for _, r := range rs.Rules(name) {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}
