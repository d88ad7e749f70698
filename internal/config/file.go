package config

import "github.com/nao1215/sitegrade/internal/model"

// File represents the structure of the .sitegrade configuration file.
//
// Example:
//
//	rules:
//	  content:
//	    - label: Blog
//	      pattern: blog
//	      match: substring_fold
//	      weight: 4
//	    - label: Hero section
//	      all:
//	        - pattern: "<header"
//	        - pattern: hero
//	          match: substring_fold
//	      weight: 3
type File struct {
	// Rules replaces the built-in rule list of every category it names.
	// Categories left out keep their built-in rules.
	Rules model.RuleSet `yaml:"rules,omitempty"`
}

// ApplyTo returns base with the categories of the file replaced.
// A nil File, or one without rules, returns base unchanged.
func (cf *File) ApplyTo(base model.RuleSet) model.RuleSet {
	if cf == nil || cf.Rules.IsEmpty() {
		return base
	}
	return base.Override(cf.Rules)
}
