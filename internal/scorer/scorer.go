package scorer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/sitegrade/internal/model"
)

// Scorer evaluates pages against a compiled rule table.
// A Scorer holds no mutable state and is safe for concurrent use.
type Scorer struct {
	categories []category
}

// category is the compiled form of one category's checks.
type category struct {
	name    model.CategoryName
	metrics []metric
	rules   []compiledRule
}

// compiledRule pairs a rule with its ready-to-run matchers.
type compiledRule struct {
	rule     model.CheckRule
	matchers []matcher
}

// matcher reports whether a condition is present. folded is the
// lower-cased content, computed once per evaluation.
type matcher func(content, folded string) bool

// defaultScorer uses the built-in rules, which are known to compile.
var defaultScorer = MustNew(DefaultRules())

// New compiles rules into a Scorer.
// It returns an error if any rule is invalid, including regular
// expressions that do not compile.
func New(rules model.RuleSet) (*Scorer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	s := &Scorer{categories: make([]category, 0, len(model.Categories()))}
	for _, name := range model.Categories() {
		c := category{name: name}
		if name == model.CategoryPerformance {
			c.metrics = []metric{sizeMetric, loadTimeMetric}
		}

		for _, r := range rules.Rules(name) {
			compiled, err := compileRule(r)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			c.rules = append(c.rules, compiled)
		}
		s.categories = append(s.categories, c)
	}
	return s, nil
}

// MustNew is like New but panics if the rules do not compile.
func MustNew(rules model.RuleSet) *Scorer {
	s, err := New(rules)
	if err != nil {
		panic(err)
	}
	return s
}

// Evaluate scores sample with the built-in rule table.
func Evaluate(sample model.PageSample) model.Report {
	return defaultScorer.Evaluate(sample)
}

// Evaluate scores sample and returns the finished report.
func (s *Scorer) Evaluate(sample model.PageSample) model.Report {
	folded := strings.ToLower(sample.Content)

	categories := make([]model.CategoryScore, 0, len(s.categories))
	total := 0
	for _, c := range s.categories {
		score := c.evaluate(sample, folded)
		total += score.CappedPoints
		categories = append(categories, score)
	}

	grade, description := GradeFor(total)

	return model.Report{
		URL:              sample.URL,
		Title:            sample.Title,
		ContentSize:      sample.ContentSize,
		LoadTime:         sample.LoadTime,
		EvaluatedAt:      sample.FetchedAt,
		Categories:       categories,
		TotalScore:       total,
		Grade:            grade,
		Description:      description,
		Recommendations:  Recommendations(total),
		StandoutFeatures: StandoutFeatures(categories),
	}
}

// evaluate runs the graduated metrics first and then the presence rules.
func (c category) evaluate(sample model.PageSample, folded string) model.CategoryScore {
	checks := make([]model.CheckResult, 0, len(c.metrics)+len(c.rules))
	for _, m := range c.metrics {
		checks = append(checks, m.evaluate(sample))
	}
	for _, r := range c.rules {
		checks = append(checks, r.evaluate(sample.Content, folded))
	}
	return model.NewCategoryScore(c.name, checks)
}

func (r compiledRule) evaluate(content, folded string) model.CheckResult {
	for _, m := range r.matchers {
		if !m(content, folded) {
			return model.CheckResult{
				Text:   r.rule.MissingText(),
				Status: model.StatusFail,
			}
		}
	}
	return model.CheckResult{
		Text:   r.rule.Label,
		Status: model.StatusPass,
		Points: r.rule.Weight,
	}
}

func compileRule(r model.CheckRule) (compiledRule, error) {
	conditions := r.Conditions()
	compiled := compiledRule{
		rule:     r,
		matchers: make([]matcher, 0, len(conditions)),
	}
	for _, cond := range conditions {
		m, err := compileCondition(cond)
		if err != nil {
			return compiledRule{}, fmt.Errorf("rule %q: %w", r.Label, err)
		}
		compiled.matchers = append(compiled.matchers, m)
	}
	return compiled, nil
}

func compileCondition(cond model.Condition) (matcher, error) {
	switch cond.Match {
	case "", model.MatchSubstring:
		pattern := cond.Pattern
		return func(content, _ string) bool {
			return strings.Contains(content, pattern)
		}, nil
	case model.MatchSubstringFold:
		pattern := strings.ToLower(cond.Pattern)
		return func(_, folded string) bool {
			return strings.Contains(folded, pattern)
		}, nil
	case model.MatchRegex:
		re, err := regexp.Compile(cond.Pattern)
		if err != nil {
			return nil, err
		}
		return func(content, _ string) bool {
			return re.MatchString(content)
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown match kind %q", model.ErrInvalidRule, cond.Match)
	}
}
