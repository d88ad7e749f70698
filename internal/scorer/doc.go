// Package scorer turns a fetched page into a graded Report.
//
// Every category is a fixed list of weighted presence rules. A rule awards
// its weight when all of its patterns occur in the page content. The
// performance category also evaluates two graduated metrics, HTML size and
// load time, each awarding exactly one of three tiers. Category totals are
// capped at 20 points and summed into a score out of 100, which selects the
// letter grade, the recommendation band and the standout features.
//
// # Usage
//
//	report := scorer.Evaluate(sample)
//
//	// With a replaced rule table
//	s, err := scorer.New(scorer.DefaultRules().Override(custom))
//	if err != nil {
//	    return err
//	}
//	report = s.Evaluate(sample)
package scorer
