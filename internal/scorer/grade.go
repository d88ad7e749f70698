package scorer

import "github.com/nao1215/sitegrade/internal/model"

// gradeBand maps a minimum total score to a grade.
type gradeBand struct {
	min         int
	grade       model.Grade
	description string
}

// gradeBands is ordered from the highest threshold down.
// Each threshold is inclusive.
var gradeBands = []gradeBand{
	{min: 95, grade: model.GradeAPlus, description: "EXCEPTIONAL - Industry-leading quality"},
	{min: 90, grade: model.GradeA, description: "EXCELLENT - Professional excellence"},
	{min: 85, grade: model.GradeAMinus, description: "VERY GOOD - High professional standard"},
	{min: 80, grade: model.GradeBPlus, description: "GOOD - Solid professional quality"},
	{min: 75, grade: model.GradeB, description: "ABOVE AVERAGE - Good foundation"},
}

var lowestBand = gradeBand{grade: model.GradeCPlus, description: "NEEDS IMPROVEMENT"}

// GradeFor returns the grade and its description for a total score.
func GradeFor(total int) (model.Grade, string) {
	for _, b := range gradeBands {
		if total >= b.min {
			return b.grade, b.description
		}
	}
	return lowestBand.grade, lowestBand.description
}

// Recommendation band thresholds, inclusive.
const (
	productionReadyScore = 90
	solidFoundationScore = 80
)

// Recommendations returns the three messages of the band the score falls in.
func Recommendations(total int) []string {
	switch {
	case total >= productionReadyScore:
		return []string{
			"✅ Your website is production-ready and impressive!",
			"✅ Perfect for job applications and professional networking",
			"✅ Demonstrates excellent technical and design skills",
		}
	case total >= solidFoundationScore:
		return []string{
			"✅ Strong foundation with room for minor improvements",
			"🔄 Consider adding more interactive elements",
			"🔄 Enhance accessibility features",
		}
	default:
		return []string{
			"🔄 Focus on technical improvements first",
			"🔄 Enhance user experience elements",
			"🔄 Improve content organization",
		}
	}
}

// standout is the line emitted when a category reaches its threshold.
type standout struct {
	threshold int
	text      string
}

var standouts = map[model.CategoryName]standout{
	model.CategoryTechnical:    {threshold: 18, text: "Exceptional technical implementation"},
	model.CategoryPerformance:  {threshold: 18, text: "Outstanding performance optimization"},
	model.CategoryUX:           {threshold: 16, text: "Excellent user experience design"},
	model.CategoryContent:      {threshold: 16, text: "Comprehensive professional content"},
	model.CategoryPresentation: {threshold: 18, text: "Professional visual presentation"},
}

// StandoutFeatures returns one line for every category whose capped score
// meets its threshold, in category order.
func StandoutFeatures(categories []model.CategoryScore) []string {
	features := make([]string, 0, len(categories))
	for _, c := range categories {
		s, ok := standouts[c.Name]
		if !ok {
			continue
		}
		if c.CappedPoints >= s.threshold {
			features = append(features, s.text)
		}
	}
	return features
}
