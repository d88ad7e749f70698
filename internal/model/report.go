package model

import "time"

// Grade is the letter grade derived from the total score.
type Grade string

// Letter grades from best to worst.
const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeCPlus  Grade = "C+"
)

// Report is the result of evaluating one page.
// It is assembled by the scorer and not modified afterwards.
type Report struct {
	// URL is the evaluated address.
	URL string `json:"url"`

	// Title is the page title, if any.
	Title string `json:"title,omitempty"`

	// ContentSize is the evaluated content size in characters.
	ContentSize int `json:"content_size"`

	// LoadTime is the measured load time.
	LoadTime time.Duration `json:"load_time"`

	// EvaluatedAt is when the page was fetched.
	EvaluatedAt time.Time `json:"evaluated_at"`

	// Categories holds the five category scores in report order.
	Categories []CategoryScore `json:"categories"`

	// TotalScore is the sum of all capped category points (0-100).
	TotalScore int `json:"total_score"`

	// Grade is the letter grade for TotalScore.
	Grade Grade `json:"grade"`

	// Description is the one-line assessment attached to Grade.
	Description string `json:"description"`

	// Recommendations are the three messages of the score band.
	Recommendations []string `json:"recommendations"`

	// StandoutFeatures lists one line per category above its threshold.
	StandoutFeatures []string `json:"standout_features"`
}

// Percentage returns the total score as a percentage of MaxTotalScore.
func (r *Report) Percentage() float64 {
	return float64(r.TotalScore) / float64(MaxTotalScore) * 100
}

// Category returns the score of the named category.
func (r *Report) Category(name CategoryName) (CategoryScore, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryScore{}, false
}

// Scores returns the capped points keyed by category name.
func (r *Report) Scores() map[CategoryName]int {
	scores := make(map[CategoryName]int, len(r.Categories))
	for _, c := range r.Categories {
		scores[c.Name] = c.CappedPoints
	}
	return scores
}
