package model

// CategoryName identifies one of the five scoring categories.
type CategoryName string

// Scoring categories in report order.
const (
	CategoryTechnical    CategoryName = "technical"
	CategoryPerformance  CategoryName = "performance"
	CategoryUX           CategoryName = "ux"
	CategoryContent      CategoryName = "content"
	CategoryPresentation CategoryName = "presentation"
)

// MaxCategoryPoints is the ceiling applied to every category's raw total.
const MaxCategoryPoints = 20

// MaxTotalScore is the highest possible total score.
const MaxTotalScore = MaxCategoryPoints * 5

// Categories returns all category names in report order.
func Categories() []CategoryName {
	return []CategoryName{
		CategoryTechnical,
		CategoryPerformance,
		CategoryUX,
		CategoryContent,
		CategoryPresentation,
	}
}

// Title returns the heading used for the category in reports.
func (c CategoryName) Title() string {
	switch c {
	case CategoryTechnical:
		return "Technical Excellence"
	case CategoryPerformance:
		return "Performance"
	case CategoryUX:
		return "User Experience"
	case CategoryContent:
		return "Content Quality"
	case CategoryPresentation:
		return "Presentation"
	default:
		return string(c)
	}
}

// CheckStatus is the outcome of a single check line.
type CheckStatus int

const (
	// StatusFail means the check awarded nothing, or the lowest tier.
	StatusFail CheckStatus = iota

	// StatusWarn means a graduated metric landed in a middle or low tier.
	StatusWarn

	// StatusPass means the check was satisfied.
	StatusPass
)

// String returns a human-readable representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CheckStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "PASS":
		*s = StatusPass
	case "WARN":
		*s = StatusWarn
	default:
		*s = StatusFail
	}
	return nil
}

// CheckResult records the outcome of one rule or graduated metric.
type CheckResult struct {
	// Text is the line describing the outcome, e.g. "Lazy Loading" or
	// "Missing Lazy Loading".
	Text string `json:"text"`

	// Status is the outcome of the check.
	Status CheckStatus `json:"status"`

	// Points is the number of points awarded by this check.
	Points int `json:"points"`

	// Tiered is true for graduated metrics, which always award points.
	Tiered bool `json:"tiered,omitempty"`
}

// Satisfied reports whether the check awarded its points as a presence match.
// Graduated metrics are never reported as satisfied rules.
func (r CheckResult) Satisfied() bool {
	return !r.Tiered && r.Status == StatusPass
}

// CategoryScore holds the points of one category.
type CategoryScore struct {
	// Name is the category identifier.
	Name CategoryName `json:"name"`

	// RawPoints is the sum of all awarded points before capping.
	RawPoints int `json:"raw_points"`

	// CappedPoints is min(RawPoints, MaxCategoryPoints).
	CappedPoints int `json:"capped_points"`

	// Checks lists every check in evaluation order.
	Checks []CheckResult `json:"checks"`
}

// NewCategoryScore sums the awarded points of checks and applies the cap.
func NewCategoryScore(name CategoryName, checks []CheckResult) CategoryScore {
	raw := 0
	for _, c := range checks {
		raw += c.Points
	}
	return CategoryScore{
		Name:         name,
		RawPoints:    raw,
		CappedPoints: CapPoints(raw),
		Checks:       checks,
	}
}

// CapPoints clamps raw points to the range [0, MaxCategoryPoints].
func CapPoints(raw int) int {
	if raw < 0 {
		return 0
	}
	return min(raw, MaxCategoryPoints)
}
