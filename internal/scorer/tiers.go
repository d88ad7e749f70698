package scorer

import "github.com/nao1215/sitegrade/internal/model"

// Size and load-time tier boundaries. Each bound is exclusive.
const (
	OptimizedSizeLimit = 50000
	ModerateSizeLimit  = 100000

	ExcellentLoadSeconds = 0.5
	GoodLoadSeconds      = 1.0
)

// tier is one range of a graduated metric.
type tier struct {
	below  float64
	points int
	status model.CheckStatus
	text   string
}

// metric is a graduated check awarding exactly one tier.
type metric struct {
	value    func(model.PageSample) float64
	tiers    []tier
	fallback tier
}

// pick returns the first tier whose bound exceeds v, or the fallback tier.
func (m metric) pick(v float64) tier {
	for _, t := range m.tiers {
		if v < t.below {
			return t
		}
	}
	return m.fallback
}

func (m metric) evaluate(sample model.PageSample) model.CheckResult {
	chosen := m.pick(m.value(sample))
	return model.CheckResult{
		Text:   chosen.text,
		Status: chosen.status,
		Points: chosen.points,
		Tiered: true,
	}
}

var sizeMetric = metric{
	value: func(s model.PageSample) float64 { return float64(s.ContentSize) },
	tiers: []tier{
		{below: OptimizedSizeLimit, points: 3, status: model.StatusPass, text: "Optimized HTML size"},
		{below: ModerateSizeLimit, points: 2, status: model.StatusWarn, text: "Moderate HTML size"},
	},
	fallback: tier{points: 1, status: model.StatusFail, text: "Large HTML size"},
}

var loadTimeMetric = metric{
	value: func(s model.PageSample) float64 { return s.LoadTimeSeconds() },
	tiers: []tier{
		{below: ExcellentLoadSeconds, points: 3, status: model.StatusPass, text: "Excellent load time"},
		{below: GoodLoadSeconds, points: 2, status: model.StatusPass, text: "Good load time"},
	},
	fallback: tier{points: 1, status: model.StatusWarn, text: "Slow load time"},
}

// SizeTierPoints returns the points awarded for a content size.
func SizeTierPoints(contentSize int) int {
	return sizeMetric.pick(float64(contentSize)).points
}

// LoadTimeTierPoints returns the points awarded for a load time in seconds.
func LoadTimeTierPoints(seconds float64) int {
	return loadTimeMetric.pick(seconds).points
}
