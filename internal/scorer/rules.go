package scorer

import "github.com/nao1215/sitegrade/internal/model"

// DefaultRules returns the built-in rule table.
//
// Several content and presentation rules look for literals of one
// particular portfolio page ("Engineering Manager", "vinted-green",
// "profile-photo"). They are defaults only and can be replaced per
// category through the configuration file.
func DefaultRules() model.RuleSet {
	return model.RuleSet{
		Technical:    technicalRules(),
		Performance:  performanceRules(),
		UX:           uxRules(),
		Content:      contentRules(),
		Presentation: presentationRules(),
	}
}

func technicalRules() []model.CheckRule {
	return []model.CheckRule{
		model.AllOf("HTML5 semantic structure", 2,
			model.Condition{Pattern: "<!DOCTYPE html>", Match: model.MatchSubstring},
			model.Condition{Pattern: "semantic", Match: model.MatchSubstringFold},
		),

		// Meta tags
		model.Contains("viewport meta tags", "viewport", 1),
		model.Contains("description meta tags", "description", 1),
		model.Contains("Open Graph meta tags", "og:", 1),
		model.Contains("charset meta tags", "charset", 1),

		// PWA features
		model.Contains("Service Worker", "serviceWorker", 2),
		model.Contains("Web Manifest", "manifest.json", 2),
		model.Contains("Theme Color", "theme-color", 2),

		// Modern JavaScript
		model.Contains("ES6+ Features", "const ", 1),
		model.Contains("Async/Await", "async", 1),
		model.Contains("Error Handling", "try {", 1),
		model.Contains("Event Listeners", "addEventListener", 1),
	}
}

func performanceRules() []model.CheckRule {
	return []model.CheckRule{
		model.Contains("Lazy Loading", `loading="lazy"`, 2),
		model.Contains("Image Optimization", "<picture>", 2),
		model.Contains("DNS Prefetch", "dns-prefetch", 2),
		model.Contains("Async Scripts", "defer", 2),
		model.Contains("Performance Monitoring", "PerformanceTracker", 2),
	}
}

func uxRules() []model.CheckRule {
	return []model.CheckRule{
		model.AllOf("Responsive design (Tailwind)", 3,
			model.Condition{Pattern: "md:", Match: model.MatchSubstring},
			model.Condition{Pattern: "tailwind", Match: model.MatchSubstringFold},
		).WithMissing("Missing responsive design"),

		// Accessibility
		model.Contains("Alt text", "alt=", 2),
		model.Contains("ARIA labels", "aria-", 2),
		model.Contains("Focus management", "focus", 2),
		model.Contains("Semantic HTML", "<section>", 2),
		model.Contains("Keyboard navigation", "keydown", 2),

		// Interactive features
		model.Contains("Theme Toggle", "toggleTheme", 1),
		model.Contains("Smooth Scrolling", "smooth", 1),
		model.Contains("Modal/Popup", "modal", 1),
		model.Contains("Mobile Menu", "mobile-menu", 1),
		model.Contains("Chart Animations", "Chart", 1),
	}
}

func contentRules() []model.CheckRule {
	return []model.CheckRule{
		model.ContainsFold("Professional Title", "Engineering Manager", 2),
		model.ContainsFold("Skills Section", "skills", 2),
		model.ContainsFold("Experience/Journey", "journey", 2),
		model.ContainsFold("Education", "education", 2),
		model.ContainsFold("Contact Information", "contact", 2),
		model.ContainsFold("PDF Download", "pdf", 2),
		model.ContainsFold("Languages", "languages", 2),
		model.ContainsFold("Professional Summary", "years of experience", 2),

		// Content organization
		model.ContainsFold("Organized timeline/journey", "timeline", 2).
			WithMissing("Missing organized timeline"),
		model.ContainsFold("Visual skill representation", "chart", 2).
			WithMissing("Missing visual elements"),
	}
}

func presentationRules() []model.CheckRule {
	return []model.CheckRule{
		model.Regex("Professional Color Scheme", `vinted-green`, 2),
		model.Regex("Typography", `font-`, 2),
		model.Regex("Visual Hierarchy", `text-4xl`, 2),
		model.Regex("Consistent Spacing", `py-`, 2),
		model.Regex("Professional Layout", `grid\|flex`, 2),

		model.Contains("Professional photo", "profile-photo", 3).
			WithMissing("Missing professional photo"),
		model.Contains("Theme customization", "data-theme", 3).
			WithMissing("Missing theme options"),
		model.Contains("Visual depth/shadows", "shadow", 2).
			WithMissing("Missing visual depth"),
	}
}
