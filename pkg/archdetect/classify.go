package archdetect

import "strings"

// architectureTypes maps a pattern-name keyword to the overall label.
// Order matters: the first keyword found in the primary pattern wins.
var architectureTypes = []struct {
	Keyword string
	Label   string
}{
	{"Microservices", "Distributed Architecture"},
	{"Monorepo", "Monorepo Multi-Project"},
	{"Event-Driven", "Event-Driven / Reactive Architecture"},
	{"MVC", "Traditional MVC Architecture"},
	{"Feature-Based", "Feature-Based Modular Architecture"},
	{"Frontend Standard", "Frontend Application Structure"},
	{"Backend Standard", "Backend API Structure"},
	{"Simple Modular", "Simple Modular Structure"},
}

var domainCentric = []string{"Clean Architecture", "Hexagonal Architecture", "Domain-Driven Design"}

var complexPatterns = []string{"Clean Architecture", "DDD", "Hexagonal", "Microservices", "Event-Driven"}

var simplePatterns = []string{"Simple Modular", "Basic Layered", "Frontend Standard", "Backend Standard"}

// classifyArchitectureType derives the overall architecture label from
// the detected patterns. Domain-centric patterns take priority anywhere
// in the list, not just as the primary.
func classifyArchitectureType(patterns []DetectedPattern) string {
	if len(patterns) == 0 {
		return "Architecture not identified"
	}

	for _, p := range patterns {
		for _, dc := range domainCentric {
			if strings.Contains(p.Pattern, dc) {
				return "Domain-Centric Architecture"
			}
		}
	}

	primary := patterns[0].Pattern
	for _, at := range architectureTypes {
		if strings.Contains(primary, at.Keyword) {
			return at.Label
		}
	}

	for _, p := range patterns {
		if strings.Contains(p.Pattern, "Layered") {
			return "Layered Architecture"
		}
	}

	return "Custom/Mixed Architecture"
}

// assessComplexity rates the structural complexity of the project from
// the detected patterns and the primary pattern's confidence
func assessComplexity(patterns []DetectedPattern) string {
	if len(patterns) == 0 {
		return "Unknown"
	}

	primary := patterns[0]

	hasComplex := false
	for _, p := range patterns {
		for _, cp := range complexPatterns {
			if strings.Contains(p.Pattern, cp) {
				hasComplex = true
			}
		}
	}

	isSimple := false
	for _, sp := range simplePatterns {
		if strings.Contains(primary.Pattern, sp) {
			isSimple = true
		}
	}

	switch {
	case hasComplex && primary.Confidence > 0.7:
		return "High (Enterprise-level)"
	case hasComplex || len(patterns) >= 4:
		return "Medium-High (Structured)"
	case len(patterns) >= 2 && primary.Confidence > 0.6:
		return "Medium (Organized)"
	case isSimple:
		return "Low-Medium (Simple & Pragmatic)"
	default:
		return "Low (Basic)"
	}
}
