package archdetect

import (
	"fmt"
	"sort"
	"strings"
)

const minConfidence = 0.3

// detectPatterns runs every detector over the pre-lowered search inputs
// and returns the findings sorted by confidence, highest first
func detectPatterns(dirsLower, filesLower []string, structStr string) []DetectedPattern {
	patterns := make([]DetectedPattern, 0)

	for _, cfg := range genericPatterns {
		if p := detectGeneric(cfg, dirsLower, filesLower); p != nil {
			patterns = append(patterns, *p)
		}
	}

	if p := detectRepository(filesLower, structStr); p != nil {
		patterns = append(patterns, *p)
	}
	if p := detectMicroservices(dirsLower, structStr); p != nil {
		patterns = append(patterns, *p)
	}
	if p := detectEventDriven(filesLower, structStr); p != nil {
		patterns = append(patterns, *p)
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})

	return patterns
}

// detectGeneric scores a pattern from directory weights plus a capped
// bonus for matching file keywords
func detectGeneric(cfg PatternConfig, dirsLower, filesLower []string) *DetectedPattern {
	var matchedDirs []string
	confidence := 0.0

	for _, dw := range cfg.DirWeights {
		if anyContains(dirsLower, dw.Keyword) {
			matchedDirs = append(matchedDirs, dw.Keyword)
			confidence += dw.Weight
		}
	}
	if len(matchedDirs) < cfg.MinDirMatches {
		return nil
	}

	evidence := []string{"Directories: " + strings.Join(matchedDirs, ", ")}

	if len(cfg.FileKeywords) > 0 {
		matchedFiles := 0
		for _, f := range filesLower {
			for _, kw := range cfg.FileKeywords {
				if strings.Contains(f, kw) {
					matchedFiles++
					break
				}
			}
		}
		if matchedFiles > 0 {
			confidence += min(float64(matchedFiles)*0.05, 0.2)
			evidence = append(evidence, fmt.Sprintf("Matching files: %d", matchedFiles))
		}
	}

	if confidence < cfg.Threshold {
		return nil
	}

	return &DetectedPattern{
		Pattern:     cfg.Name,
		Confidence:  min(confidence, 1.0),
		Evidence:    evidence,
		Description: cfg.Description,
	}
}

func detectRepository(filesLower []string, structStr string) *DetectedPattern {
	var evidence []string
	confidence := 0.0

	repoFiles := 0
	for _, f := range filesLower {
		if strings.Contains(f, "repository") {
			repoFiles++
		}
	}
	if repoFiles == 0 {
		return nil
	}

	confidence += 0.4
	if repoFiles >= 3 {
		confidence += 0.2
	}
	noun := "repository"
	if repoFiles > 1 {
		noun = "repositories"
	}
	evidence = append(evidence, fmt.Sprintf("%d %s found", repoFiles, noun))

	interfaceKeywords := []string{"irepository", "repository_interface", "repositoryinterface", "base_repository"}
	for _, f := range filesLower {
		if containsAny(f, interfaceKeywords) {
			confidence += 0.3
			evidence = append(evidence, "Repository interfaces/abstractions found")
			break
		}
	}

	if strings.Contains(structStr, "repositor") {
		confidence += 0.1
		evidence = append(evidence, "Organized repositories directory")
	}

	if confidence < minConfidence {
		return nil
	}
	return &DetectedPattern{
		Pattern:     repositoryPattern.Name,
		Confidence:  min(confidence, 1.0),
		Evidence:    evidence,
		Description: repositoryPattern.Description,
	}
}

func detectMicroservices(dirsLower []string, structStr string) *DetectedPattern {
	var evidence []string
	confidence := 0.0

	serviceDirs := 0
	for _, d := range dirsLower {
		if strings.Contains(d, "service") {
			serviceDirs++
		}
	}
	if serviceDirs >= 2 {
		confidence += 0.3
		if serviceDirs >= 3 {
			confidence += 0.2
		}
		evidence = append(evidence, fmt.Sprintf("%d services identified", serviceDirs))
	}

	containerTools := []string{"docker-compose", "dockerfile", "kubernetes", "k8s", ".dockerignore"}
	if containsAny(structStr, containerTools) {
		confidence += 0.3
		evidence = append(evidence, "Containerization configuration found")
	}

	for _, d := range dirsLower {
		if strings.Contains(d, "gateway") || strings.Contains(d, "proxy") {
			confidence += 0.2
			evidence = append(evidence, "API Gateway/Proxy detected")
			break
		}
	}

	if confidence < minConfidence {
		return nil
	}
	return &DetectedPattern{
		Pattern:     microservices.Name,
		Confidence:  min(confidence, 1.0),
		Evidence:    evidence,
		Description: microservices.Description,
	}
}

func detectEventDriven(filesLower []string, structStr string) *DetectedPattern {
	var evidence []string
	confidence := 0.0

	eventFiles := 0
	for _, f := range filesLower {
		if containsAny(f, eventDriven.FileKeywords) {
			eventFiles++
		}
	}
	if eventFiles == 0 {
		return nil
	}

	confidence += 0.3
	if eventFiles >= 3 {
		confidence += 0.2
	}
	evidence = append(evidence, fmt.Sprintf("%d event component(s) found", eventFiles))

	brokers := []string{"kafka", "rabbitmq", "redis", "pubsub", "queue", "eventbus", "messagebus"}
	var foundBrokers []string
	for _, b := range brokers {
		if strings.Contains(structStr, b) {
			foundBrokers = append(foundBrokers, b)
		}
	}
	if len(foundBrokers) > 0 {
		confidence += 0.3
		evidence = append(evidence, "Message brokers: "+strings.Join(foundBrokers, ", "))
	}

	if strings.Contains(structStr, "event") {
		confidence += 0.2
		evidence = append(evidence, "Event-oriented structure")
	}

	if confidence < minConfidence {
		return nil
	}
	return &DetectedPattern{
		Pattern:     eventDriven.Name,
		Confidence:  min(confidence, 1.0),
		Evidence:    evidence,
		Description: eventDriven.Description,
	}
}

// detectFrameworks matches framework indicator substrings against the
// combined structure and file-name text
func detectFrameworks(filesLower []string, structStr string) map[string][]string {
	combined := structStr + " " + strings.Join(filesLower, " ")

	result := map[string][]string{}
	for _, category := range frameworkCategories {
		var detected []string
		for _, fw := range category.Frameworks {
			if containsAny(combined, fw.Indicators) {
				detected = append(detected, fw.Name)
			}
		}
		if len(detected) > 0 {
			result[category.Name] = detected
		}
	}
	return result
}

// buildRecommendations assembles advice for the detected patterns,
// deduplicated preserving order and never empty
func buildRecommendations(patterns []DetectedPattern) []string {
	if len(patterns) == 0 {
		return []string{
			"✓ Consider adopting a clear architectural pattern to ease maintenance",
			"✓ Organize code into directories such as src/, utils/, config/",
		}
	}

	var recommendations []string
	primary := patterns[0]

	if primary.Confidence < 0.5 {
		recommendations = append(recommendations, fmt.Sprintf(
			"⚠ Pattern '%s' detected with moderate confidence (%.0f%%). Consider reinforcing the structure.",
			primary.Pattern, primary.Confidence*100))
	} else if primary.Confidence >= 0.8 {
		recommendations = append(recommendations, fmt.Sprintf("✓ Well-defined architecture (%s)", primary.Pattern))
	}

	if len(patterns) > 4 {
		recommendations = append(recommendations,
			"⚠ Multiple patterns detected. Consider consolidating to avoid complexity.")
	}

	for _, pr := range patternRecommendations {
		for _, p := range patterns {
			if strings.Contains(p.Pattern, pr.Keyword) {
				recommendations = append(recommendations, pr.Recs...)
				break
			}
		}
	}

	hasTestPattern := false
	for _, p := range patterns {
		if strings.Contains(strings.ToLower(p.Pattern), "test") {
			hasTestPattern = true
			break
		}
	}
	if !hasTestPattern {
		recommendations = append(recommendations,
			"⚠ Consider adding a tests directory (tests/, __tests__/)")
	}

	deduped := dedupe(recommendations)
	if len(deduped) == 0 {
		return []string{"✓ Well-structured architecture"}
	}
	return deduped
}

func dedupe(values []string) []string {
	seen := map[string]bool{}
	var result []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

func anyContains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
