// Package qualitycheck scores code quality across five weighted
// categories: documentation, testing, naming conventions, complexity and
// best practices. It returns a graded report with recommendations and a
// docstring spelling diagnostic.
package qualitycheck

import (
	"context"
	"fmt"
	"math"

	"github.com/Mustasheep/nawi-agent/pkg/tool"
	"github.com/mark3labs/mcp-go/server"
)

// Category weights for the overall score
const (
	documentationWeight = 0.25
	testingWeight       = 0.30
	namingWeight        = 0.15
	complexityWeight    = 0.15
	bestPracticesWeight = 0.15
)

// Checker implements the quality_checker tool
type Checker struct{}

func (c *Checker) Name() string {
	return "quality_checker"
}

func (c *Checker) Description() string {
	return "Checks code quality. Analyzes documentation, test coverage, naming conventions, " +
		"complexity, code smells and best practices. " +
		"Returns a quality score and improvement recommendations."
}

func (c *Checker) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"files": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path":     map[string]interface{}{"type": "string"},
						"content":  map[string]interface{}{"type": "string"},
						"language": map[string]interface{}{"type": "string"},
					},
				},
				"description": "List of files to analyze",
			},
		},
		"required": []string{"files"},
	}
}

func (c *Checker) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	files, err := parseFiles(args["files"])
	if err != nil {
		return nil, err
	}

	scores := DetailedScores{
		Documentation:     checkDocumentation(files),
		Testing:           checkTesting(files),
		NamingConventions: checkNaming(files),
		CodeComplexity:    checkComplexity(files),
		BestPractices:     checkBestPractices(files),
	}

	overall := overallScore(scores)
	recommendations := generateRecommendations(scores)

	return &QualityReport{
		OverallQualityScore: overall,
		QualityGrade:        grade(overall),
		DetailedScores:      scores,
		Recommendations:     recommendations,
		Summary:             summary(overall, recommendations),
		Spelling:            checkSpelling(files),
	}, nil
}

func parseFiles(raw interface{}) ([]SourceFile, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("files must be an array")
	}

	files := make([]SourceFile, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("each file must be an object")
		}
		path, _ := entry["path"].(string)
		content, _ := entry["content"].(string)
		language, _ := entry["language"].(string)
		files = append(files, SourceFile{Path: path, Content: content, Language: language})
	}
	return files, nil
}

func overallScore(scores DetailedScores) float64 {
	total := scores.Documentation.Score*documentationWeight +
		scores.Testing.Score*testingWeight +
		scores.NamingConventions.Score*namingWeight +
		scores.CodeComplexity.Score*complexityWeight +
		scores.BestPractices.Score*bestPracticesWeight
	return math.Round(total*100) / 100
}

func grade(score float64) string {
	switch {
	case score >= 90:
		return "A (Excellent)"
	case score >= 80:
		return "B (Good)"
	case score >= 70:
		return "C (Fair)"
	case score >= 60:
		return "D (Needs Improvement)"
	default:
		return "F (Inadequate)"
	}
}

func generateRecommendations(scores DetailedScores) []string {
	var recommendations []string

	if s := scores.Documentation.Score; s < 70 {
		recommendations = append(recommendations, fmt.Sprintf(
			"↳ Documentation: %.1f%% - Add docstrings to functions and classes. "+
				"Use standards such as Google Style or NumPy Style.", s))
	}
	if s := scores.Testing.Score; s < 70 {
		recommendations = append(recommendations, fmt.Sprintf(
			"↳ Testing: %.1f%% - Implement unit tests. "+
				"Consider using pytest, unittest or jest.", s))
	}
	if s := scores.NamingConventions.Score; s < 80 {
		recommendations = append(recommendations, fmt.Sprintf(
			"↳ Naming: %.1f%% - Follow conventions: "+
				"PascalCase for classes, snake_case for functions.", s))
	}
	if s := scores.CodeComplexity.Score; s < 70 {
		recommendations = append(recommendations, fmt.Sprintf(
			"↳ Complexity: %.1f%% - Refactor complex functions. "+
				"Split them into smaller, more testable units.", s))
	}
	if s := scores.BestPractices.Score; s < 75 {
		recommendations = append(recommendations, fmt.Sprintf(
			"↳ Best Practices: %.1f%% - Organize imports, "+
				"avoid hardcoded secrets, reduce TODOs.", s))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "✔ High-quality code!")
	}
	return recommendations
}

func summary(overall float64, recommendations []string) string {
	text := fmt.Sprintf("Overall Score: %.1f/100 - %s\n\n", overall, grade(overall))

	switch {
	case overall >= 85:
		text += "Well-structured, high-quality code. "
	case overall >= 70:
		text += "Functional code with room for improvement. "
	default:
		text += "Code needs urgent attention in several areas. "
	}

	text += fmt.Sprintf("\n\nKey actions: %d recommendation(s).", len(recommendations))
	return text
}

// RegisterQualityCheck registers the quality checker tool with the MCP server
func RegisterQualityCheck(mcpServer *server.MCPServer) {
	tool.Register(mcpServer, &Checker{})
}
