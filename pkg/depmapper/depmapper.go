// Package depmapper maps the dependencies of a project: third-party
// packages from manifest files, internal imports between modules, import
// cycles and coupling metrics, plus a text rendering of the graph.
package depmapper

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Mustasheep/nawi-agent/pkg/tool"
	"github.com/mark3labs/mcp-go/server"
)

// Mapper implements the dependency_mapper tool
type Mapper struct{}

func (m *Mapper) Name() string {
	return "dependency_mapper"
}

func (m *Mapper) Description() string {
	return "Maps all project dependencies. Analyzes imports, requirements, package.json, pom.xml, " +
		"go.mod and other dependency files. Identifies direct, transitive and circular " +
		"dependencies. Returns a dependency graph."
}

func (m *Mapper) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"files": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path":    map[string]interface{}{"type": "string"},
						"content": map[string]interface{}{"type": "string"},
						"type":    map[string]interface{}{"type": "string"},
					},
				},
				"description": "List of project files",
			},
			"language": map[string]interface{}{
				"type":        "string",
				"description": "Main language of the project",
				"enum":        []string{"python", "javascript", "typescript", "java", "go"},
			},
		},
		"required": []string{"files", "language"},
	}
}

func (m *Mapper) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	language, err := tool.StringArg(args, "language")
	if err != nil {
		return nil, err
	}
	files, err := parseFiles(args["files"])
	if err != nil {
		return nil, err
	}

	external := extractExternalDependencies(files, language)
	internal := extractInternalDependencies(files, language)
	circular := detectCircularDependencies(internal)
	metrics := calculateMetrics(internal, external)

	internalMap := map[string][]string{}
	for _, mod := range internal {
		internalMap[mod.Path] = mod.Imports
	}

	return &DependencyReport{
		ExternalDependencies: external,
		InternalDependencies: internalMap,
		CircularDependencies: circular,
		Metrics:              metrics,
		DependencyGraph:      buildGraph(internal),
		Recommendations:      dependencyRecommendations(circular, metrics),
	}, nil
}

func parseFiles(raw interface{}) ([]ProjectFile, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("files must be an array")
	}

	files := make([]ProjectFile, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("each file must be an object")
		}
		path, _ := entry["path"].(string)
		content, _ := entry["content"].(string)
		fileType, _ := entry["type"].(string)
		files = append(files, ProjectFile{Path: path, Content: content, Type: fileType})
	}
	return files, nil
}

func calculateMetrics(internal []ModuleDeps, external ExternalDependencies) Metrics {
	totalInternal := 0
	for _, mod := range internal {
		totalInternal += len(mod.Imports)
	}

	var most *MostDependent
	for _, mod := range internal {
		if most == nil || len(mod.Imports) > most.Count {
			most = &MostDependent{Path: mod.Path, Count: len(mod.Imports)}
		}
	}

	avg := 0.0
	if len(internal) > 0 {
		avg = math.Round(float64(totalInternal)/float64(len(internal))*100) / 100
	}

	return Metrics{
		TotalInternalDependencies: totalInternal,
		TotalExternalDependencies: external.TotalCount,
		AvgDependenciesPerModule:  avg,
		MostDependentModule:       most,
		CouplingLevel:             couplingLevel(internal, totalInternal),
	}
}

func couplingLevel(internal []ModuleDeps, totalInternal int) string {
	if len(internal) == 0 {
		return "none"
	}
	avg := float64(totalInternal) / float64(len(internal))
	switch {
	case avg > 10:
		return "high"
	case avg > 5:
		return "medium"
	default:
		return "low"
	}
}

// buildGraph renders the import edges as "module -> dep" lines, capped
// at 50 lines. Paths collapse to their basename for readability.
func buildGraph(internal []ModuleDeps) string {
	if len(internal) == 0 {
		return "No internal dependencies"
	}

	var lines []string
	for _, mod := range internal {
		moduleName := basename(mod.Path)
		for _, dep := range mod.Imports {
			lines = append(lines, moduleName+" -> "+basename(dep))
		}
	}

	if len(lines) > 50 {
		lines = lines[:50]
	}
	return strings.Join(lines, "\n")
}

func basename(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func dependencyRecommendations(circular [][]string, metrics Metrics) []string {
	var recommendations []string

	if len(circular) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"⚠️ %d circular dependency(ies) detected. Consider refactoring to avoid coupling.",
			len(circular)))
	}

	if metrics.CouplingLevel == "high" {
		recommendations = append(recommendations,
			"High coupling detected. Consider applying Dependency Injection or Inversion of Control.")
	}

	if metrics.TotalExternalDependencies > 50 {
		recommendations = append(recommendations, fmt.Sprintf(
			"%d external dependencies. Evaluate whether all are necessary. "+
				"Many dependencies increase security risk and bundle size.",
			metrics.TotalExternalDependencies))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "✔ Healthy dependency structure")
	}
	return recommendations
}

// RegisterDepMapper registers the dependency mapper tool with the MCP server
func RegisterDepMapper(mcpServer *server.MCPServer) {
	tool.Register(mcpServer, &Mapper{})
}
