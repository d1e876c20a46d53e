// Package archdetect identifies architectural patterns in a project from
// its directory layout and file names. Detection is declarative: a catalog
// of weighted directory keywords plus a few specialized detectors, with
// confidence scores and human-readable evidence.
package archdetect

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Mustasheep/nawi-agent/pkg/tool"
	"github.com/mark3labs/mcp-go/server"
)

// Detector implements the architecture_detector tool
type Detector struct{}

func (d *Detector) Name() string {
	return "architecture_detector"
}

func (d *Detector) Description() string {
	return "Detects architectural patterns in the project, from simple structures to complex patterns. " +
		"Identifies modular structures, MVC, Clean Architecture, Microservices, Repository Pattern, " +
		"DDD, Event-Driven, feature-based and framework-specific patterns. " +
		"Returns detection confidence and the evidence found."
}

func (d *Detector) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"file_structure": map[string]interface{}{
				"type":        "object",
				"description": "Project file structure as a map of paths",
			},
			"file_names": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "List of file names in the project",
			},
			"directory_names": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "List of directory names",
			},
		},
		"required": []string{"file_structure"},
	}
}

func (d *Detector) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	fileStructure, ok := args["file_structure"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("file_structure must be an object")
	}
	fileNames := tool.StringListArg(args, "file_names")
	dirNames := tool.StringListArg(args, "directory_names")

	dirsLower := lowerAll(dirNames)
	filesLower := lowerAll(fileNames)
	structStr := structureText(fileStructure)

	patterns := detectPatterns(dirsLower, filesLower, structStr)

	report := &ArchitectureReport{
		DetectedPatterns:  patterns,
		SecondaryPatterns: []DetectedPattern{},
		ArchitectureType:  classifyArchitectureType(patterns),
		ComplexityLevel:   assessComplexity(patterns),
		FrameworkHints:    detectFrameworks(filesLower, structStr),
		Recommendations:   buildRecommendations(patterns),
	}
	if len(patterns) > 0 {
		report.PrimaryPattern = &patterns[0]
	}
	if len(patterns) > 1 {
		end := min(len(patterns), 4)
		report.SecondaryPatterns = patterns[1:end]
	}

	return report, nil
}

// structureText joins the structure keys into one lower-case search
// string. Keys are sorted so the text is stable across calls.
func structureText(fileStructure map[string]interface{}) string {
	keys := make([]string, 0, len(fileStructure))
	for k := range fileStructure {
		keys = append(keys, strings.ToLower(k))
	}
	sort.Strings(keys)
	return strings.Join(keys, " ")
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}

// RegisterArchDetect registers the architecture detector tool with the MCP server
func RegisterArchDetect(mcpServer *server.MCPServer) {
	tool.Register(mcpServer, &Detector{})
}
