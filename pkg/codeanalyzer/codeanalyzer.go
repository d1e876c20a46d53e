// Package codeanalyzer extracts the structure of a source file: functions,
// classes, imports, constants and line statistics. Python gets a full
// structural parse, JavaScript and TypeScript get a regex approximation,
// everything else degrades to basic line statistics.
package codeanalyzer

import (
	"context"
	"fmt"

	"github.com/Mustasheep/nawi-agent/pkg/tool"
	"github.com/mark3labs/mcp-go/server"
)

var supportedLanguages = []string{"python", "javascript", "typescript", "java", "go", "cpp"}

// Analyzer implements the code_analyzer tool
type Analyzer struct{}

func (a *Analyzer) Name() string {
	return "code_analyzer"
}

func (a *Analyzer) Description() string {
	return "Analyzes source code structure, extracting functions, classes, imports, constants and line metrics"
}

func (a *Analyzer) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Source code to analyze",
			},
			"language": map[string]interface{}{
				"type":        "string",
				"description": "Programming language of the code",
				"enum":        supportedLanguages,
			},
			"file_path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the file being analyzed, used for context in the report",
			},
		},
		"required": []string{"code", "language"},
	}
}

// Execute dispatches on language. Analysis failures are reported inside
// the result, never as an error: the caller always gets a usable report.
func (a *Analyzer) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	code, err := tool.StringArg(args, "code")
	if err != nil {
		return nil, err
	}
	language, err := tool.StringArg(args, "language")
	if err != nil {
		return nil, err
	}
	filePath := tool.OptionalStringArg(args, "file_path", "unknown")

	switch language {
	case "python":
		return analyzePython(code, filePath), nil
	case "javascript", "typescript":
		return analyzeJavaScript(code, filePath, language), nil
	default:
		return &UnsupportedReport{
			Error:      fmt.Sprintf("Analysis for %s not implemented yet", language),
			BasicStats: basicStats(code, language),
		}, nil
	}
}

// RegisterCodeAnalyzer registers the code analyzer tool with the MCP server
func RegisterCodeAnalyzer(mcpServer *server.MCPServer) {
	tool.Register(mcpServer, &Analyzer{})
}
