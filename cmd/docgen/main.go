// Command docgen scans a project directory, invokes the analysis tools
// on an MCP server and assembles the results into a markdown report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mustasheep/nawi-agent/pkg/scanner"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	serverURL   = flag.String("server", "", "MCP server URL (defaults to NAWI_SERVER_URL or http://localhost:8080)")
	projectDir  = flag.String("project", ".", "Project directory to analyze")
	outputPath  = flag.String("output", "ANALYSIS.md", "Output markdown file")
	timeoutSecs = flag.Int("timeout", 120, "Client timeout in seconds")
	maxFiles    = flag.Int("max-files", scanner.DefaultFilesPerLanguage, "Maximum source files per language")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("[Docgen] No .env file loaded: %v", err)
	}

	url := *serverURL
	if url == "" {
		url = os.Getenv("NAWI_SERVER_URL")
	}
	if url == "" {
		url = "http://localhost:8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutSecs)*time.Second)
	defer cancel()

	log.Printf("[Docgen] Scanning project at %s...", *projectDir)
	project, err := scanner.Scan(*projectDir, *maxFiles)
	if err != nil {
		log.Fatalf("[Docgen] Scan failed: %v", err)
	}
	log.Printf("[Docgen] Found %d files, %d sources, language %s",
		len(project.FileNames), len(project.SourceFiles), project.Language)

	log.Printf("[Docgen] Connecting to MCP server at %s...", url)
	sseClient, err := client.NewSSEMCPClient(url)
	if err != nil {
		log.Fatalf("[Docgen] Failed to create SSE client: %v", err)
	}
	if err := sseClient.Start(ctx); err != nil {
		log.Fatalf("[Docgen] Failed to start SSE client: %v", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	if _, err := sseClient.Initialize(ctx, initReq); err != nil {
		log.Fatalf("[Docgen] Failed to initialize client: %v", err)
	}
	log.Printf("[Docgen] Connected")

	toolsResult, err := sseClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		log.Printf("[Docgen] Failed to list tools: %v", err)
	} else {
		log.Printf("[Docgen] Available tools (%d):", len(toolsResult.Tools))
		for _, t := range toolsResult.Tools {
			log.Printf("  - %s", t.Name)
		}
	}

	var report strings.Builder
	report.WriteString(fmt.Sprintf("# Analysis Report: %s\n\n", filepath.Base(absOrSelf(*projectDir))))
	report.WriteString(fmt.Sprintf("Generated %s\n\n", time.Now().Format(time.RFC3339)))

	sections := []struct {
		title string
		tool  string
		args  map[string]interface{}
	}{
		{"Architecture", "architecture_detector", map[string]interface{}{
			"file_structure":  project.FileStructure,
			"file_names":      toInterfaces(project.FileNames),
			"directory_names": toInterfaces(project.DirectoryNames),
		}},
		{"Dependencies", "dependency_mapper", map[string]interface{}{
			"files":    project.MapperFiles(),
			"language": project.Language,
		}},
		{"Quality", "quality_checker", map[string]interface{}{
			"files": project.CheckerFiles(),
		}},
	}

	// Each call is independent: a failing tool yields an error section
	// instead of aborting the run
	for _, section := range sections {
		report.WriteString(fmt.Sprintf("## %s\n\n", section.title))
		report.WriteString(callTool(ctx, sseClient, section.tool, section.args))
		report.WriteString("\n\n")
	}

	report.WriteString("## Code Structure\n\n")
	limit := min(len(project.SourceFiles), 5)
	for _, file := range project.SourceFiles[:limit] {
		report.WriteString(fmt.Sprintf("### %s\n\n", file.RelPath))
		report.WriteString(callTool(ctx, sseClient, "code_analyzer", map[string]interface{}{
			"code":      file.Content,
			"language":  file.Language,
			"file_path": file.RelPath,
		}))
		report.WriteString("\n\n")
	}

	if err := os.WriteFile(*outputPath, []byte(report.String()), 0644); err != nil {
		log.Fatalf("[Docgen] Failed to write report: %v", err)
	}
	log.Printf("[Docgen] Report written to %s", *outputPath)
}

// callTool invokes one tool and renders its JSON payload as a fenced
// block, or an error note on failure
func callTool(ctx context.Context, c *client.SSEMCPClient, name string, args map[string]interface{}) string {
	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = name
	callReq.Params.Arguments = args

	result, err := c.CallTool(ctx, callReq)
	if err != nil {
		log.Printf("[Docgen] Tool %s failed: %v", name, err)
		return fmt.Sprintf("Analysis unavailable: %v", err)
	}

	if len(result.Content) > 0 {
		if textContent, ok := result.Content[0].(mcp.TextContent); ok {
			return "```json\n" + textContent.Text + "\n```"
		}
	}
	return "Analysis returned no content"
}

func toInterfaces(values []string) []interface{} {
	items := make([]interface{}, len(values))
	for i, v := range values {
		items[i] = v
	}
	return items
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
