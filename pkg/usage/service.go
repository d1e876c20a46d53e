package usage

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var globalManager *Manager

// Init initializes the global usage manager
func Init(dataDir string) error {
	var err error
	globalManager, err = NewManager(filepath.Join(dataDir, "usage.json"))
	return err
}

// GetManager returns the global usage manager
func GetManager() *Manager {
	return globalManager
}

// WrapHandler wraps a tool handler with usage tracking
func WrapHandler(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		log.Printf("[Usage] Starting execution of tool '%s'", toolName)

		result, err := handler(ctx, request)
		if err != nil {
			log.Printf("[Usage] Error executing tool '%s': %v", toolName, err)
			return nil, err
		}

		recordCall(toolName, startTime, request, result)
		return result, nil
	}
}

// recordCall records one invocation against the global manager
func recordCall(toolName string, startTime time.Time, request mcp.CallToolRequest, result *mcp.CallToolResult) {
	if globalManager == nil {
		log.Printf("[Usage] Warning: usage manager not initialized, cannot record tool usage")
		return
	}

	executionTime := time.Since(startTime)
	inputBytes := estimateInputBytes(request)
	outputBytes := estimateOutputBytes(result)

	log.Printf("[Usage] Recording usage for tool '%s': execution time=%v, input=%dB, output=%dB",
		toolName, executionTime, inputBytes, outputBytes)

	if err := globalManager.Record(toolName, executionTime, inputBytes, outputBytes); err != nil {
		// Log the error but don't fail the request
		log.Printf("[Usage] Failed to record tool usage: %v", err)
	}
}

func estimateInputBytes(request mcp.CallToolRequest) int {
	total := len(request.Params.Name)
	for key, value := range request.Params.Arguments {
		total += len(key)
		switch v := value.(type) {
		case string:
			total += len(v)
		case []interface{}:
			total += len(v)
		default:
			total++
		}
	}
	return total
}

func estimateOutputBytes(result *mcp.CallToolResult) int {
	total := 0
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			total += len(text.Text)
		}
	}
	return total
}

// HandleGetUsage handles requests for the usage_stats tool
func HandleGetUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if globalManager == nil {
		return nil, fmt.Errorf("usage manager not initialized")
	}

	text := FormatUsage(globalManager.Session(), globalManager.Persistent())

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}, nil
}

// RegisterUsage registers the usage_stats tool with the MCP server
func RegisterUsage(mcpServer *server.MCPServer, dataDir string) error {
	if globalManager == nil {
		if err := Init(dataDir); err != nil {
			return err
		}
	}

	usageTool := mcp.NewTool("usage_stats",
		mcp.WithDescription("Retrieves usage statistics for the analysis tools"),
	)

	mcpServer.AddTool(usageTool, WrapHandler("usage_stats", HandleGetUsage))

	log.Printf("[Usage] Registered usage_stats tool")
	return nil
}
