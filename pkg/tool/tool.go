// Package tool defines the contract every analyzer exposes to the MCP
// server: a name, a description, a JSON-Schema-shaped input schema, and a
// synchronous Execute that returns a JSON-serializable result.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Mustasheep/nawi-agent/pkg/usage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool is the uniform capability interface for all analyzers
type Tool interface {
	// Name returns the stable unique tool identifier
	Name() string

	// Description returns the capability summary surfaced for tool selection
	Description() string

	// InputSchema returns the JSON-Schema-shaped parameter description
	InputSchema() map[string]interface{}

	// Execute runs the analysis. The result must contain only nested
	// maps, slices, strings, numbers and booleans.
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Register registers a tool with the MCP server, deriving the mcp tool
// definition from the declarative schema and wrapping the handler with
// usage tracking
func Register(mcpServer *server.MCPServer, t Tool) {
	opts := buildToolOptions(t)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := t.Execute(ctx, request.Params.Arguments)
		if err != nil {
			return nil, fmt.Errorf("error executing %s: %v", t.Name(), err)
		}

		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error encoding %s result: %v", t.Name(), err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: string(payload),
				},
			},
		}, nil
	}

	mcpServer.AddTool(mcp.NewTool(t.Name(), opts...), usage.WrapHandler(t.Name(), handler))
}

// buildToolOptions converts the declarative schema into mcp tool options
func buildToolOptions(t Tool) []mcp.ToolOption {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description())}

	schema := t.InputSchema()

	properties, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	if reqList, ok := schema["required"].([]string); ok {
		for _, name := range reqList {
			required[name] = true
		}
	}

	for name, raw := range properties {
		prop, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		description, _ := prop["description"].(string)
		propType, _ := prop["type"].(string)

		var propOpts []mcp.PropertyOption
		propOpts = append(propOpts, mcp.Description(description))
		if required[name] {
			propOpts = append(propOpts, mcp.Required())
		}
		if values, ok := prop["enum"].([]string); ok {
			propOpts = append(propOpts, mcp.Enum(values...))
		}

		switch propType {
		case "string":
			opts = append(opts, mcp.WithString(name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(name, propOpts...))
		case "number", "integer":
			opts = append(opts, mcp.WithNumber(name, propOpts...))
		case "array":
			opts = append(opts, mcp.WithArray(name, propOpts...))
		case "object":
			opts = append(opts, mcp.WithObject(name, propOpts...))
		}
	}

	return opts
}

// StringArg extracts a required string argument
func StringArg(args map[string]interface{}, name string) (string, error) {
	value, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return value, nil
}

// OptionalStringArg extracts an optional string argument with a default
func OptionalStringArg(args map[string]interface{}, name, fallback string) string {
	if value, ok := args[name].(string); ok {
		return value
	}
	return fallback
}

// StringListArg extracts an optional list-of-strings argument
func StringListArg(args map[string]interface{}, name string) []string {
	var values []string
	if items, ok := args[name].([]interface{}); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
	}
	return values
}
