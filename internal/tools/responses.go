package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrorResponse creates a standardized error response for MCP tools.
func ErrorResponse(message string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + message}},
		IsError: true,
	}
}

// ErrorResponsef creates a standardized error response with formatted message.
func ErrorResponsef(format string, args ...any) *mcp.CallToolResultFor[any] {
	return ErrorResponse(fmt.Sprintf(format, args...))
}

// JSONResponse creates a response with indented JSON content.
func JSONResponse(data any) *mcp.CallToolResultFor[any] {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return ErrorResponsef("failed to marshal JSON: %v", err)
	}

	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

// EmptyFieldError creates an error response for empty required fields.
func EmptyFieldError(fieldName string) *mcp.CallToolResultFor[any] {
	return ErrorResponsef("%s cannot be empty", fieldName)
}

// ValidatePathWithContext sanitizes a path with the context validator.
func ValidatePathWithContext(ctx *Context, filePath string) (string, *mcp.CallToolResultFor[any]) {
	if filePath == "" {
		return "", EmptyFieldError("path")
	}

	sanitizedPath, err := ctx.Validator.SanitizePath(filePath)
	if err != nil {
		return "", ErrorResponsef("Path validation failed: %v", err)
	}

	return sanitizedPath, nil
}
