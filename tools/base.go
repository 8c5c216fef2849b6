package tools

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/jobportal/backend/metrics"
)

// Tool represents an MCP tool interface
type Tool interface {
	// Name returns the tool name
	Name() string

	// Description returns the tool description for the agent
	Description() string

	// InputSchema returns the JSON schema for the tool input
	InputSchema() map[string]interface{}

	// Execute runs the tool with the given input
	Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// ToolRegistry holds all available tools
type ToolRegistry struct {
	tools map[string]Tool
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *ToolRegistry) Register(tool Tool) {
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools sorted by name
func (r *ToolRegistry) List() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// Execute runs a registered tool and records the outcome
func (r *ToolRegistry) Execute(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, bool, error) {
	tool, ok := r.Get(name)
	if !ok {
		return nil, false, nil
	}

	result, err := tool.Execute(ctx, input)
	status := "ok"
	if err != nil {
		status = "error"
	} else if !succeeded(result) {
		status = "failed"
	}
	metrics.ToolCallsTotal.WithLabelValues(name, status).Inc()
	return result, true, err
}

// ToolResult represents the result of a tool execution
type ToolResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NewSuccessResult creates a successful tool result
func NewSuccessResult(data interface{}) (json.RawMessage, error) {
	result := ToolResult{Success: true}
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	result.Data = dataBytes
	return json.Marshal(result)
}

// NewErrorResult creates an error tool result
func NewErrorResult(errMsg string) (json.RawMessage, error) {
	result := ToolResult{
		Success: false,
		Error:   errMsg,
	}
	return json.Marshal(result)
}

func succeeded(raw json.RawMessage) bool {
	var result ToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return false
	}
	return result.Success
}

// decodeInput unmarshals tool arguments, treating empty input as {}
func decodeInput(input json.RawMessage, v interface{}) error {
	if len(input) == 0 {
		return nil
	}
	return json.Unmarshal(input, v)
}
