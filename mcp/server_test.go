package mcp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobportal/backend/tools"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	registry := tools.NewToolRegistry()
	registry.Register(tools.NewClassifyIntentTool())
	registry.Register(tools.NewDetectFiltersTool(nil))
	registry.Register(tools.NewSearchJobsTool(nil, nil))

	router := gin.New()
	NewServer(registry).RegisterRoutes(router.Group("/api"))
	return router
}

func rpc(t *testing.T, router *gin.Engine, path string, body interface{}) MCPResponse {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp MCPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleMCP_ToolsList(t *testing.T) {
	resp := rpc(t, newTestRouter(), "/api/mcp", MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result ToolsListResult
	require.NoError(t, json.Unmarshal(raw, &result))

	require.Len(t, result.Tools, 3)
	assert.Equal(t, "classify_intent", result.Tools[0].Name)
	assert.Equal(t, "detect_filters", result.Tools[1].Name)
	assert.Equal(t, "search_jobs", result.Tools[2].Name)
}

func TestHandleMCP_ToolsCall(t *testing.T) {
	resp := rpc(t, newTestRouter(), "/api/mcp", MCPRequest{
		JSONRPC: "2.0",
		ID:      "a",
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"classify_intent","arguments":{"message":"tạm biệt"}}`),
	})
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result ToolCallResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, `"intent":"goodbye"`)
}

func TestHandleMCP_Errors(t *testing.T) {
	router := newTestRouter()

	resp := rpc(t, router, "/api/mcp", MCPRequest{JSONRPC: "2.0", ID: 2, Method: "resources/list"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeMethodNotFound, resp.Error.Code)

	resp = rpc(t, router, "/api/mcp", MCPRequest{
		JSONRPC: "2.0",
		ID:      3,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"nope"}`),
	})
	require.Nil(t, resp.Error)
	raw, _ := json.Marshal(resp.Result)
	var result ToolCallResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.True(t, result.IsError)
}

func TestHandleMCP_Initialize(t *testing.T) {
	resp := rpc(t, newTestRouter(), "/api/mcp", MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	require.Nil(t, resp.Error)

	raw, _ := json.Marshal(resp.Result)
	var result InitializeResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, ServerName, result.ServerInfo.Name)
	assert.Equal(t, ProtocolVersion, result.ProtocolVersion)
}
