package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/keystore"
	"github.com/zx06/keystore/internal/output"
)

// IdentityInput 是 secret_get / secret_delete 的输入
type IdentityInput struct {
	Service string `json:"service"`
	Account string `json:"account"`
}

// SetInput 是 secret_set 的输入
type SetInput struct {
	Service string `json:"service"`
	Account string `json:"account"`
	Value   string `json:"value"`
}

// ToolHandler manages MCP tools
type ToolHandler struct {
	backend keystore.Backend
}

// NewToolHandler creates a new tool handler
func NewToolHandler(backend keystore.Backend) *ToolHandler {
	return &ToolHandler{backend: backend}
}

// RegisterTools registers all tools with the MCP server
func (h *ToolHandler) RegisterTools(server *mcp.Server) {
	server.AddTool(&mcp.Tool{
		Name:        "secret_set",
		Description: "Store or replace a secret identified by service and account",
		InputSchema: identitySchema(true),
	}, h.setHandler)

	server.AddTool(&mcp.Tool{
		Name:        "secret_get",
		Description: "Read the secret stored for service and account",
		InputSchema: identitySchema(false),
	}, h.getHandler)

	server.AddTool(&mcp.Tool{
		Name:        "secret_delete",
		Description: "Delete the secret stored for service and account",
		InputSchema: identitySchema(false),
	}, h.deleteHandler)

	mcp.AddTool[struct{}, any](server, &mcp.Tool{
		Name:        "secret_status",
		Description: "Show which credential backend is in use and whether it is available",
	}, h.Status)
}

func identitySchema(withValue bool) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"service", "account"},
		Properties: map[string]*jsonschema.Schema{
			"service": {
				Type:        "string",
				Description: "Service name",
			},
			"account": {
				Type:        "string",
				Description: "Account name",
			},
		},
	}
	if withValue {
		schema.Required = append(schema.Required, "value")
		schema.Properties["value"] = &jsonschema.Schema{
			Type:        "string",
			Description: "Secret value to store",
		}
	}
	return schema
}

func (h *ToolHandler) setHandler(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SetInput
	if err := decodeArguments(req, &input); err != nil {
		return errorResult(err), nil
	}
	result, _, err := h.Set(ctx, req, input)
	return result, err
}

func (h *ToolHandler) getHandler(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input IdentityInput
	if err := decodeArguments(req, &input); err != nil {
		return errorResult(err), nil
	}
	result, _, err := h.Get(ctx, req, input)
	return result, err
}

func (h *ToolHandler) deleteHandler(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input IdentityInput
	if err := decodeArguments(req, &input); err != nil {
		return errorResult(err), nil
	}
	result, _, err := h.Delete(ctx, req, input)
	return result, err
}

// decodeArguments 解析原始工具参数；空参数视为空对象
func decodeArguments(req *mcp.CallToolRequest, v any) *errors.XError {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return errors.Wrap(errors.CodeCfgInvalid, "invalid input", nil, err)
	}
	return nil
}

// Set stores a secret
func (h *ToolHandler) Set(ctx context.Context, req *mcp.CallToolRequest, input SetInput) (*mcp.CallToolResult, any, error) {
	if xe := validateIdentity(input.Service, input.Account); xe != nil {
		return errorResult(xe), nil, nil
	}
	if err := h.backend.Set(input.Service, input.Account, input.Value); err != nil {
		return errorResult(err), nil, nil
	}
	return okResult(map[string]any{"service": input.Service, "account": input.Account}), nil, nil
}

// Get reads a secret
func (h *ToolHandler) Get(ctx context.Context, req *mcp.CallToolRequest, input IdentityInput) (*mcp.CallToolResult, any, error) {
	if xe := validateIdentity(input.Service, input.Account); xe != nil {
		return errorResult(xe), nil, nil
	}
	val, err := h.backend.Get(input.Service, input.Account)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return okResult(map[string]any{"service": input.Service, "account": input.Account, "value": val}), nil, nil
}

// Delete removes a secret
func (h *ToolHandler) Delete(ctx context.Context, req *mcp.CallToolRequest, input IdentityInput) (*mcp.CallToolResult, any, error) {
	if xe := validateIdentity(input.Service, input.Account); xe != nil {
		return errorResult(xe), nil, nil
	}
	if err := h.backend.Delete(input.Service, input.Account); err != nil {
		return errorResult(err), nil, nil
	}
	return okResult(map[string]any{"service": input.Service, "account": input.Account, "deleted": true}), nil, nil
}

// Status reports the active backend
func (h *ToolHandler) Status(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return okResult(map[string]any{
		"backend":   h.backend.Name(),
		"available": h.backend.IsAvailable(),
	}), nil, nil
}

func validateIdentity(service, account string) *errors.XError {
	if service == "" {
		return errors.New(errors.CodeCfgInvalid, "service is required", nil)
	}
	if account == "" {
		return errors.New(errors.CodeCfgInvalid, "account is required", nil)
	}
	return nil
}

func okResult(data any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(output.OK(data), "", "  ")
	if err != nil {
		return errorResult(errors.Wrap(errors.CodeInternal, "failed to marshal result", nil, err))
	}
	// Return result directly in content per RFC
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonData)},
		},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: formatError(err)},
		},
	}
}

// formatError renders err as the CLI's failure envelope
func formatError(err error) string {
	xe := errors.New(errors.CodeInternal, "unknown error", nil)
	if err != nil {
		xe = errors.AsOrWrap(err)
	}
	jsonData, _ := json.MarshalIndent(output.Fail(xe), "", "  ")
	return string(jsonData)
}

// CreateServer creates a new MCP server
func CreateServer(version string, backend keystore.Backend) (*mcp.Server, error) {
	if backend == nil {
		return nil, errors.New(errors.CodeInternal, "credential backend is nil", nil)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "keystore",
		Version: version,
	}, nil)

	handler := NewToolHandler(backend)
	handler.RegisterTools(server)

	return server, nil
}
