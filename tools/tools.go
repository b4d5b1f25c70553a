package tools

import (
	"context"

	"github.com/cockroachdb/errors"
	mcp "github.com/metoro-io/mcp-golang"
)

//go:generate mockgen -source=tools.go -destination=../mocks/mocktools/tools_mock.gen.go -package mocktools

// ErrFailedUnmarshalInput is returned by Call when the JSON input does not match the tool parameters
var ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")

// McpServerRegistrator is implemented by the MCP server hosting the tools.
type McpServerRegistrator interface {
	RegisterTool(name string, description string, handler any) error
}

// ITool is a tool exposed to the MCP clients.
type ITool interface {
	// Name returns the name the clients call the tool by.
	Name() string
	// Description returns the description advertised in the tools list.
	Description() string
	// Parameters returns the JSON schema of the tool input.
	Parameters() any

	// Call executes the tool with the given JSON input and returns the text result.
	// If the tool fails to parse the input, it should return ErrFailedUnmarshalInput error.
	Call(context.Context, string) (string, error)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// IMCPTool is a tool that can be registered with an MCP server.
type IMCPTool interface {
	ITool
	RegisterMCP(registrator McpServerRegistrator) error
}

type MCPTool[I any] interface {
	IMCPTool
	RunMCP(context.Context, *I) (*mcp.ToolResponse, error)
}

// Info describes a tool in the listing
type Info struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Parameters  any    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Describe returns the listing of the tools
func Describe(list ...ITool) []Info {
	infos := make([]Info, 0, len(list))
	for _, tool := range list {
		infos = append(infos, Info{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return infos
}
