package jokes

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jokes/pkg/jokeapi"
	"github.com/effective-security/jokes/schema"
	"github.com/effective-security/jokes/tools"
	"github.com/effective-security/jokes/utils"
	mcp "github.com/metoro-io/mcp-golang"
)

// Tool names
const (
	ConsistentJokeToolName = "get_consistent_joke"
	RandomJokeToolName     = "get_joke"
	JokeByIDToolName       = "get_joke_by_id"
	JokeByTypeToolName     = "get_joke_by_type"
)

// ConsistentJoke is returned by get_consistent_joke on every call
const ConsistentJoke = "What's brown and sticky?\nA stick! Ha ha ha ha"

// JokeClient is the Joke API used by the tools
type JokeClient interface {
	RandomJoke(ctx context.Context) (*jokeapi.Joke, error)
	JokeByID(ctx context.Context, id int) (*jokeapi.Joke, error)
	JokeByType(ctx context.Context, jokeType jokeapi.JokeType) (*jokeapi.Joke, error)
}

// NoArgs is the input of the tools without parameters
type NoArgs struct{}

// JokeByIDRequest represents the get_joke_by_id input
type JokeByIDRequest struct {
	ID int `json:"id" yaml:"id" jsonschema:"required,title=ID,description=The joke id (valid range: 1-451),minimum=1,maximum=451"`
}

// JokeByTypeRequest represents the get_joke_by_type input
type JokeByTypeRequest struct {
	JokeType jokeapi.JokeType `json:"joke_type" yaml:"joke_type" jsonschema:"required,title=Joke Type,description=The type of the joke,enum=general,enum=knock-knock,enum=programming,enum=dad"`
}

// Result represents the tool output
type Result struct {
	Text string `json:"text" yaml:"text"`
}

func (r *Result) String() string {
	return r.Text
}

// Tool is a joke tool with input I
type Tool[I any] struct {
	name        string
	description string
	funcParams  any
	run         func(context.Context, *I) (string, error)
}

var (
	_ tools.Tool[NoArgs, Result]            = (*Tool[NoArgs])(nil)
	_ tools.MCPTool[JokeByIDRequest]        = (*Tool[JokeByIDRequest])(nil)
	_ tools.MCPTool[JokeByTypeRequest]      = (*Tool[JokeByTypeRequest])(nil)
	_ tools.Tool[JokeByTypeRequest, Result] = (*Tool[JokeByTypeRequest])(nil)
)

func newTool[I any](name, description string, run func(context.Context, *I) (string, error)) (*Tool[I], error) {
	sc, err := schema.For[I]()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Tool[I]{
		name:        name,
		description: description,
		funcParams:  sc.Parameters,
		run:         run,
	}, nil
}

// NewConsistentJoke returns get_consistent_joke tool, which never calls the API
func NewConsistentJoke() (*Tool[NoArgs], error) {
	return newTool(ConsistentJokeToolName,
		"Tell the same joke, every single time. Be consistent.",
		func(context.Context, *NoArgs) (string, error) {
			return ConsistentJoke, nil
		})
}

// NewRandomJoke returns get_joke tool
func NewRandomJoke(client JokeClient) (*Tool[NoArgs], error) {
	return newTool(RandomJokeToolName,
		"Get a random joke",
		func(ctx context.Context, _ *NoArgs) (string, error) {
			return extract(client.RandomJoke(ctx))
		})
}

// NewJokeByID returns get_joke_by_id tool
func NewJokeByID(client JokeClient) (*Tool[JokeByIDRequest], error) {
	return newTool(JokeByIDToolName,
		"Get a joke with a specific id (valid range: 1-451)",
		func(ctx context.Context, req *JokeByIDRequest) (string, error) {
			return extract(client.JokeByID(ctx, req.ID))
		})
}

// NewJokeByType returns get_joke_by_type tool
func NewJokeByType(client JokeClient) (*Tool[JokeByTypeRequest], error) {
	return newTool(JokeByTypeToolName,
		`Get a joke of a specific type. The type can be "general", "knock-knock", "programming", or "dad".`,
		func(ctx context.Context, req *JokeByTypeRequest) (string, error) {
			return extract(client.JokeByType(ctx, req.JokeType))
		})
}

// All returns all the joke tools
func All(client JokeClient) ([]tools.IMCPTool, error) {
	consistent, err := NewConsistentJoke()
	if err != nil {
		return nil, err
	}
	random, err := NewRandomJoke(client)
	if err != nil {
		return nil, err
	}
	byID, err := NewJokeByID(client)
	if err != nil {
		return nil, err
	}
	byType, err := NewJokeByType(client)
	if err != nil {
		return nil, err
	}
	return []tools.IMCPTool{consistent, random, byID, byType}, nil
}

func extract(joke *jokeapi.Joke, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return jokeapi.Extract(joke)
}

func (t *Tool[I]) Name() string {
	return t.name
}

func (t *Tool[I]) Description() string {
	return t.description
}

func (t *Tool[I]) Parameters() any {
	return t.funcParams
}

func (t *Tool[I]) Run(ctx context.Context, req *I) (*Result, error) {
	if req == nil {
		req = new(I)
	}
	txt, err := t.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Result{Text: txt}, nil
}

// Call parses JSON input and returns the joke text.
// Empty input is accepted for the tools without parameters.
func (t *Tool[I]) Call(ctx context.Context, input string) (string, error) {
	var req I
	if strings.TrimSpace(input) != "" {
		if err := json.Unmarshal(utils.CleanJSON([]byte(input)), &req); err != nil {
			return "", errors.Mark(errors.WithStack(tools.ErrFailedUnmarshalInput), jokeapi.ErrInvalidArgument)
		}
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func (t *Tool[I]) RegisterMCP(registrator tools.McpServerRegistrator) error {
	return registrator.RegisterTool(t.name, t.description, func(ctx context.Context, args I) (*mcp.ToolResponse, error) {
		return t.RunMCP(ctx, &args)
	})
}

func (t *Tool[I]) RunMCP(ctx context.Context, req *I) (*mcp.ToolResponse, error) {
	res, err := t.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResponse(mcp.NewTextContent(res.Text)), nil
}
