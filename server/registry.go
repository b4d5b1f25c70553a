package server

import (
	"context"
	"reflect"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jokes/pkg/jokeapi"
	"github.com/effective-security/jokes/pkg/metricskey"
	"github.com/effective-security/jokes/tools"
	"github.com/effective-security/jokes/tools/jokes"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/jokes", "server")

// ErrToolNotFound is returned by Call for unknown tool names
var ErrToolNotFound = errors.New("tool not found")

// Registry of the tools by name
type Registry struct {
	byName map[string]tools.IMCPTool
	names  []string
}

// NewRegistry returns a registry of the tools,
// the names must be unique and not empty.
func NewRegistry(list ...tools.IMCPTool) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]tools.IMCPTool, len(list)),
	}
	for _, tool := range list {
		if tool == nil {
			return nil, errors.New("nil tool")
		}
		name := tool.Name()
		if name == "" {
			return nil, errors.New("tool name is empty")
		}
		if _, ok := r.byName[name]; ok {
			return nil, errors.Errorf("duplicate tool name: %s", name)
		}
		r.byName[name] = tool
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)
	return r, nil
}

// NewDefault returns the registry with the joke tools
func NewDefault(client jokes.JokeClient) (*Registry, error) {
	list, err := jokes.All(client)
	if err != nil {
		return nil, err
	}
	return NewRegistry(list...)
}

// Names returns sorted names of the tools
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Tools returns the tools sorted by name
func (r *Registry) Tools() []tools.IMCPTool {
	list := make([]tools.IMCPTool, 0, len(r.names))
	for _, name := range r.names {
		list = append(list, r.byName[name])
	}
	return list
}

// Get returns the tool by name
func (r *Registry) Get(name string) (tools.IMCPTool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Call invokes the tool by name with JSON input
func (r *Registry) Call(ctx context.Context, name, input string) (string, error) {
	tool, ok := r.byName[name]
	if !ok {
		metricskey.StatsToolCallsNotFound.IncrCounter(1, r.toolTag(name))
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "tool_not_found",
			"tool", name,
		)
		return "", errors.Wrapf(ErrToolNotFound, "unknown tool %q", name)
	}

	started := time.Now()
	res, err := tool.Call(ctx, input)
	observe(ctx, name, uuid.NewString(), started, err)
	if err != nil {
		return "", err
	}
	return res, nil
}

// unknownToolTag is the metrics tag of the names not in the registry,
// as the caller controls the name.
const unknownToolTag = "unknown"

func (r *Registry) toolTag(name string) string {
	if _, ok := r.byName[name]; ok {
		return name
	}
	return unknownToolTag
}

// RegisterMCP registers all the tools with the MCP server,
// the calls coming from the server are logged and measured.
func (r *Registry) RegisterMCP(registrator tools.McpServerRegistrator) error {
	ir := &instrumentedRegistrator{registrator: registrator}
	for _, name := range r.names {
		if err := r.byName[name].RegisterMCP(ir); err != nil {
			return errors.Wrapf(err, "failed to register tool %s", name)
		}
	}
	return nil
}

type instrumentedRegistrator struct {
	registrator tools.McpServerRegistrator
}

func (r *instrumentedRegistrator) RegisterTool(name string, description string, handler any) error {
	return r.registrator.RegisterTool(name, description, instrument(name, handler))
}

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// instrument wraps func(context.Context, I) (O, error) handler,
// keeping its type, as the MCP server derives the schema from it.
// Other handlers are returned as is.
func instrument(name string, handler any) any {
	hv := reflect.ValueOf(handler)
	ht := hv.Type()
	if ht.Kind() != reflect.Func ||
		ht.NumIn() != 2 || ht.In(0) != contextType ||
		ht.NumOut() != 2 || ht.Out(1) != errorType {
		return handler
	}

	return reflect.MakeFunc(ht, func(args []reflect.Value) []reflect.Value {
		ctx, _ := args[0].Interface().(context.Context)
		if ctx == nil {
			ctx = context.Background()
		}

		callID := uuid.NewString()
		logger.ContextKV(ctx, xlog.DEBUG,
			"status", "tool_call_started",
			"tool", name,
			"call_id", callID,
		)

		started := time.Now()
		out := hv.Call(args)
		err, _ := out[1].Interface().(error)
		observe(ctx, name, callID, started, err)
		return out
	}).Interface()
}

func observe(ctx context.Context, name, callID string, started time.Time, err error) {
	metricskey.PerfToolCall.MeasureSince(started, name)
	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, name)
		level := xlog.ERROR
		if errors.Is(err, jokeapi.ErrInvalidArgument) {
			level = xlog.WARNING
		}
		logger.ContextKV(ctx, level,
			"status", "tool_call_failed",
			"tool", name,
			"call_id", callID,
			"err", err.Error(),
		)
		return
	}

	metricskey.StatsToolCallsSucceeded.IncrCounter(1, name)
	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "tool_call_succeeded",
		"tool", name,
		"call_id", callID,
		"elapsed", time.Since(started).String(),
	)
}
