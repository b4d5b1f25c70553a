package server

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport"
)

// Serve registers the tools with an MCP server on the given transport,
// and blocks serving tool calls until ctx is done.
// The tools/call requests without arguments are served with empty arguments.
func Serve(ctx context.Context, tr transport.Transport, reg *Registry, opts ...mcp.ServerOptions) error {
	srv := mcp.NewServer(withDefaultArguments(tr), opts...)
	if err := reg.RegisterMCP(srv); err != nil {
		return err
	}
	if err := srv.Serve(); err != nil {
		return errors.Wrap(err, "failed to start MCP server")
	}

	logger.ContextKV(ctx, xlog.INFO,
		"status", "serving",
		"tools", reg.Names(),
	)

	<-ctx.Done()

	logger.KV(xlog.INFO, "status", "stopping")
	if err := tr.Close(); err != nil {
		logger.KV(xlog.DEBUG, "reason", "close", "err", err.Error())
	}
	return nil
}
