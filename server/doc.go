// Package server holds the registry of the tools exposed by the process,
// and hosts them on an MCP server.
//
// The registry is built once at start, maps a tool name to its handler and
// parameters schema, and is read-only afterwards, so it is safe for
// concurrent tool calls.
package server
