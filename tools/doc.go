// Package tools defines the tool interfaces exposed to MCP clients, including parameter schema and MCP registration.
package tools
