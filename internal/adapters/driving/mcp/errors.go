// Package mcp provides an MCP (Model Context Protocol) server adapter for
// ncosearch. It lets AI assistants look up NCO-2015 job codes through the
// same services the CLI and TUI use.
package mcp

import "errors"

// ErrMissingSearchSession is returned when the search session is not provided.
var ErrMissingSearchSession = errors.New("mcp: search session is required")

// errEmptyQuery is returned by the search tool for blank queries.
var errEmptyQuery = errors.New("query must not be empty")
