// Package mcp exposes the documentation index to AI assistants over the
// Model Context Protocol: search and overview tools plus a usage guide
// resource.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ShawnKyzer/docsearch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "1.1.0"

// ErrMissingIndex is returned when no search index is provided.
var ErrMissingIndex = errors.New("mcp: search index is required")

// Server is the MCP server surface over a documentation index.
type Server struct {
	index  docsearch.Index
	server *mcp.Server
}

// NewServer creates a new MCP server backed by the given index.
func NewServer(index docsearch.Index) (*Server, error) {
	if index == nil {
		return nil, ErrMissingIndex
	}

	impl := &mcp.Implementation{
		Name:    "docsearch",
		Version: Version,
	}

	s := &Server{
		index:  index,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
