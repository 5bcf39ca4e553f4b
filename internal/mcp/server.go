// ABOUTME: MCP server setup for the liftlog workout tracker.
// ABOUTME: Wraps MCP server with storage, the exercise catalog, and one live session.
package mcp

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/harperreed/liftlog/internal/catalog"
	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/session"
	"github.com/harperreed/liftlog/internal/storage"
)

// Server wraps the MCP server with storage access. Tool calls may arrive
// concurrently, so the live session is guarded by mu.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	catalog   *catalog.Cache
	clock     clock.Clock
	logger    zerolog.Logger

	mu      sync.Mutex
	session *session.Session
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used by the live session.
func WithClock(c clock.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithLogger sets the server logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l.With().Str("component", "mcp").Logger() }
}

// WithCatalog shares an existing catalog cache.
func WithCatalog(c *catalog.Cache) Option {
	return func(s *Server) { s.catalog = c }
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "liftlog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		clock:     clock.Real{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.NewCache(repo, 0, s.logger)
	}
	s.session = session.New(s.clock, session.WithLogger(s.logger))

	s.registerTools()
	s.registerSessionTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info().Msg("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
