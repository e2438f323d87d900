package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/scanner"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/service/analysis"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
)

// Server wraps the MCP server and registers the jsmell tools.
type Server struct {
	server  *mcp.Server
	config  *config.Config
	service *analysis.Service
	scanner *scanner.Scanner
	logger  *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithService sets the analysis service. Its configuration also drives
// path scanning and the source size limit.
func WithService(svc *analysis.Service) Option {
	return func(s *Server) {
		s.service = svc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP server with all jsmell tools registered.
func NewServer(version string, opts ...Option) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.service == nil {
		s.service = analysis.New(analysis.WithLogger(s.logger))
	}
	s.config = s.service.Config()
	s.scanner = scanner.NewScanner(s.config)

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "jsmell",
			Version: version,
		},
		nil,
	)
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.String("transport", "stdio"))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_smells",
		Description: describeAnalyzeSmells(),
	}, s.handleAnalyzeSmells)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_smell_kinds",
		Description: describeListSmellKinds(),
	}, s.handleListSmellKinds)
}
