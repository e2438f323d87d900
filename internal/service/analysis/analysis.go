// Package analysis runs the smell analyzer over sources and files, with
// caching and bounded concurrency for batch runs.
package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/cache"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/fileproc"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/output"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/analyzer/smells"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/source"
)

// Service orchestrates smell analysis.
type Service struct {
	config   *config.Config
	cache    *cache.Cache
	logger   *zap.Logger
	workers  int
	source   source.ContentSource
	analyzer *smells.Analyzer
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithCache enables report caching.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSource sets where AnalyzeFile reads content from. Defaults to the
// filesystem.
func WithSource(src source.ContentSource) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithWorkers bounds concurrency for AnalyzeFiles.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

// New creates a new analysis service. Without WithConfig the configuration
// is discovered with config.LoadOrDefault.
func New(opts ...Option) *Service {
	s := &Service{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = config.LoadOrDefault()
	}
	if s.source == nil {
		s.source = source.NewFilesystem()
	}
	s.analyzer = smells.New(
		smells.WithThresholds(s.config.Thresholds),
		smells.WithLogger(s.logger),
	)
	return s
}

// Config returns the configuration in effect.
func (s *Service) Config() *config.Config {
	return s.config
}

// Thresholds returns the detection limits in effect.
func (s *Service) Thresholds() smells.Thresholds {
	return s.analyzer.Thresholds()
}

// AnalyzeSource analyzes one compilation unit, consulting the cache first.
func (s *Service) AnalyzeSource(ctx context.Context, src []byte) *smells.Report {
	var key string
	if s.cache != nil && s.cache.Enabled() {
		key = cache.Key(src, s.analyzer.Thresholds())
		if r, ok := s.cache.Get(key); ok {
			return r
		}
	}

	report := s.analyzer.Analyze(ctx, src)

	// A cancelled parse yields an error report that must not be remembered.
	if key != "" && ctx.Err() == nil {
		if err := s.cache.Put(key, report); err != nil {
			s.logger.Warn("failed to cache report", zap.Error(err))
		}
	}
	return report
}

// AnalyzeFile reads and analyzes a single file.
func (s *Service) AnalyzeFile(ctx context.Context, path string) (output.FileReport, error) {
	src, err := s.source.Read(path)
	if err != nil {
		return output.FileReport{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return output.NewFileReport(path, s.AnalyzeSource(ctx, src)), nil
}

// AnalyzeFiles analyzes files concurrently. The result has one report per
// input file in input order; unreadable files carry a "Read Error" report.
// The error is non-nil only when ctx was cancelled.
func (s *Service) AnalyzeFiles(ctx context.Context, files []string, onProgress func()) ([]output.FileReport, error) {
	opts := []fileproc.Option{fileproc.WithWorkers(s.workers)}
	if onProgress != nil {
		opts = append(opts, fileproc.WithProgress(onProgress))
	}

	reports, errs := fileproc.MapFiles(ctx, files, s.AnalyzeFile, opts...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if errs != nil {
		failed := make(map[string]error, len(errs.Errors))
		for _, pe := range errs.Errors {
			s.logger.Warn("unreadable file", zap.String("path", pe.Path), zap.Error(pe.Err))
			failed[pe.Path] = pe.Err
		}
		for i, path := range files {
			if err, ok := failed[path]; ok {
				reports[i] = output.NewFileReport(path, smells.NewErrorReport("Read Error: "+err.Error(), 0))
			}
		}
	}
	return reports, nil
}
