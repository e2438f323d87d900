package smells

import (
	"context"
	"fmt"
	"slices"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/parser"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/source"
)

// detectorFunc is one family of heuristics. It must not retain the unit.
type detectorFunc func(*source.Unit, Thresholds) []Finding

var detectors = map[Family]detectorFunc{
	FamilyBloaters:     detectBloaters,
	FamilyOOAbusers:    detectOOAbusers,
	FamilyDispensables: detectDispensables,
	FamilyCouplers:     detectCouplers,
}

// Analyzer detects code smells in a single Java compilation unit.
// Configuration is fixed at construction; this analyzer is safe for
// concurrent use.
type Analyzer struct {
	thresholds Thresholds
	families   []Family
	logger     *zap.Logger
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithThresholds sets custom detection thresholds. Non-positive values fall
// back to their defaults.
func WithThresholds(thresholds Thresholds) Option {
	return func(a *Analyzer) {
		a.thresholds = thresholds
	}
}

// WithLogger sets the logger used to report detector faults.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithFamilies restricts analysis to the given families. Findings are still
// reported in the standard family order.
func WithFamilies(families ...Family) Option {
	return func(a *Analyzer) {
		a.families = families
	}
}

// New creates a new smell analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		thresholds: DefaultThresholds(),
		families:   Families(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.thresholds = a.thresholds.withDefaults()

	enabled := make([]Family, 0, len(detectors))
	for _, f := range Families() {
		if slices.Contains(a.families, f) {
			enabled = append(enabled, f)
		}
	}
	a.families = enabled
	return a
}

// Thresholds returns the limits this analyzer was built with.
func (a *Analyzer) Thresholds() Thresholds {
	return a.thresholds
}

// AnalyzeString is Analyze for source held in a string.
func (a *Analyzer) AnalyzeString(ctx context.Context, src string) *Report {
	return a.Analyze(ctx, []byte(src))
}

// Analyze parses src and runs every enabled family over it.
//
// It never returns an error: input that cannot be parsed yields an error
// report, and a family that panics contributes no findings.
func (a *Analyzer) Analyze(ctx context.Context, src []byte) *Report {
	totalLines := len(source.SplitLines(string(src)))

	unit, err := a.load(ctx, src)
	if err != nil {
		if parser.IsSyntaxError(err) {
			return NewErrorReport("Syntax Error: "+err.Error(), totalLines)
		}
		return NewErrorReport("Parsing Error: "+err.Error(), totalLines)
	}
	defer unit.Close()

	report := NewReport(totalLines)
	for _, family := range a.families {
		report.Add(a.runFamily(family, unit)...)
	}
	return report
}

// load parses the source and builds its declaration views.
func (a *Analyzer) load(ctx context.Context, src []byte) (*source.Unit, error) {
	var (
		unit *source.Unit
		err  error
	)
	var pc panics.Catcher
	pc.Try(func() {
		p := parser.New()
		defer p.Close()

		var result *parser.ParseResult
		result, err = p.Parse(ctx, src)
		if err != nil {
			return
		}
		defer func() {
			if unit == nil {
				result.Close()
			}
		}()
		unit = source.NewUnit(result)
	})
	if r := pc.Recovered(); r != nil {
		a.logger.Error("parser panicked", zap.Any("panic", r.Value))
		return nil, fmt.Errorf("parser failure: %w", r.AsError())
	}
	return unit, err
}

// runFamily isolates a family so that a fault degrades to no findings.
func (a *Analyzer) runFamily(family Family, unit *source.Unit) []Finding {
	detect, ok := detectors[family]
	if !ok {
		return nil
	}

	var findings []Finding
	var pc panics.Catcher
	pc.Try(func() {
		findings = detect(unit, a.thresholds)
	})
	if r := pc.Recovered(); r != nil {
		a.logger.Warn("smell family failed",
			zap.String("family", string(family)),
			zap.Any("panic", r.Value),
			zap.ByteString("stack", r.Stack),
		)
		return nil
	}
	return findings
}
