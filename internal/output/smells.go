package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/analyzer/smells"
)

// FileReport is the report of one analyzed file.
type FileReport struct {
	Path    string           `json:"path" toon:"path" yaml:"path"`
	Error   string           `json:"error,omitempty" toon:"error,omitempty" yaml:"error,omitempty"`
	Summary smells.Summary   `json:"summary" toon:"summary" yaml:"summary"`
	Smells  []smells.Finding `json:"smells" toon:"smells" yaml:"smells"`
}

// NewFileReport pairs a report with the path it was produced for.
func NewFileReport(path string, r *smells.Report) FileReport {
	return FileReport{
		Path:    path,
		Error:   r.Error,
		Summary: r.Summary,
		Smells:  r.Smells,
	}
}

// Report converts the file report back to a single-file report.
func (f FileReport) Report() *smells.Report {
	return &smells.Report{Error: f.Error, Summary: f.Summary, Smells: f.Smells}
}

// summaryLine reads "N lines, M smells", followed by a per-severity
// breakdown when there are findings.
func (f FileReport) summaryLine() string {
	line := fmt.Sprintf("%d lines, %d smells", f.Summary.TotalLines, f.Summary.TotalSmells)
	counts := f.Report().CountBySeverity()
	var parts []string
	for _, sev := range []smells.Severity{smells.SeverityHigh, smells.SeverityMedium, smells.SeverityLow} {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	if len(parts) == 0 {
		return line
	}
	return line + " (" + strings.Join(parts, ", ") + ")"
}

// SmellReport renders the reports of one or more files.
type SmellReport struct {
	Files []FileReport
}

// NewSmellReport creates a renderable over file reports.
func NewSmellReport(files ...FileReport) *SmellReport {
	return &SmellReport{Files: files}
}

// TotalSmells counts findings across all files.
func (s *SmellReport) TotalSmells() int {
	total := 0
	for _, f := range s.Files {
		total += f.Summary.TotalSmells
	}
	return total
}

// RenderData returns a bare report for a single file and a list otherwise,
// so single-file output matches the HTTP API exactly.
func (s *SmellReport) RenderData() any {
	if len(s.Files) == 1 {
		return s.Files[0].Report()
	}
	return BatchReport{Files: s.Files, TotalSmells: s.TotalSmells()}
}

// kindRows tallies findings per kind across files, most frequent first.
func (s *SmellReport) kindRows() [][]string {
	totals := make(map[smells.Kind]int)
	for _, f := range s.Files {
		for kind, n := range f.Report().CountByType() {
			totals[kind] += n
		}
	}
	kinds := make([]smells.Kind, 0, len(totals))
	for kind := range totals {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if totals[kinds[i]] != totals[kinds[j]] {
			return totals[kinds[i]] > totals[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})

	rows := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		rows = append(rows, []string{string(kind), strconv.Itoa(totals[kind])})
	}
	return rows
}

// BatchReport is the data shape of a multi-file report.
type BatchReport struct {
	Files       []FileReport `json:"files" toon:"files" yaml:"files"`
	TotalSmells int          `json:"totalSmells" toon:"totalSmells" yaml:"totalSmells"`
}

func (s *SmellReport) RenderText(w io.Writer, colored bool) error {
	for i, f := range s.Files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := f.Path
		if title == "" {
			title = "Code Smells"
		}
		if colored {
			color.New(color.Bold, color.FgCyan).Fprintln(w, title)
		} else {
			fmt.Fprintln(w, title)
		}
		fmt.Fprintln(w, strings.Repeat("=", len(title)))

		if f.Error != "" {
			if colored {
				color.New(color.FgRed).Fprintln(w, f.Error)
			} else {
				fmt.Fprintln(w, "ERROR: "+f.Error)
			}
			continue
		}

		fmt.Fprintf(w, "%s\n\n", f.summaryLine())
		if len(f.Smells) == 0 {
			continue
		}

		rows := make([][]string, 0, len(f.Smells))
		for _, sm := range f.Smells {
			severity := string(sm.Severity)
			if colored {
				severity = SeverityColor(severity, severity)
			}
			rows = append(rows, []string{severity, string(sm.Type), sm.Location, sm.Reason, string(sm.SuggestedRefactoring)})
		}
		table := NewTable("", []string{"Severity", "Type", "Location", "Reason", "Refactoring"}, rows, nil, nil)
		if err := table.RenderText(w, colored); err != nil {
			return err
		}
	}

	if len(s.Files) > 1 {
		fmt.Fprintf(w, "\n%d files, %d smells\n", len(s.Files), s.TotalSmells())
		if rows := s.kindRows(); len(rows) > 0 {
			fmt.Fprintln(w)
			return NewTable("", []string{"Type", "Count"}, rows, nil, nil).RenderText(w, colored)
		}
	}
	return nil
}

func (s *SmellReport) RenderMarkdown(w io.Writer) error {
	fmt.Fprint(w, "# Code Smell Report\n\n")
	for _, f := range s.Files {
		if f.Path != "" {
			fmt.Fprintf(w, "## %s\n\n", f.Path)
		}
		if f.Error != "" {
			fmt.Fprintf(w, "**Error:** %s\n\n", f.Error)
			continue
		}
		fmt.Fprintf(w, "%s\n\n", f.summaryLine())
		if len(f.Smells) == 0 {
			continue
		}

		rows := make([][]string, 0, len(f.Smells))
		for _, sm := range f.Smells {
			rows = append(rows, []string{
				string(sm.Severity),
				string(sm.Type),
				escapeMarkdown(sm.Location),
				escapeMarkdown(sm.Reason),
				string(sm.SuggestedRefactoring),
			})
		}
		table := NewTable("", []string{"Severity", "Type", "Location", "Reason", "Refactoring"}, rows, nil, nil)
		if err := table.RenderMarkdown(w); err != nil {
			return err
		}
	}

	if len(s.Files) > 1 {
		fmt.Fprintf(w, "## Summary\n\n%d files, %d smells\n\n", len(s.Files), s.TotalSmells())
		if rows := s.kindRows(); len(rows) > 0 {
			return NewTable("", []string{"Type", "Count"}, rows, nil, nil).RenderMarkdown(w)
		}
	}
	return nil
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// KindCatalog renders the recognised smell kinds.
type KindCatalog struct {
	Kinds []smells.KindInfo
}

// NewKindCatalog wraps the full catalog.
func NewKindCatalog() *KindCatalog {
	return &KindCatalog{Kinds: smells.Catalog()}
}

func (k *KindCatalog) table() *Table {
	rows := make([][]string, 0, len(k.Kinds))
	for _, info := range k.Kinds {
		detected := "yes"
		if !info.Detected {
			detected = "no"
		}
		rows = append(rows, []string{string(info.Kind), string(info.Family), string(info.Refactoring), detected})
	}
	return NewTable("Smell Kinds", []string{"Kind", "Family", "Refactoring", "Detected"}, rows, nil, k.Kinds)
}

func (k *KindCatalog) RenderData() any { return k.Kinds }

func (k *KindCatalog) RenderText(w io.Writer, colored bool) error {
	return k.table().RenderText(w, colored)
}

func (k *KindCatalog) RenderMarkdown(w io.Writer) error {
	return k.table().RenderMarkdown(w)
}
