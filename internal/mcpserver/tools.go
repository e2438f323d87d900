package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/output"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/analyzer/smells"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/source"
)

// AnalyzeSmellsInput is the input of analyze_smells.
type AnalyzeSmellsInput struct {
	SourceCode string   `json:"source_code,omitempty" jsonschema:"Java source of one compilation unit. Takes precedence over paths."`
	Paths      []string `json:"paths,omitempty" jsonschema:"Java files or directories to analyze. Defaults to the current directory."`
	Format     string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// ListSmellKindsInput is the input of list_smell_kinds.
type ListSmellKindsInput struct {
	Family string `json:"family,omitempty" jsonschema:"Only list kinds of this family: bloaters, oo_abusers, dispensables, or couplers."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

func getPaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{"."}
	}
	return paths
}

func getFormat(format string) output.Format {
	switch strings.ToLower(format) {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data output.Renderable, format output.Format) (string, error) {
	switch format {
	case output.FormatJSON:
		out, err := json.MarshalIndent(data.RenderData(), "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	case output.FormatMarkdown:
		var buf bytes.Buffer
		if err := data.RenderMarkdown(&buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return output.MarshalTOON(data.RenderData())
	}
}

func toolResult(data output.Renderable, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) handleAnalyzeSmells(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeSmellsInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.Format)

	if input.SourceCode != "" {
		if strings.TrimSpace(input.SourceCode) == "" {
			return toolError("source code cannot be empty")
		}
		if n := len(source.SplitLines(input.SourceCode)); n > s.config.Server.MaxLines {
			return toolError(fmt.Sprintf("source code exceeds %d lines limit", s.config.Server.MaxLines))
		}
		report := s.service.AnalyzeSource(ctx, []byte(input.SourceCode))
		return toolResult(output.NewSmellReport(output.NewFileReport("", report)), format)
	}

	files, err := s.scanner.ScanPaths(getPaths(input.Paths))
	if err != nil {
		return toolError(err.Error())
	}
	if len(files) == 0 {
		return toolError("no Java files found")
	}

	reports, err := s.service.AnalyzeFiles(ctx, files, nil)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(output.NewSmellReport(reports...), format)
}

func (s *Server) handleListSmellKinds(ctx context.Context, req *mcp.CallToolRequest, input ListSmellKindsInput) (*mcp.CallToolResult, any, error) {
	catalog := output.NewKindCatalog()
	if input.Family != "" {
		family := smells.Family(strings.ToLower(input.Family))
		var kinds []smells.KindInfo
		for _, k := range catalog.Kinds {
			if k.Family == family {
				kinds = append(kinds, k)
			}
		}
		if len(kinds) == 0 {
			return toolError("unknown family: " + input.Family)
		}
		catalog.Kinds = kinds
	}
	return toolResult(catalog, getFormat(input.Format))
}
