package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/output"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/service/analysis"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/testutil"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/analyzer/smells"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	return NewServer("1.0.0-test", WithService(analysis.New(analysis.WithConfig(cfg))))
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", result.Content[0])
	return text.Text
}

func TestServerCreation(t *testing.T) {
	server := newTestServer(t)
	if server.server == nil {
		t.Fatal("NewServer().server is nil")
	}
	if server.config.Server.MaxLines != 500 {
		t.Errorf("MaxLines = %d, want 500", server.config.Server.MaxLines)
	}
}

func TestServerCreationEmptyVersion(t *testing.T) {
	server := NewServer("")
	if server == nil {
		t.Fatal("NewServer(\"\") returned nil")
	}
}

func TestToolDescriptions(t *testing.T) {
	descriptions := map[string]func() string{
		"analyze_smells":   describeAnalyzeSmells,
		"list_smell_kinds": describeListSmellKinds,
	}

	for name, fn := range descriptions {
		t.Run(name, func(t *testing.T) {
			desc := fn()
			for _, section := range []string{"USE WHEN:", "INTERPRETING RESULTS:", "METRICS RETURNED:"} {
				if !strings.Contains(desc, section) {
					t.Errorf("%s description missing %s section", name, section)
				}
			}
		})
	}
}

func TestGetPaths(t *testing.T) {
	assert.Equal(t, []string{"."}, getPaths(nil))
	assert.Equal(t, []string{"a.java"}, getPaths([]string{"a.java"}))
}

func TestGetFormat(t *testing.T) {
	tests := []struct {
		in   string
		want output.Format
	}{
		{"", output.FormatTOON},
		{"toon", output.FormatTOON},
		{"json", output.FormatJSON},
		{"JSON", output.FormatJSON},
		{"markdown", output.FormatMarkdown},
		{"md", output.FormatMarkdown},
		{"bogus", output.FormatTOON},
	}
	for _, tt := range tests {
		if got := getFormat(tt.in); got != tt.want {
			t.Errorf("getFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToolError(t *testing.T) {
	result, structured, err := toolError("boom")
	require.NoError(t, err)
	assert.Nil(t, structured)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: boom", resultText(t, result))
}

func TestToolResultFormats(t *testing.T) {
	report := output.NewSmellReport(output.NewFileReport("", smells.NewReport(3)))

	result, _, err := toolResult(report, output.FormatJSON)
	require.NoError(t, err)
	var decoded smells.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	assert.Equal(t, 3, decoded.Summary.TotalLines)

	result, _, err = toolResult(report, output.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "# Code Smell Report")

	result, _, err = toolResult(report, output.FormatTOON)
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "totalLines")
}

func TestHandleAnalyzeSmellsSource(t *testing.T) {
	s := newTestServer(t)

	result, _, err := s.handleAnalyzeSmells(context.Background(), nil, AnalyzeSmellsInput{
		SourceCode: testutil.LongParameterClass,
		Format:     "json",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report smells.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.Equal(t, 1, report.Summary.TotalSmells)
	require.Len(t, report.Smells, 1)
	assert.Equal(t, smells.KindLongParameterList, report.Smells[0].Type)
	assert.Equal(t, "place()", report.Smells[0].Location)
}

func TestHandleAnalyzeSmellsSyntaxError(t *testing.T) {
	s := newTestServer(t)

	result, _, err := s.handleAnalyzeSmells(context.Background(), nil, AnalyzeSmellsInput{
		SourceCode: testutil.BrokenClass,
		Format:     "json",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError, "a syntax error is a report, not a tool failure")

	var report smells.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.True(t, strings.HasPrefix(report.Error, "Syntax Error"), "error = %q", report.Error)
	assert.Empty(t, report.Smells)
}

func TestHandleAnalyzeSmellsWhitespaceSource(t *testing.T) {
	s := newTestServer(t)

	result, _, err := s.handleAnalyzeSmells(context.Background(), nil, AnalyzeSmellsInput{SourceCode: "  \n\t"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: source code cannot be empty", resultText(t, result))
}

func TestHandleAnalyzeSmellsTooManyLines(t *testing.T) {
	s := newTestServer(t)

	result, _, err := s.handleAnalyzeSmells(context.Background(), nil, AnalyzeSmellsInput{
		SourceCode: testutil.Lines(501),
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: source code exceeds 500 lines limit", resultText(t, result))

	result, _, err = s.handleAnalyzeSmells(context.Background(), nil, AnalyzeSmellsInput{
		SourceCode: testutil.Lines(500),
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestHandleAnalyzeSmellsPaths(t *testing.T) {
	s := newTestServer(t)
	dir := t.TempDir()
	testutil.CreateFileTree(t, dir, map[string]string{
		"src/Greeter.java": testutil.CleanClass,
		"src/Orders.java":  testutil.LongParameterClass,
		"README.md":        "# not java",
	})

	result, _, err := s.handleAnalyzeSmells(context.Background(), nil, AnalyzeSmellsInput{
		Paths:  []string{dir},
		Format: "json",
	})
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var batch struct {
		Files []struct {
			Path    string         `json:"path"`
			Summary smells.Summary `json:"summary"`
		} `json:"files"`
		TotalSmells int `json:"totalSmells"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &batch))
	require.Len(t, batch.Files, 2)
	assert.Equal(t, 1, batch.TotalSmells)
	assert.Equal(t, "Greeter.java", filepath.Base(batch.Files[0].Path))
	assert.Equal(t, 0, batch.Files[0].Summary.TotalSmells)
	assert.Equal(t, 1, batch.Files[1].Summary.TotalSmells)
}

func TestHandleAnalyzeSmellsNoJavaFiles(t *testing.T) {
	s := newTestServer(t)
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "notes.txt"), "nothing here")

	result, _, err := s.handleAnalyzeSmells(context.Background(), nil, AnalyzeSmellsInput{Paths: []string{dir}})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: no Java files found", resultText(t, result))
}

func TestHandleAnalyzeSmellsMissingPath(t *testing.T) {
	s := newTestServer(t)

	result, _, err := s.handleAnalyzeSmells(context.Background(), nil, AnalyzeSmellsInput{
		Paths: []string{filepath.Join(t.TempDir(), "missing")},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleListSmellKinds(t *testing.T) {
	s := newTestServer(t)

	result, _, err := s.handleListSmellKinds(context.Background(), nil, ListSmellKindsInput{Format: "json"})
	require.NoError(t, err)
	var kinds []smells.KindInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &kinds))
	assert.Len(t, kinds, 15)

	result, _, err = s.handleListSmellKinds(context.Background(), nil, ListSmellKindsInput{Family: "Couplers", Format: "json"})
	require.NoError(t, err)
	kinds = nil
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &kinds))
	require.Len(t, kinds, 3)
	for _, k := range kinds {
		assert.Equal(t, smells.FamilyCouplers, k.Family)
	}
}

func TestHandleListSmellKindsUnknownFamily(t *testing.T) {
	s := newTestServer(t)

	result, _, err := s.handleListSmellKinds(context.Background(), nil, ListSmellKindsInput{Family: "smellers"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: unknown family: smellers", resultText(t, result))
}

func TestParseFrontmatter(t *testing.T) {
	content := []byte("---\ndescription: Review a class\narguments:\n  - name: path\n    description: file to review\n    required: true\n---\nLook at {{path}}.\n")

	fm, body := parseFrontmatter(content)
	assert.Equal(t, "Review a class", fm.Description)
	require.Len(t, fm.Arguments, 1)
	assert.Equal(t, "path", fm.Arguments[0].Name)
	assert.True(t, fm.Arguments[0].Required)
	assert.Equal(t, "Look at {{path}}.\n", body)
}

func TestParseFrontmatterMissing(t *testing.T) {
	fm, body := parseFrontmatter([]byte("just a body"))
	assert.Empty(t, fm.Description)
	assert.Equal(t, "just a body", body)

	fm, body = parseFrontmatter([]byte("---\ndescription: unterminated\n"))
	assert.Empty(t, fm.Description)
	assert.Equal(t, "---\ndescription: unterminated\n", body)
}

func TestSubstituteArgs(t *testing.T) {
	args := []promptArgument{
		{Name: "path", Description: "file"},
		{Name: "dir", Description: "directory"},
	}
	got := substituteArgs("{{path}} in {{dir}}", args, map[string]string{"path": "A.java"})
	assert.Equal(t, "A.java in <directory>", got)
}

func TestMakePromptHandler(t *testing.T) {
	fm := promptFrontmatter{
		Description: "desc",
		Arguments:   []promptArgument{{Name: "path", Description: "file"}},
	}
	handler := makePromptHandler(fm, "Review {{path}}")

	result, err := handler(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: "review", Arguments: map[string]string{"path": "Orders.java"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "desc", result.Description)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.Role("user"), result.Messages[0].Role)
	text, ok := result.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Review Orders.java", text.Text)
}

func TestEmbeddedPrompts(t *testing.T) {
	entries, err := promptFiles.ReadDir("prompts")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		content, err := promptFiles.ReadFile("prompts/" + entry.Name())
		require.NoError(t, err)
		fm, body := parseFrontmatter(content)
		assert.NotEmpty(t, fm.Description, "%s has no description", entry.Name())
		assert.NotEmpty(t, fm.Arguments, "%s has no arguments", entry.Name())
		for _, arg := range fm.Arguments {
			assert.Contains(t, body, "{{"+arg.Name+"}}", "%s never uses %s", entry.Name(), arg.Name)
		}
	}
}

func TestGenerateManifest(t *testing.T) {
	data, err := GenerateManifest("1.2.3")
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "io.github.syedumais05/jsmell", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	require.Len(t, m.Packages, 1)
	assert.Equal(t, "ghcr.io/syedumais05/jsmell:1.2.3", m.Packages[0].Identifier)
	assert.Equal(t, "stdio", m.Packages[0].Transport.Type)
	require.Len(t, m.Packages[0].PackageArguments, 1)
	assert.Equal(t, "mcp", m.Packages[0].PackageArguments[0].Value)
}

func TestGenerateManifestDefaultVersion(t *testing.T) {
	data, err := GenerateManifest("")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "0.0.0"`)
}

func TestGenerateManifestEnvironment(t *testing.T) {
	data, err := GenerateManifest("1.0.0")
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	var names []string
	for _, env := range m.Packages[0].EnvironmentVariables {
		names = append(names, env.Name)
		assert.False(t, env.IsRequired, env.Name)
	}
	assert.Equal(t, []string{"JSMELL_CONFIG", "JSMELL_LOG__LEVEL"}, names)
}
