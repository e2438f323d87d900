package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/analyzer/smells"
)

func sampleReport() *smells.Report {
	r := smells.NewReport(42)
	r.Add(smells.Finding{
		Type:                 smells.KindLongParameterList,
		Location:             "create()",
		Severity:             smells.SeverityMedium,
		Reason:               "Method has 6 parameters (threshold: 5)",
		SuggestedRefactoring: smells.RefactorIntroduceParameterObj,
	}, smells.Finding{
		Type:                 smells.KindDeadCode,
		Location:             "unused()",
		Severity:             smells.SeverityLow,
		Reason:               "Private method 'unused' is never called",
		SuggestedRefactoring: smells.RefactorInlineOrDelete,
	})
	return r
}

func TestNewFileReport(t *testing.T) {
	fr := NewFileReport("src/A.java", sampleReport())
	assert.Equal(t, "src/A.java", fr.Path)
	assert.Equal(t, 42, fr.Summary.TotalLines)
	assert.Equal(t, 2, fr.Summary.TotalSmells)
	assert.Len(t, fr.Smells, 2)
}

func TestSmellReport_SingleFileDataIsBareReport(t *testing.T) {
	sr := NewSmellReport(NewFileReport("", sampleReport()))

	var buf bytes.Buffer
	require.NoError(t, NewWriterFormatter(FormatJSON, &buf, false).Output(sr))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "smells")
	assert.NotContains(t, decoded, "files")
	assert.NotContains(t, decoded, "error")
}

func TestSmellReport_MultiFileData(t *testing.T) {
	sr := NewSmellReport(
		NewFileReport("A.java", sampleReport()),
		NewFileReport("B.java", smells.NewErrorReport("Syntax Error: unexpected token at line 2, column 5", 3)),
	)
	assert.Equal(t, 2, sr.TotalSmells())

	data, ok := sr.RenderData().(BatchReport)
	require.True(t, ok)
	assert.Equal(t, 2, data.TotalSmells)
	require.Len(t, data.Files, 2)
	assert.Equal(t, "B.java", data.Files[1].Path)
	assert.NotEmpty(t, data.Files[1].Error)
	assert.Empty(t, data.Files[1].Smells)
}

func TestSmellReport_RenderText(t *testing.T) {
	sr := NewSmellReport(
		NewFileReport("A.java", sampleReport()),
		NewFileReport("B.java", smells.NewErrorReport("Parsing Error: boom", 1)),
	)

	var buf bytes.Buffer
	require.NoError(t, sr.RenderText(&buf, false))

	output := buf.String()
	for _, want := range []string{
		"A.java",
		"42 lines, 2 smells (1 Medium, 1 Low)",
		"SEVERITY",
		"Long Parameter List",
		"create()",
		"Introduce Parameter Object",
		"ERROR: Parsing Error: boom",
		"2 files, 2 smells",
	} {
		assert.Contains(t, output, want)
	}
}

func TestSmellReport_RenderMarkdown(t *testing.T) {
	r := smells.NewReport(5)
	r.Add(smells.Finding{
		Type:                 smells.KindDuplicateCode,
		Location:             "Lines near 4",
		Severity:             smells.SeverityMedium,
		Reason:               "a | b",
		SuggestedRefactoring: smells.RefactorExtractMethod,
	})
	sr := NewSmellReport(NewFileReport("C.java", r))

	var buf bytes.Buffer
	require.NoError(t, sr.RenderMarkdown(&buf))

	output := buf.String()
	assert.Contains(t, output, "# Code Smell Report")
	assert.Contains(t, output, "## C.java")
	assert.Contains(t, output, "| Severity | Type | Location | Reason | Refactoring |")
	assert.Contains(t, output, `a \| b`)
}

func TestSmellReport_KindTotals(t *testing.T) {
	second := smells.NewReport(7)
	second.Add(smells.Finding{
		Type:                 smells.KindDeadCode,
		Location:             "gone()",
		Severity:             smells.SeverityLow,
		Reason:               "Private method 'gone' is never called",
		SuggestedRefactoring: smells.RefactorInlineOrDelete,
	})
	sr := NewSmellReport(NewFileReport("A.java", sampleReport()), NewFileReport("B.java", second))

	assert.Equal(t, [][]string{
		{string(smells.KindDeadCode), "2"},
		{string(smells.KindLongParameterList), "1"},
	}, sr.kindRows())

	var buf bytes.Buffer
	require.NoError(t, sr.RenderMarkdown(&buf))
	assert.Contains(t, buf.String(), "## Summary\n\n2 files, 3 smells")
	assert.Contains(t, buf.String(), "| Dead Code | 2 |")
	assert.Contains(t, buf.String(), "7 lines, 1 smells (1 Low)")

	buf.Reset()
	require.NoError(t, sr.RenderText(&buf, false))
	assert.Contains(t, buf.String(), "2 files, 3 smells")
	assert.Contains(t, buf.String(), "COUNT")
}

func TestSmellReport_SingleFileHasNoTotals(t *testing.T) {
	sr := NewSmellReport(NewFileReport("A.java", smells.NewReport(3)))

	var buf bytes.Buffer
	require.NoError(t, sr.RenderMarkdown(&buf))
	assert.Contains(t, buf.String(), "3 lines, 0 smells\n")
	assert.NotContains(t, buf.String(), "## Summary")
}

func TestSmellReport_TOON(t *testing.T) {
	sr := NewSmellReport(NewFileReport("", sampleReport()))

	var buf bytes.Buffer
	require.NoError(t, NewWriterFormatter(FormatTOON, &buf, false).Output(sr))
	assert.Contains(t, buf.String(), "totalSmells: 2")
	assert.Contains(t, buf.String(), "Dead Code")
}

func TestKindCatalog(t *testing.T) {
	catalog := NewKindCatalog()
	require.Len(t, catalog.Kinds, 15)

	var buf bytes.Buffer
	require.NoError(t, catalog.RenderText(&buf, false))
	assert.Contains(t, buf.String(), "Feature Envy")
	assert.Contains(t, buf.String(), "oo_abusers")

	buf.Reset()
	require.NoError(t, catalog.RenderMarkdown(&buf))
	assert.Contains(t, buf.String(), "| Middle Man | couplers | Remove Middle Man | no |")
}
