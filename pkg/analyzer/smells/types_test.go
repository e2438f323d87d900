package smells

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Add(t *testing.T) {
	r := NewReport(12)
	assert.NotNil(t, r.Smells)
	assert.Equal(t, 0, r.Summary.TotalSmells)

	r.Add(Finding{Type: KindLazyClass, Severity: SeverityLow})
	r.Add(Finding{Type: KindDeadCode, Severity: SeverityMedium}, Finding{Type: KindDeadCode, Severity: SeverityMedium})
	assert.Equal(t, 3, r.Summary.TotalSmells)
	assert.Equal(t, 12, r.Summary.TotalLines)
	assert.Equal(t, 2, r.CountByType()[KindDeadCode])
	assert.Equal(t, 1, r.CountBySeverity()[SeverityLow])
	assert.True(t, r.HasSeverityAtLeast(SeverityMedium))
	assert.False(t, r.HasSeverityAtLeast(SeverityHigh))
}

func TestReport_ErrorReportIgnoresFindings(t *testing.T) {
	r := NewErrorReport("Syntax Error: boom", 3)
	r.Add(Finding{Type: KindLazyClass})
	assert.True(t, r.IsError())
	assert.Empty(t, r.Smells)
	assert.Equal(t, 0, r.Summary.TotalSmells)
}

func TestReport_JSONShape(t *testing.T) {
	data, err := json.Marshal(NewErrorReport("Syntax Error: x", 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Syntax Error: x","summary":{"totalLines":2,"totalSmells":0},"smells":[]}`, string(data))

	ok := NewReport(1)
	ok.Add(Finding{
		Type:                 KindDeadCode,
		Location:             "helper()",
		Severity:             SeverityMedium,
		Reason:               "Private method is never called within the file",
		SuggestedRefactoring: RefactorInlineOrDelete,
	})
	data, err = json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"summary": {"totalLines": 1, "totalSmells": 1},
		"smells": [{
			"type": "Dead Code",
			"location": "helper()",
			"severity": "Medium",
			"reason": "Private method is never called within the file",
			"suggestedRefactoring": "Inline Method / Delete Code"
		}]
	}`, string(data))
}

func compileReportSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(ReportSchema))
	require.NoError(t, err)

	c := jsonschema.NewCompiler()
	require.NoError(t, c.AddResource("report.json", doc))
	schema, err := c.Compile("report.json")
	require.NoError(t, err)
	return schema
}

func TestReportSchema_ValidatesReports(t *testing.T) {
	schema := compileReportSchema(t)

	inputs := []string{
		methodWithStatements(90),
		`class Tiny { int x; private void a(String x, String y, int z) {} private void b(int p, String q, String r) {} }`,
		"class {",
		"",
	}
	for _, src := range inputs {
		report := New().AnalyzeString(context.Background(), src)
		data, err := json.Marshal(report)
		require.NoError(t, err)

		inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		require.NoError(t, err)
		assert.NoError(t, schema.Validate(inst), string(data))
	}
}

func TestReportSchema_RejectsInconsistentErrorReport(t *testing.T) {
	schema := compileReportSchema(t)

	bad := `{"error":"x","summary":{"totalLines":1,"totalSmells":1},"smells":[{"type":"Dead Code","location":"a()","severity":"Medium","reason":"r","suggestedRefactoring":"s"}]}`
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(bad))
	require.NoError(t, err)
	assert.Error(t, schema.Validate(inst))
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())

	th := DefaultThresholds()
	th.SwitchCases = 0
	err := th.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "switch_cases")
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("high")
	require.NoError(t, err)
	assert.Equal(t, SeverityHigh, s)

	_, err = ParseSeverity("critical")
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	assert.Len(t, catalog, 15)

	undetected := 0
	for _, info := range catalog {
		if !info.Detected {
			undetected++
			assert.Equal(t, FamilyCouplers, info.Family)
		}
	}
	assert.Equal(t, 2, undetected)
}
