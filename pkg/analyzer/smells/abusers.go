package smells

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/source"
)

// detectOOAbusers finds incomplete or incorrect use of object-oriented design.
func detectOOAbusers(u *source.Unit, t Thresholds) []Finding {
	var findings []Finding

	for _, sw := range u.Switches() {
		if f, ok := switchStatement(sw, t); ok {
			findings = append(findings, f)
		}
	}

	findings = append(findings, temporaryFields(u.Classes(), u.Methods())...)

	for _, m := range u.Methods() {
		if f, ok := refusedBequest(m); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func switchStatement(sw source.Switch, t Thresholds) (Finding, bool) {
	if sw.Cases <= t.SwitchCases {
		return Finding{}, false
	}
	return Finding{
		Type:                 KindSwitchStatements,
		Location:             fmt.Sprintf("Line %d", sw.Line),
		Severity:             SeverityMedium,
		Reason:               fmt.Sprintf("Switch statement has %d cases (threshold: %d)", sw.Cases, t.SwitchCases),
		SuggestedRefactoring: RefactorReplaceConditional,
	}, true
}

// temporaryFields reports fields referenced by exactly one non-accessor
// method. Field names are collected across every class in the file and
// matched against method references by bare name.
func temporaryFields(classes []*source.Class, methods []*source.Method) []Finding {
	var fields []string
	seen := make(map[string]bool)
	for _, c := range classes {
		for _, name := range c.FieldNames() {
			if name != "" && !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
		}
	}

	var findings []Finding
	for _, field := range fields {
		var users []string
		for _, m := range methods {
			if IsAccessorName(m.Name) || !m.References(field) {
				continue
			}
			if !slices.Contains(users, m.Name) {
				users = append(users, m.Name)
			}
		}
		if len(users) != 1 {
			continue
		}
		findings = append(findings, Finding{
			Type:                 KindTemporaryField,
			Location:             fmt.Sprintf("Field '%s'", field),
			Severity:             SeverityLow,
			Reason:               fmt.Sprintf("Field used mainly in single method '%s'", users[0]),
			SuggestedRefactoring: RefactorExtractClass,
		})
	}
	return findings
}

const unsupportedOperation = "UnsupportedOperationException"

// refusedBequest flags methods declaring that they throw
// UnsupportedOperationException. A body consisting of a single throw
// statement is a weaker signal that needs the thrown type resolved, so it
// is not classified.
func refusedBequest(m *source.Method) (Finding, bool) {
	for _, name := range m.Throws {
		if name == unsupportedOperation || strings.HasSuffix(name, "."+unsupportedOperation) {
			return Finding{
				Type:                 KindRefusedBequest,
				Location:             methodLocation(m.Name),
				Severity:             SeverityMedium,
				Reason:               "Method throws " + unsupportedOperation,
				SuggestedRefactoring: RefactorPushDownMethod,
			}, true
		}
	}
	return Finding{}, false
}
