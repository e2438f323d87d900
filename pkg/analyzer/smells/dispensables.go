package smells

import (
	"fmt"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/source"
)

// detectDispensables finds code whose absence would make the file cleaner.
func detectDispensables(u *source.Unit, t Thresholds) []Finding {
	var findings []Finding

	if f, ok := duplicateBlock(u.Lines(), t); ok {
		findings = append(findings, f)
	}

	findings = append(findings, deadCode(u.Methods(), u.Invocations())...)

	for _, c := range u.Classes() {
		if f, ok := lazyClass(c, t); ok {
			findings = append(findings, f)
		}
	}
	for _, c := range u.Classes() {
		if f, ok := dataClass(c); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

// deadCode reports private methods whose name is never invoked in the file.
// Matching is by bare name: overloads, same-named methods elsewhere, and
// reflective calls are not told apart.
func deadCode(methods []*source.Method, invocations []source.Invocation) []Finding {
	called := make(map[string]bool, len(invocations))
	for _, inv := range invocations {
		called[inv.Name] = true
	}

	var findings []Finding
	reported := make(map[string]bool)
	for _, m := range methods {
		if !m.IsPrivate() || called[m.Name] || reported[m.Name] {
			continue
		}
		reported[m.Name] = true
		findings = append(findings, Finding{
			Type:                 KindDeadCode,
			Location:             methodLocation(m.Name),
			Severity:             SeverityMedium,
			Reason:               "Private method is never called within the file",
			SuggestedRefactoring: RefactorInlineOrDelete,
		})
	}
	return findings
}

const lazyClassMaxFields = 2

func lazyClass(c *source.Class, t Thresholds) (Finding, bool) {
	working := len(c.Methods) - accessorCount(c.Methods)
	if working >= t.LazyClassMethods || len(c.Fields) >= lazyClassMaxFields {
		return Finding{}, false
	}
	return Finding{
		Type:     KindLazyClass,
		Location: c.Name,
		Severity: SeverityLow,
		Reason: fmt.Sprintf("Class has very little functionality/data (%d non-accessor methods, %d fields)",
			working, len(c.Fields)),
		SuggestedRefactoring: RefactorCollapseHierarchy,
	}, true
}

const (
	dataClassMinMethods    = 2
	dataClassAccessorRatio = 0.9
)

func dataClass(c *source.Class) (Finding, bool) {
	total := len(c.Methods)
	if total <= dataClassMinMethods {
		return Finding{}, false
	}
	accessors := accessorCount(c.Methods)
	if float64(accessors)/float64(total) <= dataClassAccessorRatio {
		return Finding{}, false
	}
	return Finding{
		Type:     KindDataClass,
		Location: c.Name,
		Severity: SeverityLow,
		Reason: fmt.Sprintf("Class appears to only contain getters and setters (%d of %d methods are accessors)",
			accessors, total),
		SuggestedRefactoring: RefactorMoveMethod,
	}, true
}
