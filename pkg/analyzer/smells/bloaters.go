package smells

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/source"
)

// detectBloaters finds code that has grown too large to work with.
func detectBloaters(u *source.Unit, t Thresholds) []Finding {
	var findings []Finding

	for _, m := range u.Methods() {
		if f, ok := longMethod(m, t); ok {
			findings = append(findings, f)
		}
		if f, ok := longParameterList(m, t); ok {
			findings = append(findings, f)
		}
	}

	for _, c := range u.Classes() {
		if f, ok := largeClass(c, t); ok {
			findings = append(findings, f)
		}
	}

	for _, c := range u.Classes() {
		if f, ok := primitiveObsession(c); ok {
			findings = append(findings, f)
		}
	}

	findings = append(findings, dataClumps(u.Methods(), t)...)
	return findings
}

func longMethod(m *source.Method, t Thresholds) (Finding, bool) {
	if m.Line <= 0 {
		return Finding{}, false
	}
	span := EstimatedMethodLineSpan(m)
	if span <= t.LongMethod {
		return Finding{}, false
	}
	severity := SeverityMedium
	if span > 2*t.LongMethod {
		severity = SeverityHigh
	}
	return Finding{
		Type:                 KindLongMethod,
		Location:             methodLocation(m.Name),
		Severity:             severity,
		Reason:               fmt.Sprintf("Method length estimated at %d lines (threshold: %d)", span, t.LongMethod),
		SuggestedRefactoring: RefactorExtractMethod,
	}, true
}

func longParameterList(m *source.Method, t Thresholds) (Finding, bool) {
	count := len(m.Params)
	if count <= t.LongParameterList {
		return Finding{}, false
	}
	return Finding{
		Type:                 KindLongParameterList,
		Location:             methodLocation(m.Name),
		Severity:             SeverityMedium,
		Reason:               fmt.Sprintf("Method has %d parameters (threshold: %d)", count, t.LongParameterList),
		SuggestedRefactoring: RefactorIntroduceParameterObj,
	}, true
}

// largeClass counts methods only. A class's end line cannot be told apart
// from its last member's start line without the token stream, so no
// line-based check is made.
func largeClass(c *source.Class, t Thresholds) (Finding, bool) {
	count := len(c.Methods)
	if count <= t.LargeClassMethods {
		return Finding{}, false
	}
	return Finding{
		Type:                 KindLargeClass,
		Location:             c.Name,
		Severity:             SeverityHigh,
		Reason:               fmt.Sprintf("Class has %d methods (threshold: %d)", count, t.LargeClassMethods),
		SuggestedRefactoring: RefactorExtractClass,
	}, true
}

const (
	primitiveObsessionMinFields = 3
	primitiveObsessionRatio     = 0.5
)

// primitiveObsession counts field declarations, so `int a, b;` is one field.
func primitiveObsession(c *source.Class) (Finding, bool) {
	total := len(c.Fields)
	if total <= primitiveObsessionMinFields {
		return Finding{}, false
	}
	primitive := 0
	for _, f := range c.Fields {
		if IsPrimitiveLike(f) {
			primitive++
		}
	}
	if float64(primitive)/float64(total) <= primitiveObsessionRatio {
		return Finding{}, false
	}
	return Finding{
		Type:                 KindPrimitiveObsession,
		Location:             c.Name,
		Severity:             SeverityLow,
		Reason:               fmt.Sprintf("%d/%d fields are primitives", primitive, total),
		SuggestedRefactoring: RefactorReplaceDataValue,
	}, true
}

// dataClumpLocation is used because a clump spans several methods.
const dataClumpLocation = "Global (Method Parameters)"

// dataClumps groups methods by the sorted tuple of their parameter types.
// Names and order are ignored, so two methods using the same types in
// different roles fall into the same group.
func dataClumps(methods []*source.Method, t Thresholds) []Finding {
	type group struct {
		types []string
		count int
	}
	var order []string
	groups := make(map[string]*group)

	for _, m := range methods {
		if len(m.Params) < t.DataClumpParams {
			continue
		}
		types := ParameterTypeNames(m)
		slices.Sort(types)
		key := strings.Join(types, "\x00")
		g, ok := groups[key]
		if !ok {
			g = &group{types: types}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
	}

	var findings []Finding
	for _, key := range order {
		g := groups[key]
		if g.count < 2 {
			continue
		}
		findings = append(findings, Finding{
			Type:                 KindDataClumps,
			Location:             dataClumpLocation,
			Severity:             SeverityMedium,
			Reason:               fmt.Sprintf("Parameter group (%s) appears in %d methods", strings.Join(g.types, ", "), g.count),
			SuggestedRefactoring: RefactorExtractClass,
		})
	}
	return findings
}
