package smells

import "fmt"

// Kind is the type of code smell a finding reports.
type Kind string

const (
	KindLongMethod         Kind = "Long Method"
	KindLongParameterList  Kind = "Long Parameter List"
	KindLargeClass         Kind = "Large Class"
	KindPrimitiveObsession Kind = "Primitive Obsession"
	KindDataClumps         Kind = "Data Clumps"
	KindSwitchStatements   Kind = "Switch Statements"
	KindTemporaryField     Kind = "Temporary Field"
	KindRefusedBequest     Kind = "Refused Bequest"
	KindDuplicateCode      Kind = "Duplicate Code"
	KindDeadCode           Kind = "Dead Code"
	KindLazyClass          Kind = "Lazy Class"
	KindDataClass          Kind = "Data Class"
	KindMessageChains      Kind = "Message Chains"
	KindFeatureEnvy        Kind = "Feature Envy"
	KindMiddleMan          Kind = "Middle Man"
)

// Severity represents the severity level of a code smell.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Weight returns a numeric weight for sorting (higher = more severe).
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseSeverity converts a case-insensitive name to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "low", "Low", "LOW":
		return SeverityLow, nil
	case "medium", "Medium", "MEDIUM":
		return SeverityMedium, nil
	case "high", "High", "HIGH":
		return SeverityHigh, nil
	}
	return "", fmt.Errorf("unknown severity %q (want low, medium or high)", s)
}

// Refactoring names a pattern from the refactoring catalog.
type Refactoring string

const (
	RefactorExtractMethod         Refactoring = "Extract Method"
	RefactorIntroduceParameterObj Refactoring = "Introduce Parameter Object"
	RefactorExtractClass          Refactoring = "Extract Class"
	RefactorReplaceDataValue      Refactoring = "Replace Data Value with Object"
	RefactorReplaceConditional    Refactoring = "Replace Conditional with Polymorphism"
	RefactorPushDownMethod        Refactoring = "Push Down Method / Extract Superclass"
	RefactorInlineOrDelete        Refactoring = "Inline Method / Delete Code"
	RefactorCollapseHierarchy     Refactoring = "Collapse Hierarchy / Inline Class"
	RefactorMoveMethod            Refactoring = "Move Method"
	RefactorHideDelegate          Refactoring = "Hide Delegate"
	RefactorRemoveMiddleMan       Refactoring = "Remove Middle Man"
)

// Family groups related heuristics. Families run in the order of Families().
type Family string

const (
	FamilyBloaters     Family = "bloaters"
	FamilyOOAbusers    Family = "oo_abusers"
	FamilyDispensables Family = "dispensables"
	FamilyCouplers     Family = "couplers"
)

// Families returns every family in execution order.
func Families() []Family {
	return []Family{FamilyBloaters, FamilyOOAbusers, FamilyDispensables, FamilyCouplers}
}

// KindInfo describes a recognised smell kind.
type KindInfo struct {
	Kind        Kind        `json:"kind" toon:"kind" yaml:"kind"`
	Family      Family      `json:"family" toon:"family" yaml:"family"`
	Refactoring Refactoring `json:"refactoring" toon:"refactoring" yaml:"refactoring"`
	Detected    bool        `json:"detected" toon:"detected" yaml:"detected"`
}

// Catalog lists every recognised kind. Feature Envy and Middle Man have no
// syntax-only heuristic and are never detected.
func Catalog() []KindInfo {
	return []KindInfo{
		{KindLongMethod, FamilyBloaters, RefactorExtractMethod, true},
		{KindLongParameterList, FamilyBloaters, RefactorIntroduceParameterObj, true},
		{KindLargeClass, FamilyBloaters, RefactorExtractClass, true},
		{KindPrimitiveObsession, FamilyBloaters, RefactorReplaceDataValue, true},
		{KindDataClumps, FamilyBloaters, RefactorExtractClass, true},
		{KindSwitchStatements, FamilyOOAbusers, RefactorReplaceConditional, true},
		{KindTemporaryField, FamilyOOAbusers, RefactorExtractClass, true},
		{KindRefusedBequest, FamilyOOAbusers, RefactorPushDownMethod, true},
		{KindDuplicateCode, FamilyDispensables, RefactorExtractMethod, true},
		{KindDeadCode, FamilyDispensables, RefactorInlineOrDelete, true},
		{KindLazyClass, FamilyDispensables, RefactorCollapseHierarchy, true},
		{KindDataClass, FamilyDispensables, RefactorMoveMethod, true},
		{KindMessageChains, FamilyCouplers, RefactorHideDelegate, true},
		{KindFeatureEnvy, FamilyCouplers, RefactorMoveMethod, false},
		{KindMiddleMan, FamilyCouplers, RefactorRemoveMiddleMan, false},
	}
}

// Finding is one reported smell instance.
type Finding struct {
	Type                 Kind        `json:"type" toon:"type" yaml:"type"`
	Location             string      `json:"location" toon:"location" yaml:"location"`
	Severity             Severity    `json:"severity" toon:"severity" yaml:"severity"`
	Reason               string      `json:"reason" toon:"reason" yaml:"reason"`
	SuggestedRefactoring Refactoring `json:"suggestedRefactoring" toon:"suggestedRefactoring" yaml:"suggestedRefactoring"`
}

// Thresholds configures detection limits. A value is fixed for the lifetime
// of an analysis; distinct Analyzers may hold distinct Thresholds.
type Thresholds struct {
	LongMethod         int `json:"long_method" koanf:"long_method" toml:"long_method"`                            // max estimated method span in lines
	LargeClassMethods  int `json:"large_class_methods" koanf:"large_class_methods" toml:"large_class_methods"`    // max methods per class
	LongParameterList  int `json:"long_parameter_list" koanf:"long_parameter_list" toml:"long_parameter_list"`    // max parameters per method
	SwitchCases        int `json:"switch_cases" koanf:"switch_cases" toml:"switch_cases"`                         // max case groups per switch
	DuplicateBlock     int `json:"duplicate_block" koanf:"duplicate_block" toml:"duplicate_block"`                // duplicate window size in non-blank lines
	DataClumpParams    int `json:"data_clump_params" koanf:"data_clump_params" toml:"data_clump_params"`          // min parameters for a clump group
	MessageChainLength int `json:"message_chain_length" koanf:"message_chain_length" toml:"message_chain_length"` // min "()." occurrences per line
	LazyClassMethods   int `json:"lazy_class_methods" koanf:"lazy_class_methods" toml:"lazy_class_methods"`       // non-accessor methods below this are lazy
}

// DefaultThresholds returns the standard detection limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LongMethod:         40,
		LargeClassMethods:  15,
		LongParameterList:  4,
		SwitchCases:        5,
		DuplicateBlock:     6,
		DataClumpParams:    3,
		MessageChainLength: 3,
		LazyClassMethods:   3,
	}
}

// Validate reports the first non-positive threshold.
func (t Thresholds) Validate() error {
	for _, v := range []struct {
		name  string
		value int
	}{
		{"long_method", t.LongMethod},
		{"large_class_methods", t.LargeClassMethods},
		{"long_parameter_list", t.LongParameterList},
		{"switch_cases", t.SwitchCases},
		{"duplicate_block", t.DuplicateBlock},
		{"data_clump_params", t.DataClumpParams},
		{"message_chain_length", t.MessageChainLength},
		{"lazy_class_methods", t.LazyClassMethods},
	} {
		if v.value <= 0 {
			return fmt.Errorf("threshold %s must be positive, got %d", v.name, v.value)
		}
	}
	return nil
}

// withDefaults replaces every non-positive value with its default.
func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&t.LongMethod, d.LongMethod)
	fill(&t.LargeClassMethods, d.LargeClassMethods)
	fill(&t.LongParameterList, d.LongParameterList)
	fill(&t.SwitchCases, d.SwitchCases)
	fill(&t.DuplicateBlock, d.DuplicateBlock)
	fill(&t.DataClumpParams, d.DataClumpParams)
	fill(&t.MessageChainLength, d.MessageChainLength)
	fill(&t.LazyClassMethods, d.LazyClassMethods)
	return t
}

// Summary provides aggregate statistics.
type Summary struct {
	TotalLines  int `json:"totalLines" toon:"totalLines" yaml:"totalLines"`
	TotalSmells int `json:"totalSmells" toon:"totalSmells" yaml:"totalSmells"`
}

// Report is the result of one analysis. An error report carries Error,
// zero smells and TotalSmells == 0.
type Report struct {
	Error   string    `json:"error,omitempty" toon:"error,omitempty" yaml:"error,omitempty"`
	Summary Summary   `json:"summary" toon:"summary" yaml:"summary"`
	Smells  []Finding `json:"smells" toon:"smells" yaml:"smells"`
}

// NewReport creates an empty success report.
func NewReport(totalLines int) *Report {
	return &Report{
		Summary: Summary{TotalLines: totalLines},
		Smells:  make([]Finding, 0),
	}
}

// NewErrorReport creates a degraded report for input that could not be analyzed.
func NewErrorReport(message string, totalLines int) *Report {
	return &Report{
		Error:   message,
		Summary: Summary{TotalLines: totalLines},
		Smells:  make([]Finding, 0),
	}
}

// IsError reports whether this is an error report.
func (r *Report) IsError() bool {
	return r.Error != ""
}

// Add appends findings and updates the summary.
func (r *Report) Add(findings ...Finding) {
	if r.IsError() {
		return
	}
	r.Smells = append(r.Smells, findings...)
	r.Summary.TotalSmells = len(r.Smells)
}

// CountBySeverity tallies findings per severity.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, f := range r.Smells {
		counts[f.Severity]++
	}
	return counts
}

// CountByType tallies findings per kind.
func (r *Report) CountByType() map[Kind]int {
	counts := make(map[Kind]int)
	for _, f := range r.Smells {
		counts[f.Type]++
	}
	return counts
}

// HasSeverityAtLeast reports whether any finding is at or above min.
func (r *Report) HasSeverityAtLeast(min Severity) bool {
	for _, f := range r.Smells {
		if f.Severity.Weight() >= min.Weight() {
			return true
		}
	}
	return false
}
