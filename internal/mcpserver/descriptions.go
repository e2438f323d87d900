package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and what is returned.

func describeAnalyzeSmells() string {
	return `Detects code smells in Java source using syntax-only heuristics.

USE WHEN:
- Reviewing a Java class before merging or refactoring it
- Looking for refactoring candidates in a Java package
- Explaining why a class is hard to change

INTERPRETING RESULTS:
- Each smell has a type, a location, a severity, a reason and a suggested refactoring
- Severity: High > Medium > Low. High means the limit was exceeded by a wide margin
- Locations are "name()" for methods, "Line N" for statements and "Field 'x'" for fields
- A report with an error (Syntax Error or Parsing Error) has no smells; fix the source first
- Heuristics see one file at a time: dead code means "private and never called in this file"

METRICS RETURNED:
- summary.totalLines: physical lines in the source
- summary.totalSmells: number of smells reported
- smells: findings in family order (bloaters, oo_abusers, dispensables, couplers)
- For several files: one entry per file plus the overall totalSmells`
}

func describeListSmellKinds() string {
	return `Lists every code smell kind jsmell recognises, with its family and the refactoring it suggests.

USE WHEN:
- Explaining what a smell type in a report means
- Choosing which families to focus a review on

INTERPRETING RESULTS:
- detected=false marks kinds that are recognised but never reported (Feature Envy, Middle Man)
- Families: bloaters, oo_abusers, dispensables, couplers

METRICS RETURNED:
- kind, family, refactoring and detected for each smell kind`
}
