package smells

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// The heuristics in this file read raw source lines and never the tree.
// They depend on literal formatting: reformatted but equivalent code can
// hide or reveal a finding.

// numberedLine is a stripped, non-blank line and its 1-based source line.
type numberedLine struct {
	text string
	line int
}

func significantLines(lines []string) []numberedLine {
	out := make([]numberedLine, 0, len(lines))
	for i, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			out = append(out, numberedLine{text: s, line: i + 1})
		}
	}
	return out
}

// duplicateBlock slides a window over the significant lines and reports the
// first window that repeats an earlier one. Scanning stops there, so at most
// one finding is produced per file.
func duplicateBlock(lines []string, t Thresholds) (Finding, bool) {
	window := t.DuplicateBlock
	sig := significantLines(lines)
	if len(sig) <= window {
		return Finding{}, false
	}

	seen := make(map[uint64][]int)
	for i := 0; i+window <= len(sig); i++ {
		h := hashWindow(sig[i : i+window])
		for _, j := range seen[h] {
			if sameWindow(sig[j:j+window], sig[i:i+window]) {
				return Finding{
					Type:     KindDuplicateCode,
					Location: fmt.Sprintf("Lines near %d", sig[i].line),
					Severity: SeverityMedium,
					Reason: fmt.Sprintf("Identical block of %d lines detected multiple times (first seen near line %d)",
						window, sig[j].line),
					SuggestedRefactoring: RefactorExtractMethod,
				}, true
			}
		}
		seen[h] = append(seen[h], i)
	}
	return Finding{}, false
}

func hashWindow(block []numberedLine) uint64 {
	d := xxhash.New()
	for _, l := range block {
		_, _ = d.WriteString(l.text)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

func sameWindow(a, b []numberedLine) bool {
	for i := range a {
		if a[i].text != b[i].text {
			return false
		}
	}
	return true
}

// chainPattern is a call immediately followed by a member access.
const chainPattern = "()."

// messageChains reports every line with at least MessageChainLength
// occurrences of "()." Chains split across lines are not joined.
func messageChains(lines []string, t Thresholds) []Finding {
	var findings []Finding
	for i, line := range lines {
		count := strings.Count(line, chainPattern)
		if count < t.MessageChainLength {
			continue
		}
		findings = append(findings, Finding{
			Type:                 KindMessageChains,
			Location:             fmt.Sprintf("Line %d", i+1),
			Severity:             SeverityMedium,
			Reason:               fmt.Sprintf("Complex method chaining detected (%d chained calls, threshold: %d)", count, t.MessageChainLength),
			SuggestedRefactoring: RefactorHideDelegate,
		})
	}
	return findings
}
