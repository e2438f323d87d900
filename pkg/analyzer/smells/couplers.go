package smells

import "github.com/SyedUmais05/Java-code-smell-detector/pkg/source"

// detectCouplers finds excessive coupling between classes.
//
// Only Message Chains is detected. Feature Envy and Middle Man need to know
// which class a receiver belongs to, which a single file without symbol
// resolution cannot tell; guessing would misclassify, so neither is emitted.
func detectCouplers(u *source.Unit, t Thresholds) []Finding {
	return messageChains(u.Lines(), t)
}
