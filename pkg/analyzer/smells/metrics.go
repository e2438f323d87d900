package smells

import (
	"strings"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/source"
)

// wrapperTypes are reference types treated like primitives.
var wrapperTypes = map[string]bool{
	"String":    true,
	"Integer":   true,
	"Long":      true,
	"Short":     true,
	"Byte":      true,
	"Double":    true,
	"Float":     true,
	"Boolean":   true,
	"Character": true,
}

// EstimatedMethodLineSpan approximates the length of a method in lines.
//
// Only the direct statements of the body are inspected, so the result is
// (last direct statement line - declaration line) + 2, where the 2 accounts
// for the braces. The declaration line is that of its first annotation or
// modifier. Statements nested in blocks and trailing multi-line
// statements are not measured: the value is a lower bound, not an exact
// line count. A method without a known position spans 0 lines.
func EstimatedMethodLineSpan(m *source.Method) int {
	if m == nil || m.Line <= 0 {
		return 0
	}
	end := m.Line
	for _, stmt := range m.Body {
		if stmt.Line > end {
			end = stmt.Line
		}
	}
	return (end - m.Line) + 2
}

// ParameterTypeNames returns the declared type name of each parameter in
// order. Unnameable types are reported as source.UnknownType.
func ParameterTypeNames(m *source.Method) []string {
	names := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		name := p.TypeName
		if name == "" {
			name = source.UnknownType
		}
		names = append(names, name)
	}
	return names
}

// IsPrimitiveLike reports whether a field holds a built-in scalar or one of
// the boxed/string wrapper types.
func IsPrimitiveLike(f *source.Field) bool {
	if f.Primitive {
		return true
	}
	return wrapperTypes[f.TypeName]
}

// IsAccessorName reports whether a method name looks like a getter or setter.
func IsAccessorName(name string) bool {
	return strings.HasPrefix(name, "get") ||
		strings.HasPrefix(name, "set") ||
		strings.HasPrefix(name, "is")
}

// accessorCount counts accessor-named methods.
func accessorCount(methods []*source.Method) int {
	n := 0
	for _, m := range methods {
		if IsAccessorName(m.Name) {
			n++
		}
	}
	return n
}

func methodLocation(name string) string {
	return name + "()"
}
