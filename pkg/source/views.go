package source

import "slices"

// StatementKind is the closed set of statement shapes a method body can hold.
type StatementKind string

const (
	StmtLocalVariable StatementKind = "local_variable"
	StmtExpression    StatementKind = "expression"
	StmtIf            StatementKind = "if"
	StmtFor           StatementKind = "for"
	StmtWhile         StatementKind = "while"
	StmtDo            StatementKind = "do"
	StmtSwitch        StatementKind = "switch"
	StmtReturn        StatementKind = "return"
	StmtThrow         StatementKind = "throw"
	StmtTry           StatementKind = "try"
	StmtBlock         StatementKind = "block"
	StmtBreak         StatementKind = "break"
	StmtContinue      StatementKind = "continue"
	StmtSynchronized  StatementKind = "synchronized"
	StmtLabeled       StatementKind = "labeled"
	StmtAssert        StatementKind = "assert"
	StmtYield         StatementKind = "yield"
	StmtLocalClass    StatementKind = "local_class"
	StmtEmpty         StatementKind = "empty"
	StmtOther         StatementKind = "other"
)

var statementKinds = map[string]StatementKind{
	"local_variable_declaration":   StmtLocalVariable,
	"expression_statement":         StmtExpression,
	"if_statement":                 StmtIf,
	"for_statement":                StmtFor,
	"enhanced_for_statement":       StmtFor,
	"while_statement":              StmtWhile,
	"do_statement":                 StmtDo,
	"switch_expression":            StmtSwitch,
	"switch_statement":             StmtSwitch,
	"return_statement":             StmtReturn,
	"throw_statement":              StmtThrow,
	"try_statement":                StmtTry,
	"try_with_resources_statement": StmtTry,
	"block":                        StmtBlock,
	"break_statement":              StmtBreak,
	"continue_statement":           StmtContinue,
	"synchronized_statement":       StmtSynchronized,
	"labeled_statement":            StmtLabeled,
	"assert_statement":             StmtAssert,
	"yield_statement":              StmtYield,
	"class_declaration":            StmtLocalClass,
	"record_declaration":           StmtLocalClass,
	"enum_declaration":             StmtLocalClass,
	"interface_declaration":        StmtLocalClass,
	";":                            StmtEmpty,

	"explicit_constructor_invocation": StmtExpression,
}

func statementKindOf(nodeType string) StatementKind {
	if kind, ok := statementKinds[nodeType]; ok {
		return kind
	}
	return StmtOther
}

// Statement is a direct child statement of a method body.
type Statement struct {
	Kind StatementKind
	Line int
}

// Param is a formal parameter of a method.
type Param struct {
	Name     string
	TypeName string
	Variadic bool
}

// Method is a read-only view of a method declaration. Constructors are not methods.
type Method struct {
	Name      string
	Owner     string // enclosing type name, empty for anonymous bodies
	Line      int    // first line of the declaration, annotations included
	Params    []Param
	Modifiers []string
	Throws    []string
	Body      []Statement
	HasBody   bool

	// FieldRefs are the identifiers the body references, in first-seen order.
	FieldRefs []string
}

// HasModifier reports whether the method was declared with the given modifier.
func (m *Method) HasModifier(modifier string) bool {
	return slices.Contains(m.Modifiers, modifier)
}

// IsPrivate reports whether the method is declared private.
func (m *Method) IsPrivate() bool {
	return m.HasModifier("private")
}

// References reports whether the body references the identifier.
func (m *Method) References(name string) bool {
	return slices.Contains(m.FieldRefs, name)
}

// Field is a read-only view of a field declaration.
// One declaration may introduce several names (`int a, b;`).
type Field struct {
	TypeName  string
	Primitive bool // built-in scalar type (int, boolean, double...)
	Names     []string
	Line      int
}

// Class is a read-only view of a class declaration and its direct members.
type Class struct {
	Name    string
	Line    int
	Methods []*Method
	Fields  []*Field
}

// FieldNames returns every declarator name of the class, in declaration order.
func (c *Class) FieldNames() []string {
	var names []string
	for _, f := range c.Fields {
		names = append(names, f.Names...)
	}
	return names
}

// Switch is a switch statement or expression.
type Switch struct {
	Line  int
	Cases int // case groups; labels sharing one body count once
}

// Invocation is a method call site.
type Invocation struct {
	Name string
	Line int
}
