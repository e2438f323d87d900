package source

import (
	"strings"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// UnknownType is the type name used when a parameter's type cannot be named.
const UnknownType = "Unknown"

// Unit is one parsed compilation unit: the tree, the raw lines, and the
// declaration views derived from the tree. It is immutable after NewUnit.
type Unit struct {
	result      *parser.ParseResult
	lines       []string
	classes     []*Class
	methods     []*Method
	switches    []Switch
	invocations []Invocation
}

// NewUnit builds the declaration views for a parse result.
// The Unit takes ownership of the result; call Close when done.
func NewUnit(result *parser.ParseResult) *Unit {
	u := &Unit{
		result: result,
		lines:  SplitLines(string(result.Source)),
	}
	b := &builder{unit: u, source: result.Source, methods: make(map[uint32]*Method)}
	b.visit(result.Root(), "")
	b.collectInvocations(result.Root())
	return u
}

// Close releases the underlying tree.
func (u *Unit) Close() {
	u.result.Close()
}

// Lines returns the raw source lines.
func (u *Unit) Lines() []string { return u.lines }

// Line returns the 1-based line n, or "" when out of range.
func (u *Unit) Line(n int) string {
	if n < 1 || n > len(u.lines) {
		return ""
	}
	return u.lines[n-1]
}

// Classes returns every class declaration, outer before inner.
func (u *Unit) Classes() []*Class { return u.classes }

// Methods returns every method declaration in source order.
func (u *Unit) Methods() []*Method { return u.methods }

// Switches returns every switch statement or expression in source order.
func (u *Unit) Switches() []Switch { return u.switches }

// Invocations returns every call site in source order.
func (u *Unit) Invocations() []Invocation { return u.invocations }

// SplitLines splits text into lines. "\n", "\r\n" and "\r" end a line; a
// trailing terminator does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

type builder struct {
	unit    *Unit
	source  []byte
	methods map[uint32]*Method // by start byte, so class and file views share values
}

// visit collects class, method and switch views. owner is the enclosing type name.
func (b *builder) visit(node *sitter.Node, owner string) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "class_declaration":
		cls := b.class(node)
		b.unit.classes = append(b.unit.classes, cls)
		owner = cls.Name
	case "interface_declaration", "enum_declaration", "record_declaration":
		owner = parser.GetNodeText(node.ChildByFieldName("name"), b.source)
	case "object_creation_expression":
		if hasNamedChild(node, "class_body") {
			owner = ""
		}
	case "method_declaration":
		b.unit.methods = append(b.unit.methods, b.method(node, owner))
	case "switch_expression", "switch_statement":
		b.unit.switches = append(b.unit.switches, Switch{
			Line:  parser.Line(node),
			Cases: countCases(node.ChildByFieldName("body")),
		})
	}

	for i := range int(node.ChildCount()) {
		b.visit(node.Child(i), owner)
	}
}

// collectInvocations records call sites and method references in source order.
// A constructor reference such as Foo::new names no method and is skipped.
func (b *builder) collectInvocations(root *sitter.Node) {
	for _, node := range parser.FindNodesByType(root, b.source, "method_invocation", "method_reference") {
		var name *sitter.Node
		if node.Type() == "method_invocation" {
			name = node.ChildByFieldName("name")
		} else if count := int(node.NamedChildCount()); count > 1 {
			if last := node.NamedChild(count - 1); last.Type() == "identifier" {
				name = last
			}
		}
		if name == nil {
			continue
		}
		b.unit.invocations = append(b.unit.invocations, Invocation{
			Name: parser.GetNodeText(name, b.source),
			Line: parser.Line(node),
		})
	}
}

func (b *builder) class(node *sitter.Node) *Class {
	cls := &Class{
		Name: parser.GetNodeText(node.ChildByFieldName("name"), b.source),
		Line: parser.Line(node),
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	for i := range int(body.NamedChildCount()) {
		member := body.NamedChild(i)
		switch member.Type() {
		case "field_declaration":
			cls.Fields = append(cls.Fields, b.field(member))
		case "method_declaration":
			cls.Methods = append(cls.Methods, b.method(member, cls.Name))
		}
	}
	return cls
}

func (b *builder) method(node *sitter.Node, owner string) *Method {
	if m, ok := b.methods[node.StartByte()]; ok {
		return m
	}
	m := &Method{
		Name:  parser.GetNodeText(node.ChildByFieldName("name"), b.source),
		Owner: owner,
		Line:  parser.Line(node),
	}

	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		switch child.Type() {
		case "modifiers":
			m.Modifiers = b.modifiers(child)
		case "throws":
			for j := range int(child.NamedChildCount()) {
				m.Throws = append(m.Throws, typeName(child.NamedChild(j), b.source))
			}
		}
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		m.Params = b.params(params)
	}

	if body := node.ChildByFieldName("body"); body != nil {
		m.HasBody = true
		for i := range int(body.NamedChildCount()) {
			stmt := body.NamedChild(i)
			if parser.IsComment(stmt.Type()) {
				continue
			}
			m.Body = append(m.Body, Statement{
				Kind: statementKindOf(stmt.Type()),
				Line: parser.Line(stmt),
			})
		}
		m.FieldRefs = b.references(body)
	}
	b.methods[node.StartByte()] = m
	return m
}

func (b *builder) modifiers(node *sitter.Node) []string {
	var mods []string
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		switch child.Type() {
		case "marker_annotation", "annotation", "line_comment", "block_comment":
			continue
		}
		mods = append(mods, parser.GetNodeText(child, b.source))
	}
	return mods
}

func (b *builder) params(node *sitter.Node) []Param {
	var params []Param
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		switch child.Type() {
		case "formal_parameter":
			params = append(params, Param{
				Name:     parser.GetNodeText(child.ChildByFieldName("name"), b.source),
				TypeName: typeName(child.ChildByFieldName("type"), b.source),
			})
		case "spread_parameter":
			p := Param{TypeName: UnknownType, Variadic: true}
			for j := range int(child.NamedChildCount()) {
				part := child.NamedChild(j)
				switch {
				case part.Type() == "variable_declarator":
					p.Name = parser.GetNodeText(part.ChildByFieldName("name"), b.source)
				case isTypeNode(part.Type()) && p.TypeName == UnknownType:
					p.TypeName = typeName(part, b.source)
				}
			}
			params = append(params, p)
		}
	}
	return params
}

func (b *builder) field(node *sitter.Node) *Field {
	typ := node.ChildByFieldName("type")
	f := &Field{
		TypeName:  typeName(typ, b.source),
		Primitive: isPrimitiveTypeNode(typ),
		Line:      parser.Line(node),
	}
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		if child.Type() == "variable_declarator" {
			f.Names = append(f.Names, parser.GetNodeText(child.ChildByFieldName("name"), b.source))
		}
	}
	return f
}

// references collects identifiers used as values inside a method body.
// Declared names, labels, annotation names and the called name of an
// invocation are not references.
func (b *builder) references(body *sitter.Node) []string {
	seen := make(map[string]bool)
	var refs []string
	parser.WalkTyped(body, b.source, func(node *sitter.Node, nodeType string, source []byte) bool {
		if nodeType != "identifier" || !isValueIdentifier(node) {
			return true
		}
		name := parser.GetNodeText(node, source)
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
		return true
	})
	return refs
}

func isValueIdentifier(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return true
	}
	switch parent.Type() {
	case "method_invocation", "variable_declarator", "formal_parameter",
		"catch_formal_parameter", "enhanced_for_statement", "method_declaration",
		"class_declaration", "enum_declaration", "interface_declaration", "record_declaration":
		return !sameNode(node, parent.ChildByFieldName("name"))
	case "labeled_statement", "break_statement", "continue_statement",
		"marker_annotation", "annotation", "inferred_parameters", "method_reference":
		return false
	case "lambda_expression":
		return !sameNode(node, parent.ChildByFieldName("parameters"))
	}
	return true
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func hasNamedChild(node *sitter.Node, nodeType string) bool {
	for i := range int(node.NamedChildCount()) {
		if node.NamedChild(i).Type() == nodeType {
			return true
		}
	}
	return false
}

// countCases counts case groups in a switch block. Newer grammars wrap groups
// in switch_block_statement_group / switch_rule; older ones list labels and
// statements flat, where consecutive labels share one body.
func countCases(block *sitter.Node) int {
	if block == nil {
		return 0
	}
	count := 0
	prevLabel := false
	for i := range int(block.NamedChildCount()) {
		child := block.NamedChild(i)
		switch child.Type() {
		case "switch_block_statement_group", "switch_rule":
			count++
			prevLabel = false
		case "switch_label":
			if !prevLabel {
				count++
			}
			prevLabel = true
		default:
			if !parser.IsComment(child.Type()) {
				prevLabel = false
			}
		}
	}
	return count
}

var primitiveTypeNodes = map[string]bool{
	"integral_type":       true,
	"floating_point_type": true,
	"boolean_type":        true,
}

func isPrimitiveTypeNode(node *sitter.Node) bool {
	for node != nil && node.Type() == "array_type" {
		node = node.ChildByFieldName("element")
	}
	return node != nil && primitiveTypeNodes[node.Type()]
}

func isTypeNode(nodeType string) bool {
	switch nodeType {
	case "integral_type", "floating_point_type", "boolean_type", "void_type",
		"type_identifier", "generic_type", "scoped_type_identifier", "array_type", "annotated_type":
		return true
	}
	return false
}

// typeName names a type syntactically: generic arguments and array
// dimensions are dropped, qualified names are kept whole.
func typeName(node *sitter.Node, source []byte) string {
	if node == nil {
		return UnknownType
	}
	switch node.Type() {
	case "integral_type", "floating_point_type", "boolean_type", "void_type", "type_identifier":
		return parser.GetNodeText(node, source)
	case "scoped_type_identifier":
		return strings.Join(strings.Fields(parser.GetNodeText(node, source)), "")
	case "array_type":
		return typeName(node.ChildByFieldName("element"), source)
	case "generic_type":
		for i := range int(node.NamedChildCount()) {
			child := node.NamedChild(i)
			if child.Type() == "type_identifier" || child.Type() == "scoped_type_identifier" {
				return typeName(child, source)
			}
		}
	case "annotated_type":
		for i := range int(node.NamedChildCount()) {
			child := node.NamedChild(i)
			if isTypeNode(child.Type()) {
				return typeName(child, source)
			}
		}
	}
	return UnknownType
}
