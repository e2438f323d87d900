package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Parser wraps tree-sitter configured for the Java grammar.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed AST and the bytes it was built from.
type ParseResult struct {
	Tree   *sitter.Tree
	Source []byte
	Path   string
}

// Root returns the root node of the tree.
func (r *ParseResult) Root() *sitter.Node {
	if r == nil || r.Tree == nil {
		return nil
	}
	return r.Tree.RootNode()
}

// Close releases the tree.
func (r *ParseResult) Close() {
	if r != nil && r.Tree != nil {
		r.Tree.Close()
	}
}

// SyntaxError is returned when the source does not form a valid compilation unit.
type SyntaxError struct {
	Message string
	Line    int // 1-based, 0 when unknown
	Column  int // 1-based, 0 when unknown
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d", e.Message, e.Line)
	}
	return e.Message
}

// IsSyntaxError reports whether err is (or wraps) a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// New creates a new parser instance.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses Java source code. A tree containing error or missing nodes, or
// top-level content that is not a type, package, import or module
// declaration, is closed and reported as a *SyntaxError.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	if tree == nil {
		return nil, errors.New("failed to parse: parser returned no tree")
	}

	result := &ParseResult{Tree: tree, Source: source}
	root := tree.RootNode()
	if root.HasError() {
		syntaxErr := firstSyntaxError(root, source)
		result.Close()
		return nil, syntaxErr
	}
	if stray := firstStrayTopLevel(root); stray != nil {
		result.Close()
		return nil, unexpected(stray, source)
	}
	return result, nil
}

// compilationUnitMembers are the node types a Java compilation unit may hold
// at its top level. The grammar also accepts bare statements and methods there.
var compilationUnitMembers = map[string]bool{
	"package_declaration":         true,
	"import_declaration":          true,
	"module_declaration":          true,
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
}

// firstStrayTopLevel returns the first named top-level node that cannot
// appear in a compilation unit. Stray semicolons are anonymous and allowed.
func firstStrayTopLevel(root *sitter.Node) *sitter.Node {
	for i := range int(root.NamedChildCount()) {
		child := root.NamedChild(i)
		nodeType := child.Type()
		if !compilationUnitMembers[nodeType] && !IsComment(nodeType) {
			return child
		}
	}
	return nil
}

// firstSyntaxError locates the first ERROR or MISSING node in pre-order.
func firstSyntaxError(root *sitter.Node, source []byte) *SyntaxError {
	var found *sitter.Node
	Walk(root, source, func(node *sitter.Node, _ []byte) bool {
		if found != nil {
			return false
		}
		if node.IsMissing() || node.Type() == "ERROR" {
			found = node
			return false
		}
		return node.HasError()
	})

	if found == nil {
		return &SyntaxError{Message: "invalid Java source"}
	}

	if found.IsMissing() {
		pos := found.StartPoint()
		return &SyntaxError{
			Message: fmt.Sprintf("missing %q", found.Type()),
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
		}
	}
	return unexpected(found, source)
}

// unexpected reports the first line of node's text as an unexpected token.
func unexpected(node *sitter.Node, source []byte) *SyntaxError {
	pos := node.StartPoint()
	se := &SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
	token := strings.TrimSpace(GetNodeText(node, source))
	if idx := strings.IndexAny(token, "\r\n"); idx >= 0 {
		token = strings.TrimSpace(token[:idx])
	}
	if token == "" {
		se.Message = "unexpected end of input"
	} else {
		se.Message = fmt.Sprintf("unexpected %q", truncate(token, 40))
	}
	return se
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// IsJavaFile reports whether a path looks like a Java source file.
func IsJavaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".java")
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// NodeVisitor is a function that visits AST nodes.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// TypedNodeVisitor visits AST nodes with pre-cached node type to avoid CGO overhead.
type TypedNodeVisitor func(node *sitter.Node, nodeType string, source []byte) bool

// Walk traverses the AST calling visitor for each node.
// Returning false from the visitor skips the node's children.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}

	if !visitor(node, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}

// WalkTyped traverses the AST with cached node types to reduce CGO overhead.
func WalkTyped(node *sitter.Node, source []byte, visitor TypedNodeVisitor) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	if !visitor(node, nodeType, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		WalkTyped(node.Child(i), source, visitor)
	}
}

// FindNodesByType returns all nodes of the given types, in pre-order.
func FindNodesByType(root *sitter.Node, source []byte, nodeTypes ...string) []*sitter.Node {
	var results []*sitter.Node
	WalkTyped(root, source, func(node *sitter.Node, nodeType string, _ []byte) bool {
		for _, t := range nodeTypes {
			if nodeType == t {
				results = append(results, node)
				break
			}
		}
		return true
	})
	return results
}

// GetNodeText extracts the source text for a node.
// Returns empty string if node is nil or byte offsets are out of bounds.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// Line returns the 1-based start line of a node, or 0 for nil.
func Line(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	return int(node.StartPoint().Row) + 1
}

// IsComment reports whether a node type is a Java comment.
func IsComment(nodeType string) bool {
	return nodeType == "line_comment" || nodeType == "block_comment" || nodeType == "comment"
}
