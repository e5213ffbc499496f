// Package parser wraps tree-sitter for parsing Java source.
//
// It feeds the extract package, which locates method declarations in the
// tree, and the codebleu package, which compares trees and data flow.
package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Language names a grammar. Java is the only one wired.
type Language string

const Java Language = "java"

// Parser holds a tree-sitter parser configured for one grammar. It is not
// safe for concurrent use.
type Parser struct {
	ts *sitter.Parser
}

// ParseResult is a parsed tree together with the source it was built from.
// Close must be called to release the tree.
type ParseResult struct {
	Tree   *sitter.Tree
	Root   *sitter.Node
	Source []byte
}

// NewParser returns a parser for lang, or an *UnsupportedLanguageError.
func NewParser(lang Language) (*Parser, error) {
	if lang != Java {
		return nil, &UnsupportedLanguageError{Language: string(lang)}
	}
	return &Parser{ts: newJavaParser()}, nil
}

// Parse builds the syntax tree for source. Syntax errors do not fail the
// parse; they show up as ERROR and MISSING nodes, see HasErrors.
func (p *Parser) Parse(source []byte) (*ParseResult, error) {
	tree := p.ts.Parse(nil, source)
	if tree == nil {
		return nil, &ParseError{Message: "parser returned no tree"}
	}
	return &ParseResult{Tree: tree, Root: tree.RootNode(), Source: source}, nil
}

func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
		p.ts = nil
	}
}

func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
	}
	r.Tree, r.Root = nil, nil
}

// HasErrors reports whether the tree contains ERROR or MISSING nodes.
func (r *ParseResult) HasErrors() bool {
	return r.Root != nil && r.Root.HasError()
}

// FirstError locates the first ERROR or MISSING node in document order.
// It returns nil for a clean tree.
func (r *ParseResult) FirstError() *ParseError {
	if !r.HasErrors() {
		return nil
	}
	var pe *ParseError
	r.WalkNodes(func(n *sitter.Node) bool {
		if !n.IsError() && !n.IsMissing() {
			return true
		}
		pt := n.StartPoint()
		pe = &ParseError{
			Message: "syntax error near " + n.Type(),
			Line:    pt.Row + 1,
			Column:  pt.Column + 1,
		}
		return false
	})
	return pe
}

// WalkNodes visits the tree in pre-order until visit returns false.
func (r *ParseResult) WalkNodes(visit func(*sitter.Node) bool) {
	if r.Root == nil {
		return
	}
	stack := []*sitter.Node{r.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(n) {
			return
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}
}

// FindNodes collects the nodes matching keep, in document order.
func (r *ParseResult) FindNodes(keep func(*sitter.Node) bool) []*sitter.Node {
	var out []*sitter.Node
	r.WalkNodes(func(n *sitter.Node) bool {
		if keep(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (r *ParseResult) FindNodesByType(nodeType string) []*sitter.Node {
	return r.FindNodes(func(n *sitter.Node) bool { return n.Type() == nodeType })
}

// NodeText returns the source covered by node, or "" for a nil node.
func (r *ParseResult) NodeText(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(r.Source)
}
