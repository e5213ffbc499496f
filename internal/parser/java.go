package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

func newJavaParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	return parser
}

// JavaLanguage returns the tree-sitter Java grammar.
func JavaLanguage() *sitter.Language {
	return java.GetLanguage()
}

// Java node types used by the method locator and the similarity metric.
const (
	NodeMethodDeclaration = "method_declaration"
	NodeModifiers         = "modifiers"
	NodeMarkerAnnotation  = "marker_annotation"
	NodeAnnotation        = "annotation"
	NodeLineComment       = "line_comment"
	NodeBlockComment      = "block_comment"

	NodeClassBody            = "class_body"
	NodeIdentifier           = "identifier"
	NodeVariableDeclarator   = "variable_declarator"
	NodeAssignment           = "assignment_expression"
	NodeFormalParameter      = "formal_parameter"
	NodeSpreadParameter      = "spread_parameter"
	NodeCatchFormalParameter = "catch_formal_parameter"
	NodeEnhancedFor          = "enhanced_for_statement"
	NodeMethodInvocation     = "method_invocation"
	NodeFieldAccess          = "field_access"
)

// IsJavaAnnotation reports whether node is an annotation usage
// (`@Override` or `@SuppressWarnings("x")`).
func IsJavaAnnotation(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	t := node.Type()
	return t == NodeMarkerAnnotation || t == NodeAnnotation
}

// IsJavaComment reports whether node is a line or block comment.
func IsJavaComment(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	t := node.Type()
	return t == NodeLineComment || t == NodeBlockComment
}
