package codebleu

import (
	"github.com/jdkbench/jdkmig/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// methodNodes returns the named nodes under the wrapper class body, so the
// wrapper itself never counts as a match.
func methodNodes(result *parser.ParseResult) []*sitter.Node {
	bodies := result.FindNodesByType(parser.NodeClassBody)
	if len(bodies) == 0 {
		return nil
	}
	var nodes []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if parser.IsJavaComment(child) {
				continue
			}
			nodes = append(nodes, child)
			walk(child)
		}
	}
	walk(bodies[0])
	return nodes
}

// syntaxMatch is the share of reference subtrees, compared as
// s-expressions, that also occur in the candidate.
func syntaxMatch(candidate, reference *parser.ParseResult) float64 {
	refNodes := methodNodes(reference)
	if len(refNodes) == 0 {
		return 0
	}
	have := make(map[string]bool)
	for _, n := range methodNodes(candidate) {
		have[n.String()] = true
	}
	matched := 0
	for _, n := range refNodes {
		if have[n.String()] {
			matched++
		}
	}
	return float64(matched) / float64(len(refNodes))
}
