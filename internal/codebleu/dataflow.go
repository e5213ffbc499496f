package codebleu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jdkbench/jdkmig/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Relationships between a variable and the variables it depends on.
const (
	relComesFrom    = "comesFrom"
	relComputedFrom = "computedFrom"
)

type edge struct {
	v       string
	rel     string
	parents []string
}

type flowBuilder struct {
	result   *parser.ParseResult
	declared map[string]bool
	edges    []edge
}

// dataflowEdges lists the def-use edges of the code under the wrapper class
// body, with variable names replaced by var_0, var_1, ... in order of first
// appearance.
func dataflowEdges(result *parser.ParseResult) []string {
	bodies := result.FindNodesByType(parser.NodeClassBody)
	if len(bodies) == 0 {
		return nil
	}
	b := &flowBuilder{result: result, declared: make(map[string]bool)}
	b.visit(bodies[0])
	return normalize(b.edges)
}

func (b *flowBuilder) text(n *sitter.Node) string {
	return b.result.NodeText(n)
}

func (b *flowBuilder) visit(n *sitter.Node) {
	switch n.Type() {
	case parser.NodeFormalParameter, parser.NodeCatchFormalParameter:
		if name := n.ChildByFieldName("name"); name != nil {
			b.declared[b.text(name)] = true
		}
		return

	case parser.NodeVariableDeclarator:
		name := n.ChildByFieldName("name")
		value := n.ChildByFieldName("value")
		if value != nil {
			b.visit(value)
		}
		if name == nil {
			return
		}
		b.declared[b.text(name)] = true
		if value != nil {
			b.edges = append(b.edges, edge{v: b.text(name), rel: relComputedFrom, parents: b.varsIn(value)})
		}
		return

	case parser.NodeEnhancedFor:
		name := n.ChildByFieldName("name")
		value := n.ChildByFieldName("value")
		if value != nil {
			b.visit(value)
		}
		if name != nil {
			b.declared[b.text(name)] = true
			var parents []string
			if value != nil {
				parents = b.varsIn(value)
			}
			b.edges = append(b.edges, edge{v: b.text(name), rel: relComputedFrom, parents: parents})
		}
		if body := n.ChildByFieldName("body"); body != nil {
			b.visit(body)
		}
		return

	case parser.NodeAssignment:
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if right != nil {
			b.visit(right)
		}
		if left != nil && left.Type() == parser.NodeIdentifier && b.declared[b.text(left)] {
			var parents []string
			if right != nil {
				parents = b.varsIn(right)
			}
			b.edges = append(b.edges, edge{v: b.text(left), rel: relComputedFrom, parents: parents})
		} else if left != nil {
			b.visit(left)
		}
		return

	case parser.NodeIdentifier:
		if b.isVarUse(n) {
			name := b.text(n)
			b.edges = append(b.edges, edge{v: name, rel: relComesFrom, parents: []string{name}})
		}
		return
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.visit(n.NamedChild(i))
	}
}

// isVarUse reports whether identifier n reads a declared variable rather
// than naming a method or a field.
func (b *flowBuilder) isVarUse(n *sitter.Node) bool {
	if !b.declared[b.text(n)] {
		return false
	}
	p := n.Parent()
	if p == nil {
		return true
	}
	var field *sitter.Node
	switch p.Type() {
	case parser.NodeMethodInvocation:
		field = p.ChildByFieldName("name")
	case parser.NodeFieldAccess:
		field = p.ChildByFieldName("field")
	}
	return field == nil || field.StartByte() != n.StartByte() || field.EndByte() != n.EndByte()
}

func (b *flowBuilder) varsIn(n *sitter.Node) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == parser.NodeIdentifier {
			if b.isVarUse(n) && !seen[b.text(n)] {
				seen[b.text(n)] = true
				out = append(out, b.text(n))
			}
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(n)
	return out
}

func normalize(edges []edge) []string {
	names := make(map[string]string)
	rename := func(v string) string {
		if r, ok := names[v]; ok {
			return r
		}
		r := fmt.Sprintf("var_%d", len(names))
		names[v] = r
		return r
	}

	out := make([]string, 0, len(edges))
	for _, e := range edges {
		v := rename(e.v)
		parents := make([]string, len(e.parents))
		for i, p := range e.parents {
			parents[i] = rename(p)
		}
		sort.Strings(parents)
		out = append(out, v+" "+e.rel+" ["+strings.Join(parents, ",")+"]")
	}
	return out
}

// dataflowMatch is the share of reference edges also found in the
// candidate, each candidate edge matching at most once. A reference without
// edges scores 0.
func dataflowMatch(candidate, reference []string) float64 {
	if len(reference) == 0 {
		return 0
	}
	pool := make(map[string]int, len(candidate))
	for _, e := range candidate {
		pool[e]++
	}
	matched := 0
	for _, e := range reference {
		if pool[e] > 0 {
			pool[e]--
			matched++
		}
	}
	return float64(matched) / float64(len(reference))
}
