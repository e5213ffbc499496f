package extract

import (
	"fmt"

	"github.com/jdkbench/jdkmig/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// MethodDeclaration is a method found by the locator.
type MethodDeclaration struct {
	Name string
	// Line is the 1-based line where the declaration starts, skipping any
	// leading annotations.
	Line int
}

// LocateMethods returns every method declaration in document order,
// including methods of nested and anonymous classes. Constructors are not
// methods and are not returned.
func LocateMethods(result *parser.ParseResult) []MethodDeclaration {
	var decls []MethodDeclaration
	for _, node := range result.FindNodesByType(parser.NodeMethodDeclaration) {
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		decls = append(decls, MethodDeclaration{
			Name: result.NodeText(nameNode),
			Line: int(declarationStartRow(node)) + 1,
		})
	}
	return decls
}

// declarationStartRow is the first row holding a token of the declaration
// that is neither an annotation nor a comment. Annotations such as
// @SuppressWarnings("x") carry their own parentheses and would otherwise be
// read as the parameter list.
func declarationStartRow(node *sitter.Node) uint32 {
	row := node.EndPoint().Row
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == parser.NodeModifiers {
			for j := 0; j < int(child.ChildCount()); j++ {
				mod := child.Child(j)
				if parser.IsJavaAnnotation(mod) || parser.IsJavaComment(mod) {
					continue
				}
				if r := mod.StartPoint().Row; r < row {
					row = r
				}
			}
			continue
		}
		if parser.IsJavaComment(child) {
			continue
		}
		if r := child.StartPoint().Row; r < row {
			row = r
		}
	}
	return row
}

// SkippedMethod records a located method that could not be extracted.
type SkippedMethod struct {
	Name string
	Line int
	Err  error
}

func (s SkippedMethod) String() string {
	return fmt.Sprintf("%s (line %d): %v", s.Name, s.Line, s.Err)
}

// FileResult holds the methods extracted from one file.
type FileResult struct {
	Functions []ExtractedFunction
	// Skipped lists methods whose body or signature was malformed.
	Skipped []SkippedMethod
	// Short counts methods dropped for being under the minimum length.
	Short int
}

// FileExtractor extracts every method of a Java file.
type FileExtractor struct {
	parser *parser.Parser
	// AllowSyntaxErrors extracts from files whose parse tree contains
	// errors. By default such files are rejected with a *parser.ParseError.
	AllowSyntaxErrors bool
}

// NewFileExtractor creates an extractor backed by a Java parser.
func NewFileExtractor() (*FileExtractor, error) {
	p, err := parser.NewParser(parser.Java)
	if err != nil {
		return nil, err
	}
	return &FileExtractor{parser: p}, nil
}

// Close releases the underlying parser.
func (e *FileExtractor) Close() {
	if e.parser != nil {
		e.parser.Close()
	}
}

// ExtractAll extracts every method of source that spans at least minLength
// lines. Malformed methods are recorded in Skipped and do not stop the rest
// of the file.
func (e *FileExtractor) ExtractAll(source []byte, minLength int) (*FileResult, error) {
	result, err := e.parser.Parse(source)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	if result.HasErrors() && !e.AllowSyntaxErrors {
		return nil, result.FirstError()
	}

	lines := SplitLines(string(source))
	out := &FileResult{}
	for _, decl := range LocateMethods(result) {
		fn, err := ExtractFunction(lines, decl.Line-1, decl.Name)
		if err != nil {
			out.Skipped = append(out.Skipped, SkippedMethod{Name: decl.Name, Line: decl.Line, Err: err})
			continue
		}
		if fn.Length < minLength {
			out.Short++
			continue
		}
		out.Functions = append(out.Functions, *fn)
	}
	return out, nil
}
