package codebleu

var javaKeywords = map[string]bool{}

func init() {
	for _, k := range []string{
		"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
		"class", "const", "continue", "default", "do", "double", "else", "enum",
		"extends", "final", "finally", "float", "for", "goto", "if", "implements",
		"import", "instanceof", "int", "interface", "long", "native", "new",
		"package", "private", "protected", "public", "return", "short", "static",
		"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
		"transient", "try", "void", "volatile", "while", "var", "true", "false", "null",
	} {
		javaKeywords[k] = true
	}
}

// IsKeyword reports whether tok is a Java reserved word or literal.
func IsKeyword(tok string) bool {
	return javaKeywords[tok]
}
