// Package extract isolates Java methods from raw source text.
//
// Method boundaries are found by textual brace counting starting at the
// declaration line reported by the tree-sitter locator. The counting has no
// notion of string literals or comments: a '{' inside "..." or // ... is
// counted like any other. Datasets built with this package depend on that
// granularity, so the limitation is kept.
package extract

import (
	"strings"
)

// SplitLines splits source on '\n'. Carriage returns are left in place.
func SplitLines(source string) []string {
	return strings.Split(source, "\n")
}

// ExtractFunctionBody returns the number of lines and the normalized text of
// the method whose declaration starts at lines[startLine].
//
// Lines are consumed until the running '{' minus '}' count returns to zero
// after at least one '{' has been seen, so the opening brace may sit on a
// later line than the signature. A line ending in ';' before any '{' ends a
// body-less declaration (abstract or interface method).
//
// If the input runs out with braces still open, or the count goes negative,
// a *MalformedInputError is returned and no partial body.
func ExtractFunctionBody(lines []string, startLine int) (int, string, error) {
	if startLine < 0 || startLine >= len(lines) {
		return 0, "", ErrStartLineOutOfRange
	}

	var b strings.Builder
	balance := 0
	opened := false
	consumed := 0

	for _, line := range lines[startLine:] {
		b.WriteString(line)
		b.WriteByte('\n')
		consumed++

		opens := strings.Count(line, "{")
		balance += opens
		balance -= strings.Count(line, "}")
		if opens > 0 {
			opened = true
		}

		if balance < 0 {
			return 0, "", &MalformedInputError{StartLine: startLine, LinesConsumed: consumed, Balance: balance}
		}
		if opened && balance == 0 {
			return consumed, NormalizeIndentation(b.String()), nil
		}
		if !opened && strings.HasSuffix(strings.TrimSpace(line), ";") {
			return consumed, NormalizeIndentation(b.String()), nil
		}
	}

	return 0, "", &MalformedInputError{StartLine: startLine, LinesConsumed: consumed, Balance: balance}
}
