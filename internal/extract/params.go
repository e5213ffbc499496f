package extract

import "strings"

// ParameterSeparator is the literal separator between parameter declarations.
// It is a comma followed by exactly one space, so `Map<String,Integer> m`
// stays whole while `Map<String, Integer> m` is split inside the generic.
const ParameterSeparator = ", "

// ExtractParameters returns the raw parameter declarations of a method.
//
// Only the text before the first '{' is considered: lines are gathered up to
// and including the first line containing '{' (so signatures spanning several
// lines are covered), then cut at that brace. The parameter list is the text
// between the first '(' and the first ')'. A missing or misordered pair
// yields a *MalformedSignatureError; an empty list yields an empty slice.
func ExtractParameters(functionText string) ([]string, error) {
	var sig strings.Builder
	for _, line := range strings.Split(functionText, "\n") {
		sig.WriteByte('\n')
		sig.WriteString(line)
		if strings.Contains(line, "{") {
			break
		}
	}

	signature := sig.String()
	if i := strings.Index(signature, "{"); i >= 0 {
		signature = signature[:i]
	}

	open := strings.Index(signature, "(")
	if open < 0 {
		return nil, &MalformedSignatureError{Signature: strings.TrimSpace(signature), Reason: "no '('"}
	}
	closing := strings.Index(signature, ")")
	if closing < 0 {
		return nil, &MalformedSignatureError{Signature: strings.TrimSpace(signature), Reason: "no ')'"}
	}
	if closing < open {
		return nil, &MalformedSignatureError{Signature: strings.TrimSpace(signature), Reason: "')' before '('"}
	}

	raw := signature[open+1 : closing]
	if raw == "" {
		return []string{}, nil
	}
	return strings.Split(raw, ParameterSeparator), nil
}

// SameParameters reports whether two parameter lists are identical element
// by element.
func SameParameters(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
