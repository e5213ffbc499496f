package extract

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExtractFunctionBody(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		start      int
		wantLength int
		wantBody   string
	}{
		{
			name:       "indented single-line signature",
			lines:      []string{"    void foo() {", "        return;", "    }"},
			start:      0,
			wantLength: 3,
			wantBody:   "void foo() {\n    return;\n}\n\n",
		},
		{
			name:       "brace on the line after the signature",
			lines:      SplitLines("void foo(int a)\n{\n  return;\n}\n"),
			start:      0,
			wantLength: 4,
			wantBody:   "void foo(int a)\n{\n  return;\n}\n",
		},
		{
			name: "stops at the closing line of the requested method",
			lines: []string{
				"class A {",
				"  int f() {",
				"    if (x) { return 1; }",
				"    return 2;",
				"  }",
				"  int g() {",
				"  }",
				"}",
			},
			start:      1,
			wantLength: 4,
			wantBody:   "int f() {\n  if (x) { return 1; }\n  return 2;\n}\n\n",
		},
		{
			name:       "one-line method",
			lines:      []string{"  int one() { return 1; }", "  int two() { return 2; }"},
			start:      0,
			wantLength: 1,
			wantBody:   "int one() { return 1; }\n\n",
		},
		{
			name:       "body-less declaration ends at semicolon",
			lines:      []string{"    abstract void f();", "    void g() {", "    }"},
			start:      0,
			wantLength: 1,
			wantBody:   "abstract void f();\n\n",
		},
		{
			name:       "multi-line body-less declaration",
			lines:      []string{"  void f(int a,", "         int b);", "  void g() {}"},
			start:      0,
			wantLength: 2,
			wantBody:   "void f(int a,\n       int b);\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			length, body, err := ExtractFunctionBody(tt.lines, tt.start)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if length != tt.wantLength {
				t.Errorf("length = %d, want %d", length, tt.wantLength)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestExtractFunctionBodyUnbalanced(t *testing.T) {
	lines := SplitLines("void broken() {\n  if (x) {\n")

	length, body, err := ExtractFunctionBody(lines, 0)
	var mi *MalformedInputError
	if !errors.As(err, &mi) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
	if mi.Balance != 2 {
		t.Errorf("balance = %d, want 2", mi.Balance)
	}
	if mi.LinesConsumed != 3 {
		t.Errorf("lines consumed = %d, want 3", mi.LinesConsumed)
	}
	if length != 0 || body != "" {
		t.Errorf("expected no partial result, got %d %q", length, body)
	}
}

func TestExtractFunctionBodyNegativeBalance(t *testing.T) {
	_, _, err := ExtractFunctionBody([]string{"  }", "void f() {", "}"}, 0)
	var mi *MalformedInputError
	if !errors.As(err, &mi) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
	if mi.Balance >= 0 {
		t.Errorf("balance = %d, want negative", mi.Balance)
	}
	if !strings.Contains(mi.Error(), "unmatched") {
		t.Errorf("unexpected message %q", mi.Error())
	}
}

func TestExtractFunctionBodyBraceInStringLiteral(t *testing.T) {
	// Braces inside literals are counted like code, so this body never balances.
	lines := []string{"void f() {", `  String s = "{";`, "}"}
	_, _, err := ExtractFunctionBody(lines, 0)
	if !IsMalformed(err) {
		t.Fatalf("expected malformed input, got %v", err)
	}
}

func TestExtractFunctionBodyStartOutOfRange(t *testing.T) {
	for _, start := range []int{-1, 3, 10} {
		_, _, err := ExtractFunctionBody([]string{"a", "b", "c"}, start)
		if !errors.Is(err, ErrStartLineOutOfRange) {
			t.Errorf("start %d: expected ErrStartLineOutOfRange, got %v", start, err)
		}
	}
}

func TestExtractFunctionBodyLengthMatchesLines(t *testing.T) {
	source := `public class Demo {
    public int count(java.util.List<String> items) {
        int n = 0;
        for (String s : items) {
            if (!s.isEmpty()) {
                n++;
            }
        }
        return n;
    }
}
`
	length, body, err := ExtractFunctionBody(SplitLines(source), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if length != 9 {
		t.Fatalf("length = %d, want 9", length)
	}
	// One '\n' per consumed line plus the trailing blank line from normalization.
	if got := strings.Count(body, "\n") - 1; got != length {
		t.Errorf("body has %d lines, want %d", got, length)
	}
	if !strings.HasPrefix(body, "public int count(") {
		t.Errorf("body not left-aligned: %q", body)
	}
}

func TestNormalizeIndentation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no offset is unchanged", "void f() {\n}\n", "void f() {\n}\n"},
		{"strips offset and adds trailing newline", "  a\n    b\n  c\n", "a\n  b\nc\n\n"},
		{"short lines clamp to empty", "    a\n  b\n", "a\n\n\n"},
		{"non-space characters are dropped too", "    a\n//x b\n", "a\nb\n\n"},
		{"leading tab is not an offset", "\tfoo\n", "\tfoo\n"},
		{"count stops at first non-space", "  \t x\n  y\n", "\t x\ny\n\n"},
		{"multibyte characters count once", "  é\n  ü", "é\nü\n"},
		{"empty text", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIndentation(tt.in); got != tt.want {
				t.Errorf("NormalizeIndentation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIndentationIdempotent(t *testing.T) {
	inputs := []string{
		"    void foo() {\n        return;\n    }\n",
		"  a\n  b",
		"x\n  y\n",
	}
	for _, in := range inputs {
		once := NormalizeIndentation(in)
		twice := NormalizeIndentation(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestExtractFunction(t *testing.T) {
	lines := []string{"    void foo(int a, String b) {", "        return;", "    }"}
	fn, err := ExtractFunction(lines, 0, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn.Name != "foo" || fn.StartLine != 0 || fn.Length != 3 {
		t.Errorf("unexpected function header: %+v", fn)
	}
	if !reflect.DeepEqual(fn.Parameters, []string{"int a", "String b"}) {
		t.Errorf("params = %q", fn.Parameters)
	}

	_, err = ExtractFunction([]string{"void f() {", "  if (x) {"}, 0, "f")
	if !IsMalformed(err) {
		t.Errorf("expected malformed error, got %v", err)
	}
}
