package parser

import "fmt"

// ParseError reports the position of a syntax error. File is filled in by
// callers that know which file was parsed.
type ParseError struct {
	Message string
	File    string
	Line    uint32
	Column  uint32
}

func (e *ParseError) Error() string {
	pos := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.File != "" {
		pos = e.File + ":" + pos
	}
	return pos + ": " + e.Message
}

type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return "unsupported language: " + e.Language
}
