package extract

// ExtractedFunction is one method isolated from a source file.
//
// Values are built once by ExtractFunction and not modified afterwards;
// Parameters is never nil.
type ExtractedFunction struct {
	Name       string   `json:"name" yaml:"name"`
	StartLine  int      `json:"start_line" yaml:"start_line"`
	Length     int      `json:"length" yaml:"length"`
	Source     string   `json:"source" yaml:"source"`
	Parameters []string `json:"params" yaml:"params"`
}

// ExtractFunction isolates the method named name whose declaration starts at
// the 0-based startLine, then reads its parameter list from the isolated text.
func ExtractFunction(lines []string, startLine int, name string) (*ExtractedFunction, error) {
	length, body, err := ExtractFunctionBody(lines, startLine)
	if err != nil {
		return nil, err
	}

	params, err := ExtractParameters(body)
	if err != nil {
		return nil, err
	}

	return &ExtractedFunction{
		Name:       name,
		StartLine:  startLine,
		Length:     length,
		Source:     body,
		Parameters: params,
	}, nil
}
