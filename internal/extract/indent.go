package extract

import "strings"

// NormalizeIndentation left-aligns text by the run of leading spaces on its
// first line. Tabs are not counted.
//
// When the offset is non-zero, the first offset characters are dropped from
// every line (lines shorter than that become empty) and a '\n' is written
// after every element of the split, including the last. Text that already
// ends in '\n' therefore gains one trailing blank line. Text with a zero
// offset is returned unchanged.
func NormalizeIndentation(text string) string {
	lines := strings.Split(text, "\n")

	offset := len(lines[0]) - len(strings.TrimLeft(lines[0], " "))
	if offset == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, line := range lines {
		b.WriteString(dropRunes(line, offset))
		b.WriteByte('\n')
	}
	return b.String()
}

// dropRunes removes the first n characters of s, clamping at len(s).
func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}
