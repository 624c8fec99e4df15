package lang

import "strings"

// escapedNewline is the two-character sequence a template may use to place
// several lines on one physical line.
const escapedNewline = `\n`

// Lines splits source into lines. Physical line terminators and every
// escaped newline sequence (a backslash followed by 'n') both end a line.
// A trailing terminator does not produce an extra empty line.
func Lines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.TrimSuffix(source, "\n")

	if source == "" {
		return nil
	}

	var lines []string

	for phys := range strings.SplitSeq(source, "\n") {
		lines = append(lines, strings.Split(phys, escapedNewline)...)
	}

	return lines
}
