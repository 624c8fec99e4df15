package lang

import (
	"fmt"
	"strconv"
	"strings"
)

const paramMarker = '%'

// substitute replaces every positional parameter "%k" in text with the
// decimal value of vec[k-1]. A marker is the '%' character followed by one
// or more ASCII digits; a '%' followed by anything else is copied verbatim.
func substitute(text string, vec []int) (string, error) {
	if strings.IndexByte(text, paramMarker) < 0 {
		return text, nil
	}

	var sb strings.Builder

	sb.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]
		if c != paramMarker {
			sb.WriteByte(c)
			i++

			continue
		}

		j := i + 1
		for j < len(text) && isDigit(text[j]) {
			j++
		}

		if j == i+1 {
			sb.WriteByte(c)
			i++

			continue
		}

		k, err := strconv.Atoi(text[i+1 : j])
		if err != nil || k < 1 || k > len(vec) {
			return "", ErrParamRange.Wrap(
				fmt.Errorf("%s with %d active", text[i:j], len(vec)),
			)
		}

		sb.WriteString(strconv.Itoa(vec[k-1]))
		i = j
	}

	return sb.String(), nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// Statement-termination markers.
const (
	terminator      = ";"
	labelMarker     = ":"
	continuation    = `\`
	directiveMarker = "."
)

// terminate appends a semicolon to line unless it is empty, already ends a
// statement or label, continues onto the next line, or is a directive.
func terminate(line string) string {
	switch {
	case line == "",
		strings.HasSuffix(line, terminator),
		strings.HasSuffix(line, labelMarker),
		strings.HasSuffix(line, continuation),
		strings.HasPrefix(line, directiveMarker):
		return line
	}

	return line + terminator
}
