package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// cmdPrefix introduces a REPL command. It is only recognized when no loop is
// open.
const cmdPrefix = ":"

// commands are the available REPL commands.
var commands = []string{"help", "show", "edit", "reset", "clear", "quit"}

// isCommand reports whether input is a REPL command rather than a template
// line.
func isCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), cmdPrefix)
}

// completions returns the commands fuzzy-matching the command word in input,
// best match first. Input that is not a command has no completions.
func completions(input string) fuzzy.Matches {
	if !isCommand(input) {
		return nil
	}

	word := strings.TrimPrefix(strings.TrimSpace(input), cmdPrefix)
	if word == "" || strings.ContainsAny(word, " \t") {
		return nil
	}

	return fuzzy.Find(word, commands)
}

// resolveCommand returns the command named by word: an exact name, or the
// only command beginning with word.
func resolveCommand(word string) (string, bool) {
	var found []string

	for _, c := range commands {
		if c == word {
			return c, true
		}

		if strings.HasPrefix(c, word) {
			found = append(found, c)
		}
	}

	if len(found) == 1 {
		return found[0], true
	}

	return "", false
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate uses the selected
// style.
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, i == selected)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
