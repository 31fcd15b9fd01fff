package shared

import "strings"

// CenterContent renders content vertically centered in the available height.
func CenterContent(content string, height int) string {
	lines := splitLines(content)
	if len(lines) >= height {
		return strings.TrimRight(content, "\n")
	}
	return strings.Join(padLines(lines, height), "\n")
}

// CenterWithBottomHints renders content vertically centered in the available
// height, with hint text pinned to the very bottom line.
func CenterWithBottomHints(content, hints string, height int) string {
	contentLines := splitLines(content)
	hintLines := strings.Split(strings.TrimRight(hints, "\n"), "\n")

	avail := height - len(hintLines)
	if len(contentLines) >= avail {
		return strings.Join(append(contentLines, hintLines...), "\n")
	}

	lines := padLines(contentLines, avail)
	return strings.Join(append(lines, hintLines...), "\n")
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// padLines centers lines in a block of exactly height lines.
func padLines(lines []string, height int) []string {
	topPad := (height - len(lines)) / 2
	out := make([]string, topPad, height)
	out = append(out, lines...)
	for len(out) < height {
		out = append(out, "")
	}
	return out
}
