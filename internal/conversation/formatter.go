package conversation

import (
	"regexp"
	"strings"
)

var (
	blankRunRE = regexp.MustCompile(`\n{3,}`)
	bulletRE   = regexp.MustCompile(`^(\s*)-\s+`)
	headingRE  = regexp.MustCompile(`^#{1,6}\s+`)
)

// FormatReply normalizes raw completion text for chat presentation:
// paragraph spacing is collapsed, hyphen bullets become bullet characters,
// markdown headings become uppercase lines, and anything after the first
// question mark is dropped so the reply asks at most one question.
// Applying it twice gives the same result as once.
func FormatReply(text string) string {
	text = strings.TrimSpace(text)
	text = blankRunRE.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if m := headingRE.FindString(line); m != "" {
			lines[i] = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(line, m)))
			continue
		}
		if m := bulletRE.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + "• " + line[len(m[0]):]
		}
	}
	text = strings.Join(lines, "\n")

	if first := strings.Index(text, "?"); first >= 0 && strings.Count(text, "?") > 1 {
		text = text[:first+1]
	}

	return strings.TrimSpace(text)
}
