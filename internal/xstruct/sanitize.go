package xstruct

import (
	"regexp"
	"strings"
)

var declHeader = regexp.MustCompile(`(?s)^\s*<\?xml.*?\?>`)

var quotePairs = []string{`"`, `'`, "`"}

// Sanitize strips the wrapping models commonly put around structured output:
// code-fence lines, a leading <?xml ...?> declaration or byte-order mark, and
// enclosing quote pairs. Steps repeat until nothing changes, so
// Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	cur := raw
	for {
		next := sanitizeOnce(cur)
		if next == cur {
			return cur
		}
		cur = next
	}
}

func sanitizeOnce(s string) string {
	s = dropFences(s)
	s = strings.TrimPrefix(s, "\ufeff")
	s = declHeader.ReplaceAllLiteralString(s, "")
	s = strings.TrimSpace(s)
	for _, q := range quotePairs {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			s = s[1 : len(s)-1]
			break
		}
	}
	return s
}

func dropFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
