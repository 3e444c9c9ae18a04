package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON locates the first JSON object in raw model output and decodes
// it into out. Code fences, surrounding prose, and bare leading-decimal
// numbers (".5") are tolerated. If out implements Validator it is checked
// after decoding.
func DecodeJSON(raw string, out any) error {
	block := firstObject(dropFenceLines(raw))
	if block == "" {
		return fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	if err := json.Unmarshal([]byte(fixLeadingDecimals(block)), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return nil
}

func dropFenceLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// firstObject returns the first balanced {...} block, honouring string
// literals and escapes.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// fixLeadingDecimals rewrites ".8" and "-.3" outside strings to "0.8" and
// "-0.3". Some models emit these forms.
func fixLeadingDecimals(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	inString, escaped := false, false
	var prev byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '.' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9':
			switch prev {
			case 0, ':', ',', '[', '{', '-':
				b.WriteByte('0')
			}
		}
		b.WriteByte(c)
		if !inString && c != ' ' && c != '\n' && c != '\r' && c != '\t' {
			prev = c
		}
	}
	return b.String()
}
