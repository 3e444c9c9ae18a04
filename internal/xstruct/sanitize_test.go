package xstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"indented fence", "  ```\n{\"a\":1}\n  ```  ", `{"a":1}`},
		{"xml declaration", `<?xml version="1.0" encoding="UTF-8"?>` + "\n{\"a\":1}", `{"a":1}`},
		{"double quoted", `"{"a":1}"`, `{"a":1}`},
		{"single quoted", `'{"a":1}'`, `{"a":1}`},
		{"backtick quoted", "`{\"a\":1}`", `{"a":1}`},
		{"quoted inside fence", "```\n'{\"a\":1}'\n```", `{"a":1}`},
		{"bom", "\ufeff{\"a\":1}", `{"a":1}`},
		{"only a quote", `"`, `"`},
		{"mismatched quotes kept", `"{"a":1}'`, `"{"a":1}'`},
		{"empty", ``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"```",
		"``````",
		`""`,
		`"""x"""`,
		`'"'"'x'"'"'`,
		"\"```\n{}\n```\"",
		"`\n```json\n\"{}\"\n```\n`",
		`<?xml version="1.0"?><?xml version="1.0"?>"x"`,
		"\ufeff\ufeff\"\ufeffx\"",
		"line one\n```\nline two",
		`"unbalanced`,
		"plain text with 'inner' quotes",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}
