package llm

import (
	"fmt"
	"strings"
)

// Mode names a sampling preset.
type Mode string

const (
	// ModePrecision is low temperature with low top_p.
	ModePrecision Mode = "precision"
	// ModeControlledCreative is low temperature with high top_p.
	ModeControlledCreative Mode = "controlled_creative"
	// ModeDynamicFocused is high temperature with low top_p.
	ModeDynamicFocused Mode = "dynamic_focused"
	// ModeExploratory is high temperature with high top_p.
	ModeExploratory Mode = "exploratory"
	// ModeBalanced is moderate temperature and top_p.
	ModeBalanced Mode = "balanced"
)

// Sampling is the resolved generation parameters for a Mode.
type Sampling struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

var presets = map[Mode]struct{ temperature, topP float64 }{
	ModePrecision:          {0.2, 0.1},
	ModeControlledCreative: {0.2, 0.9},
	ModeDynamicFocused:     {0.9, 0.2},
	ModeExploratory:        {0.9, 0.9},
	ModeBalanced:           {0.5, 0.5},
}

// Resolve returns the sampling triple for m. maxTokens comes from process
// configuration. Unknown modes resolve to ModeBalanced.
func (m Mode) Resolve(maxTokens int) Sampling {
	p, ok := presets[m]
	if !ok {
		p = presets[ModeBalanced]
	}
	return Sampling{Temperature: p.temperature, TopP: p.topP, MaxTokens: maxTokens}
}

// ParseMode accepts preset names in any case, with spaces or dashes.
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	norm = strings.TrimSuffix(norm, "_mode")
	m := Mode(norm)
	if _, ok := presets[m]; !ok {
		return "", fmt.Errorf("unknown sampling mode %q", s)
	}
	return m, nil
}
