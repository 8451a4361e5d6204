// Package prompt adapts user prompts to the instruction style a backend
// performs best with. Optimization is advisory: it is pure, never fails, and
// applying it twice is the same as applying it once, so callers can always
// skip it or feed its output back in.
package prompt

import (
	"strings"
)

// Optimize wraps a generation prompt in the scaffold preferred by the given
// provider. Empty and already-optimized prompts pass through unchanged.
func Optimize(input, provider string) string {
	if strings.TrimSpace(input) == "" {
		return input
	}

	scaffold := generateScaffold

	switch strings.ToLower(provider) {
	case "zhipuai", "zhipu":
		scaffold = generateScaffoldChinese
	}

	if strings.Contains(input, firstLine(scaffold)) {
		return input
	}

	return scaffold + input
}

// OptimizeEdit wraps an edit instruction for image transformations.
func OptimizeEdit(input, provider string) string {
	if strings.TrimSpace(input) == "" {
		return input
	}

	if strings.Contains(input, firstLine(editScaffold)) {
		return input
	}

	return editScaffold + input + editScaffoldSuffix
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
