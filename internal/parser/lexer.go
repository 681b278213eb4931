package parser

import "strings"

// Tokenize splits a raw section into its ordered, non-empty, trimmed lines.
// Line order is the only structural signal the rendered text carries, so no
// filtering beyond blank-line removal happens here.
func Tokenize(section string) []string {
	lines := strings.Split(section, "\n")
	tokens := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	return tokens
}
