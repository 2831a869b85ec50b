// Package textchunk splits long text into bounded chunks so prompts stay
// under a model's context limit.
package textchunk

import (
	"regexp"
	"strings"
)

// sentenceBoundary matches the whitespace after a sentence-ending mark.
var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// EstimateTokens gives a rough token count (4 chars per token).
func EstimateTokens(text string) int {
	return len(text) / 4
}

// EnsureTokenLimit truncates text so its estimated token count stays within
// maxTokens.
func EnsureTokenLimit(text string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(text) <= maxTokens {
		return text
	}
	return text[:maxTokens*4]
}

// Chunk splits text into ordered chunks of approximately maxTokens estimated
// tokens each. Splitting prefers sentence boundaries; sentences accumulate
// greedily until the budget would be exceeded, then a new chunk starts. A
// single sentence larger than the budget still becomes its own chunk, so a
// chunk can exceed the budget by at most one sentence.
func Chunk(text string, maxTokens int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []string
	var current []string
	currentSize := 0

	for _, sentence := range sentences {
		size := EstimateTokens(sentence)

		if currentSize+size > maxTokens && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			currentSize = 0
		}

		current = append(current, sentence)
		currentSize += size
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// splitSentences breaks text at `.`, `!` or `?` followed by whitespace,
// keeping the punctuation with the preceding sentence.
func splitSentences(text string) []string {
	marked := sentenceBoundary.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}
