// Package persona holds the named system-prompt templates a user can pick
// for a conversation.
package persona

import "sort"

// Default is the persona used when none is requested.
const Default = "Default"

// Custom selects a caller-supplied system prompt instead of a template.
const Custom = "Custom"

var personas = map[string]string{
	Default: "",
	"Professional": "You are a professional assistant. Maintain a formal tone, provide accurate information, " +
		"and focus on delivering precise, well-structured responses.",
	"Friendly": "You are a friendly and approachable assistant. Use a casual, warm tone while remaining " +
		"helpful and informative. Feel free to use appropriate emojis and conversational language.",
	"Technical": "You are a technical expert. Focus on providing detailed technical explanations, " +
		"use appropriate terminology, and include code examples when relevant.",
	"Teacher": "You are an educational assistant. Break down complex topics into understandable parts, " +
		"provide examples, and encourage learning through questions and explanations.",
}

// Names returns all selectable persona names, sorted, with Custom last.
func Names() []string {
	names := make([]string, 0, len(personas)+1)
	for name := range personas {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(names, Custom)
}

// Resolve returns the system prompt for the selected persona. For Custom the
// caller-supplied prompt is used verbatim. Unknown names resolve to the
// default (empty) prompt.
func Resolve(name, custom string) string {
	if name == Custom {
		return custom
	}
	return personas[name]
}
