package models

import "strings"

// TitleCase renders a snake_case or dotted field name for display:
// "workflow_name" becomes "Workflow Name".
func TitleCase(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, ".", " ")

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
