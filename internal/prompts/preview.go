package prompts

import "strings"

const previewLength = 150

var markdownStripper = strings.NewReplacer("#", "", "*", "", "`", "")

// Preview strips '#', '*' and '`' from content and keeps the first 150
// characters followed by "...".
func Preview(content string) string {
	plain := []rune(markdownStripper.Replace(content))
	if len(plain) > previewLength {
		plain = plain[:previewLength]
	}
	return string(plain) + "..."
}
