package services

import (
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("```[a-zA-Z]*\n?")

// stripFences removes markdown code fences such as ```json ... ``` so the JSON can be parsed.
func stripFences(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}
