package agent

import (
	"regexp"
	"strings"
)

var thinkingRe = regexp.MustCompile(`(?s)<thinking>.*?</thinking>`)

// CleanResponse strips leaked reasoning blocks from model output.
// Models occasionally ignore the system prompt and emit <thinking> tags.
func CleanResponse(s string) string {
	return strings.TrimSpace(thinkingRe.ReplaceAllString(s, ""))
}
