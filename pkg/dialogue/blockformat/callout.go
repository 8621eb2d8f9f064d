package blockformat

import (
	"regexp"
	"strings"
)

// CalloutFormat is the current convention: a collapsible callout quote with a
// fixed sentinel line, a hand-editing warning, and the session JSON on a
// single prefixed line.
//
//	> [!note]- 🤔 Socratic Dialogue Data
//	> ⚠️ Do not edit this block manually. It stores the dialogue state.
//	> SOCRATIC-SESSION-DATA: {...}
type CalloutFormat struct{}

const (
	CalloutSentinel = "> [!note]- 🤔 Socratic Dialogue Data"
	CalloutWarning  = "> ⚠️ Do not edit this block manually. It stores the dialogue state."
	calloutDataKey  = "> SOCRATIC-SESSION-DATA: "
)

var (
	calloutDataRe  = regexp.MustCompile(`(?m)^> SOCRATIC-SESSION-DATA: (.+)$`)
	calloutBlockRe = regexp.MustCompile(`(?m)^> \[!note\]- 🤔 Socratic Dialogue Data\n(?:^>.*(?:\n|$))*`)
)

func (CalloutFormat) Name() string { return "callout" }

// Render wraps a single-line JSON payload in the callout container.
func (CalloutFormat) Render(jsonPayload string) string {
	return CalloutSentinel + "\n" + CalloutWarning + "\n" + calloutDataKey + jsonPayload
}

func (CalloutFormat) ExtractAll(text string) []string {
	var payloads []string
	for _, m := range calloutDataRe.FindAllStringSubmatch(text, -1) {
		payloads = append(payloads, strings.TrimSpace(m[1]))
	}
	return payloads
}

func (CalloutFormat) FindByID(text, id string) (int, int, bool) {
	for _, loc := range calloutBlockRe.FindAllStringIndex(text, -1) {
		if strings.Contains(text[loc[0]:loc[1]], id) {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}
