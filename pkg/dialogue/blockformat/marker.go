package blockformat

import (
	"regexp"
	"strings"
)

// MarkerFormat is the oldest convention: the JSON payload between a pair of
// comment markers. Still parsed so documents written by early versions keep
// working; never written anymore.
//
//	%%SOCRATIC_DIALOGUE_START%%
//	{...}
//	%%SOCRATIC_DIALOGUE_END%%
type MarkerFormat struct{}

const (
	MarkerStart = "%%SOCRATIC_DIALOGUE_START%%"
	MarkerEnd   = "%%SOCRATIC_DIALOGUE_END%%"
)

var markerBlockRe = regexp.MustCompile(`(?s)%%SOCRATIC_DIALOGUE_START%%\s*(.*?)\s*%%SOCRATIC_DIALOGUE_END%%`)

func (MarkerFormat) Name() string { return "marker" }

func (MarkerFormat) ExtractAll(text string) []string {
	var payloads []string
	for _, m := range markerBlockRe.FindAllStringSubmatch(text, -1) {
		if payload := strings.TrimSpace(m[1]); payload != "" {
			payloads = append(payloads, payload)
		}
	}
	return payloads
}

func (MarkerFormat) FindByID(text, id string) (int, int, bool) {
	for _, loc := range markerBlockRe.FindAllStringIndex(text, -1) {
		if strings.Contains(text[loc[0]:loc[1]], id) {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}
