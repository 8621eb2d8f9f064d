package parser

import (
	"regexp"
	"strings"
)

// Models are asked to answer with a fenced ```json block, but chatter before
// and after the fence is common. ExtractFencedJSON pulls out the first fenced
// block, or falls back to the outermost braces when no fence is present.
var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")

func ExtractFencedJSON(raw string) (string, bool) {
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		payload := strings.TrimSpace(m[1])
		if payload != "" {
			return payload, true
		}
	}

	// No fence: some models emit bare JSON. Take the outermost object.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(raw[start : end+1]), true
	}

	return "", false
}
