package blockformat

import (
	"regexp"
	"strings"
)

// CommentFormat is the intermediate legacy convention: the whole payload on
// one line inside a single comment.
//
//	%%SOCRATIC_SESSION:{...}%%
type CommentFormat struct{}

const CommentPrefix = "%%SOCRATIC_SESSION:"

var commentBlockRe = regexp.MustCompile(`(?m)^%%SOCRATIC_SESSION:(\{.*\})%%[ \t]*$`)

func (CommentFormat) Name() string { return "comment" }

func (CommentFormat) ExtractAll(text string) []string {
	var payloads []string
	for _, m := range commentBlockRe.FindAllStringSubmatch(text, -1) {
		payloads = append(payloads, strings.TrimSpace(m[1]))
	}
	return payloads
}

func (CommentFormat) FindByID(text, id string) (int, int, bool) {
	for _, loc := range commentBlockRe.FindAllStringIndex(text, -1) {
		if strings.Contains(text[loc[0]:loc[1]], id) {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}
