// Package dialogue renders sessions into a note document and recovers them
// again, across every block format ever written.
package dialogue

import (
	"encoding/json"
	"log"
	"strings"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/pkg/dialogue/blockformat"
)

// SectionSeparator is placed between the pre-existing note content and an
// appended dialogue section.
const SectionSeparator = "\n\n---\n\n"

// RenderSection produces a session's full region: transcript markdown followed
// by the embedded data block in the current format. NoteContext is always
// excluded from the durable payload.
func RenderSection(session *entity.DialogueSession) (string, error) {
	data := session.ToData(entity.ExportOptions{ExcludeNoteContext: true})
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	block := blockformat.Current().(blockformat.CalloutFormat).Render(string(payload))
	return session.ToMarkdown() + "\n" + block + "\n", nil
}

// Upsert writes the session into the document: if a block with the same
// session id exists (in any format), its whole region — from the session's
// section heading through the block — is replaced in place; otherwise a new
// section is appended after a separator.
func Upsert(doc string, session *entity.DialogueSession) (string, error) {
	section, err := RenderSection(session)
	if err != nil {
		return "", err
	}

	for _, format := range blockformat.Formats() {
		start, end, ok := format.FindByID(doc, session.Id)
		if !ok {
			continue
		}
		regionStart := regionStartFor(doc, start)
		return doc[:regionStart] + section + doc[end:], nil
	}

	if strings.TrimSpace(doc) == "" {
		return section, nil
	}
	return strings.TrimRight(doc, "\n") + SectionSeparator + section, nil
}

// ExtractSessions recovers every session embedded in the document. Formats
// are tried in priority order and the first one yielding at least one session
// wins. Blocks that fail to parse are logged and skipped, never fatal.
func ExtractSessions(doc, noteContext string) []*entity.DialogueSession {
	for _, format := range blockformat.Formats() {
		payloads := format.ExtractAll(doc)
		if len(payloads) == 0 {
			continue
		}

		sessions := make([]*entity.DialogueSession, 0, len(payloads))
		for _, payload := range payloads {
			var data entity.SessionData
			if err := json.Unmarshal([]byte(payload), &data); err != nil {
				log.Printf("[WARN] Skipping unparseable %s dialogue block: %v", format.Name(), err)
				continue
			}
			session, err := entity.SessionFromData(data, noteContext)
			if err != nil {
				log.Printf("[WARN] Skipping invalid %s dialogue block: %v", format.Name(), err)
				continue
			}
			sessions = append(sessions, session)
		}

		if len(sessions) > 0 {
			return sessions
		}
	}
	return nil
}

// Remove strips the session with the given id, in whichever format it is
// stored. When the last block is gone the whole dialogue section (and its
// dangling separator) goes with it, leaving the prior content trimmed.
func Remove(doc, sessionId string) (string, bool) {
	removed := false
	result := doc

	for _, format := range blockformat.Formats() {
		start, end, ok := format.FindByID(result, sessionId)
		if !ok {
			continue
		}
		regionStart := regionStartFor(result, start)
		result = result[:regionStart] + result[end:]
		removed = true
		break
	}

	if !removed {
		return doc, false
	}

	if !anyBlockLeft(result) {
		if idx := strings.Index(result, entity.DialogueSectionHeading); idx >= 0 {
			result = result[:idx]
		}
		result = strings.TrimRight(result, "\n")
		if strings.HasSuffix(result, "\n---") {
			result = strings.TrimRight(strings.TrimSuffix(result, "---"), "\n")
		}
	}

	return result, true
}

// regionStartFor backtracks from a block to the section heading that opens
// its transcript. A legacy block without a heading starts its own region.
func regionStartFor(doc string, blockStart int) int {
	if idx := strings.LastIndex(doc[:blockStart], entity.DialogueSectionHeading); idx >= 0 {
		return idx
	}
	return blockStart
}

func anyBlockLeft(doc string) bool {
	for _, format := range blockformat.Formats() {
		if len(format.ExtractAll(doc)) > 0 {
			return true
		}
	}
	return false
}
