// Package blockformat implements the embedded data block conventions used to
// persist dialogue sessions inside a note document. Reads try each known
// format in priority order; writes always use the current (callout) format.
package blockformat

// Format is one block-wrapping convention. ExtractAll returns the raw JSON
// payload of every block found, in document order. FindByID locates the byte
// range of the block containing the literal session id substring.
type Format interface {
	Name() string
	ExtractAll(text string) []string
	FindByID(text, id string) (start, end int, ok bool)
}

// Formats returns all known formats, current first. Order matters: the first
// format yielding at least one session wins on read.
func Formats() []Format {
	return []Format{
		CalloutFormat{},
		MarkerFormat{},
		CommentFormat{},
	}
}

// Current is the authoritative write format.
func Current() Format {
	return CalloutFormat{}
}
