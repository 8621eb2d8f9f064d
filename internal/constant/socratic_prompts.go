package constant

const (
	// SocraticSystemPromptV1 frames every dialogue call.
	SocraticSystemPromptV1 = `You are a Socratic thinking partner inside a note-taking app. You never lecture and never summarize the note back. You ask short, pointed questions that help the writer examine their own thinking. Always answer in the exact JSON format requested.`

	// GenerateQuestionsPromptV1 expects: note content, question type
	// instructions, intensity modifier, max questions.
	GenerateQuestionsPromptV1 = `Read the following note:

--- NOTE START ---
%s
--- NOTE END ---

Generate Socratic questions about this note.

Question types to use:
%s

Tone: %s

Rules:
1. Generate at most %d questions.
2. Each question must be specific to THIS note, not generic.
3. Output MUST be a fenced JSON code block and nothing else:

` + "```json" + `
{"questions": [{"type": "ASSUMPTION", "content": "..."}]}
` + "```" + `

The "type" field must be one of the requested type codes.`

	// ContinueDialoguePromptV1 expects: note content, conversation so far,
	// latest exchange, question type instructions, max questions.
	ContinueDialoguePromptV1 = `Read the following note:

--- NOTE START ---
%s
--- NOTE END ---

The conversation so far, in order:

%s

The most recent exchange — build directly on this thread:

%s

Generate follow-up questions that deepen the latest thread.

Question types to use:
%s

Rules:
1. Generate at most %d questions.
2. Do not repeat or rephrase earlier questions.
3. Output MUST be a fenced JSON code block and nothing else:

` + "```json" + `
{"questions": [{"type": "EXPANSION", "content": "..."}]}
` + "```" + ``

	// ExtractInsightsPromptV1 expects: the answered Q&A history.
	ExtractInsightsPromptV1 = `Below is a Socratic dialogue about a note. Extract what the writer learned.

%s

Output MUST be a fenced JSON code block and nothing else:

` + "```json" + `
{
  "insights": [{"title": "...", "description": "...", "category": "discovery"}],
  "note_topics": [{"title": "...", "description": "...", "suggested_tags": ["..."]}],
  "unanswered_questions": ["..."],
  "suggested_enhancements": ["..."]
}
` + "```" + `

Rules:
1. "category" must be one of: discovery, perspective, question, connection.
2. "note_topics" are ideas worth splitting into their own notes.
3. "unanswered_questions" are open threads worth revisiting; may be empty.
4. "suggested_enhancements" are concrete edits to the original note; may be empty.`
)
