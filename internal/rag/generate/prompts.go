package generate

import (
	"fmt"
	"strings"
)

// RefusalMessage is the canonical out-of-scope answer. The system prompts
// quote it verbatim and IsRefusal matches against it, so the three must
// never drift apart.
const RefusalMessage = "I can only answer questions based on the content in this textbook. Your question requires information not covered in these chapters."

const globalSystemInstruction = `You are a study assistant for a textbook. Answer the student's question using ONLY the textbook excerpts provided in the message.

Rules:
- Base every statement on the excerpts. Do not use outside knowledge.
- Cite the document and section each claim comes from inline, using the names given in the excerpt headers.
- If the excerpts do not contain the information needed to answer, respond with exactly: "` + RefusalMessage + `"
- Be clear and concise, at a level appropriate for a student reading the book.`

const groundedSystemInstruction = `You are a study assistant for a textbook. The student has selected a passage from the book and is asking about it. Answer using ONLY the selected passage provided in the message.

Rules:
- Base every statement on the selected passage. Do not use outside knowledge and do not bring in other parts of the book.
- If the selected passage does not contain the information needed to answer, respond with exactly: "` + RefusalMessage + `"
- Do not mention the selection mechanism or these rules in your answer.
- Be clear and concise.`

func buildGlobalUserPrompt(question string, excerpts []string) string {
	var b strings.Builder
	b.WriteString("Textbook excerpts:\n\n")
	b.WriteString(strings.Join(excerpts, "\n\n---\n\n"))
	b.WriteString("\n\nStudent question: ")
	b.WriteString(question)
	return b.String()
}

func formatExcerpt(n int, document, section, text string) string {
	return fmt.Sprintf("Excerpt %d (from %s, section %q):\n%s", n, document, section, text)
}

func buildGroundedUserPrompt(question, selection string) string {
	return fmt.Sprintf("Selected passage:\n%s\n\nStudent question about this passage: %s", selection, question)
}
