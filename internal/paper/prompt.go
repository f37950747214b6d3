package paper

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const promptRules = `You are an experienced university examiner preparing an end-semester question paper.

Rules:
- Every question must be answerable from the syllabus below. Do not introduce topics, authors, or examples that the syllabus does not cover.
- Do not copy sentences from the syllabus verbatim. Rephrase each topic into a proper exam question.
- Ignore page numbers, unit and module headings, credit counts, and reference lists. They are formatting, not content.
- Part A: exactly %d short-answer questions, each answerable in two or three sentences.
- Part B: exactly %d either/or pairs. Both questions of a pair must be of comparable difficulty and cover the same unit.
- Part C: exactly %d long-form question requiring an essay-length answer.
- Respond with a single JSON object and nothing else: no markdown, no code fences, no commentary before or after it.
- Use exactly the field names partA, partB, partC, and a and b inside each partB entry.`

const promptExample = `{
  "partA": ["Define ...", "What is ...?"],
  "partB": [{"a": "Explain ...", "b": "Discuss ..."}],
  "partC": ["Examine in detail ..."]
}`

// BuildPrompt renders the generation prompt for req. It is deterministic:
// the same request and config always produce the same prompt.
//
// The syllabus is rejected, never padded, when it is blank or shorter than
// cfg.MinSyllabusLength runes after trimming.
func BuildPrompt(req Request, cfg Config) (string, error) {
	syllabus := strings.TrimSpace(req.SyllabusText)
	if syllabus == "" {
		return "", &ErrInvalidInput{Field: "syllabusText", Reason: "syllabus text is required"}
	}
	if n := utf8.RuneCountInString(syllabus); n < cfg.MinSyllabusLength {
		return "", &ErrInvalidInput{
			Field:  "syllabusText",
			Reason: fmt.Sprintf("syllabus text must be at least %d characters, got %d", cfg.MinSyllabusLength, n),
		}
	}

	subject := strings.TrimSpace(req.SubjectName)
	if subject == "" {
		subject = "Not specified"
	}

	var b strings.Builder

	fmt.Fprintf(&b, promptRules, PartAQuota, PartBQuota, PartCQuota)

	b.WriteString("\n\nThe response must conform to this JSON Schema:\n")
	b.WriteString(SchemaDocument)

	b.WriteString("\n\nExample of the expected shape (content is illustrative only):\n")
	b.WriteString(promptExample)

	fmt.Fprintf(&b, "\n\nSubject: %s\n", subject)

	b.WriteString("\nSyllabus:\n\"\"\"\n")
	b.WriteString(syllabus)
	b.WriteString("\n\"\"\"\n")

	return b.String(), nil
}
