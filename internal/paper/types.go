package paper

// Expected item counts per section. They are requested in the prompt and
// checked by CheckCardinality, but a paper that misses them is still valid.
const (
	PartAQuota = 10
	PartBQuota = 5
	PartCQuota = 1
)

// Request is the input for a single question paper generation.
type Request struct {
	// SubjectName is display-only context for the prompt. Optional.
	SubjectName string `json:"subjectName"`

	// SyllabusText is the raw syllabus the questions must be drawn from.
	SyllabusText string `json:"syllabusText"`
}

// QuestionPaper is a validated, three-part exam paper.
type QuestionPaper struct {
	// PartA holds short-answer questions.
	PartA []string `json:"partA"`

	// PartB holds either/or question pairs.
	PartB []EitherOr `json:"partB"`

	// PartC holds long-form questions.
	PartC []string `json:"partC"`
}

// EitherOr is a Part B pair; the candidate answers one of the two.
type EitherOr struct {
	A string `json:"a"`
	B string `json:"b"`
}
