package paper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/papersmith/papersmith/internal/llm"
)

// SchemaDocument is the JSON Schema of a QuestionPaper. The prompt embeds it
// verbatim and Extract validates against it, so the two cannot drift.
// Item counts are not constrained here; see CheckCardinality.
const SchemaDocument = `{
  "title": "QuestionPaper",
  "type": "object",
  "required": ["partA", "partB", "partC"],
  "properties": {
    "partA": {
      "type": "array",
      "description": "Short-answer questions",
      "items": { "type": "string" }
    },
    "partB": {
      "type": "array",
      "description": "Either/or question pairs",
      "items": {
        "type": "object",
        "required": ["a", "b"],
        "properties": {
          "a": { "type": "string" },
          "b": { "type": "string" }
        }
      }
    },
    "partC": {
      "type": "array",
      "description": "Long-form questions",
      "items": { "type": "string" }
    }
  }
}`

const schemaURL = "schema://question-paper.json"

// PaperSchema is SchemaDocument in the form providers accept as a native
// structured output hint.
var PaperSchema = &llm.Schema{
	Name:        "question_paper",
	Description: "An exam question paper with parts A, B and C",
	Definition:  mustDefinition(SchemaDocument),
}

// requiredFields is the top-level required list, in document order.
var requiredFields = mustRequired(PaperSchema.Definition)

// paperValidator is SchemaDocument compiled once per process.
var paperValidator = mustCompile(SchemaDocument)

func mustCompile(doc string) *jsonschema.Schema {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		panic(fmt.Sprintf("paper: parse schema document: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, parsed); err != nil {
		panic(fmt.Sprintf("paper: add schema resource: %v", err))
	}
	return c.MustCompile(schemaURL)
}

func mustDefinition(doc string) map[string]any {
	var def map[string]any
	if err := json.Unmarshal([]byte(doc), &def); err != nil {
		panic(fmt.Sprintf("paper: invalid schema document: %v", err))
	}
	return def
}

func mustRequired(def map[string]any) []string {
	raw, _ := def["required"].([]any)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
