package paper

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// fencedBlock matches a complete markdown code block whose opening and
// closing fences each sit on their own line. Backticks inside JSON strings
// never start a line, so they cannot close the block.
var fencedBlock = regexp.MustCompile("(?sm)^[ \t]*```[A-Za-z0-9_-]*[ \t]*\r?\n(.*?)\r?\n[ \t]*```[ \t]*$")

// openingFence matches a fence line at the very start of the text.
var openingFence = regexp.MustCompile("\\A```[A-Za-z0-9_-]*[ \t]*(\r?\n|\\z)")

var reasonPrinter = message.NewPrinter(language.English)

// Extract turns a raw completion into a validated QuestionPaper.
//
// The text goes through one ordered pipeline: code fences are stripped, the
// span from the first '{' to the last '}' is parsed, the top-level fields are
// checked, and the result is validated against SchemaDocument. Item counts
// are not enforced. The decoded paper is returned as the model wrote it.
func Extract(raw string) (*QuestionPaper, error) {
	text := stripFences(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, &ErrMalformedOutput{
			Reason:  "no JSON object found",
			Snippet: snippet(text),
		}
	}
	candidate := text[start : end+1]

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, &ErrMalformedOutput{
			Reason:  "invalid JSON",
			Snippet: snippet(candidate),
			Err:     err,
		}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &ErrMalformedOutput{
			Reason:  "top-level value is not an object",
			Snippet: snippet(candidate),
		}
	}
	for _, field := range requiredFields {
		if _, ok := obj[field]; !ok {
			return nil, &ErrMalformedOutput{
				Field:   field,
				Reason:  "missing required field",
				Snippet: snippet(candidate),
			}
		}
	}

	if err := paperValidator.Validate(parsed); err != nil {
		field, reason := describeValidation(err)
		return nil, &ErrMalformedOutput{
			Field:   field,
			Reason:  reason,
			Snippet: snippet(candidate),
			Err:     err,
		}
	}

	var paper QuestionPaper
	if err := json.Unmarshal([]byte(candidate), &paper); err != nil {
		return nil, &ErrMalformedOutput{
			Reason:  "decode question paper",
			Snippet: snippet(candidate),
			Err:     err,
		}
	}
	return &paper, nil
}

// stripFences prefers the body of the first complete fenced block that
// contains an object. Otherwise only an outer leading fence line and a
// trailing fence are removed; backticks elsewhere are question text.
func stripFences(raw string) string {
	for _, m := range fencedBlock.FindAllStringSubmatch(raw, -1) {
		if strings.Contains(m[1], "{") {
			return strings.TrimSpace(m[1])
		}
	}
	text := strings.TrimSpace(raw)
	text = openingFence.ReplaceAllString(text, "")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// describeValidation reports the first leaf failure of a schema validation
// error as an instance location and a one-line reason.
func describeValidation(err error) (field, reason string) {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return "", err.Error()
	}
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	field = "(root)"
	if len(leaf.InstanceLocation) > 0 {
		field = strings.Join(leaf.InstanceLocation, ".")
	}
	return field, leaf.ErrorKind.LocalizedString(reasonPrinter)
}
