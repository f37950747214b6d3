package paper

import (
	"errors"
	"strings"
	"testing"
)

const sampleSyllabus = `UNIT I INTRODUCTION TO MANAGEMENT 9
Definition of management, science or art, manager vs entrepreneur, types of managers,
managerial roles and skills. Evolution of management: scientific, human relations,
system and contingency approaches. Page 12`

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := Request{SubjectName: "Principles of Management", SyllabusText: sampleSyllabus}
	cfg := DefaultConfig()

	first, err := BuildPrompt(req, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildPrompt(req, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected identical prompts for identical input")
	}
}

func TestBuildPrompt_Contents(t *testing.T) {
	prompt, err := BuildPrompt(Request{SubjectName: "  Principles of Management ", SyllabusText: sampleSyllabus}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wants := []string{
		SchemaDocument,
		`"partA"`, `"partB"`, `"partC"`, `"a"`, `"b"`,
		"exactly 10 short-answer",
		"exactly 5 either/or",
		"exactly 1 long-form",
		"Do not introduce topics",
		"Do not copy sentences from the syllabus verbatim",
		"Ignore page numbers",
		"single JSON object",
		"Subject: Principles of Management\n",
		"managerial roles and skills",
	}
	for _, w := range wants {
		if !strings.Contains(prompt, w) {
			t.Errorf("prompt missing %q", w)
		}
	}
}

func TestBuildPrompt_MissingSubject(t *testing.T) {
	prompt, err := BuildPrompt(Request{SyllabusText: sampleSyllabus}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "Subject: Not specified") {
		t.Fatal("expected placeholder subject")
	}
}

func TestBuildPrompt_RejectsShortOrBlankSyllabus(t *testing.T) {
	tests := []struct {
		name     string
		syllabus string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  "},
		{"ten chars", "Management"},
		{"short after trim", "   " + strings.Repeat("x", 49) + "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPrompt(Request{SyllabusText: tt.syllabus}, DefaultConfig())
			var invalid *ErrInvalidInput
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidInput, got: %v", err)
			}
			if invalid.Field != "syllabusText" {
				t.Fatalf("expected field syllabusText, got %q", invalid.Field)
			}
		})
	}
}

func TestBuildPrompt_CountsRunes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSyllabusLength = 5

	// Five multi-byte runes pass even though they are 15 bytes.
	if _, err := BuildPrompt(Request{SyllabusText: "管理学概論"}, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := BuildPrompt(Request{SyllabusText: "管理学概"}, cfg); err == nil {
		t.Fatal("expected error for four runes")
	}
}

func TestSchemaDocumentMatchesPaperSchema(t *testing.T) {
	if PaperSchema.Definition["type"] != "object" {
		t.Fatalf("unexpected schema type: %v", PaperSchema.Definition["type"])
	}
	want := []string{"partA", "partB", "partC"}
	if strings.Join(requiredFields, ",") != strings.Join(want, ",") {
		t.Fatalf("expected required %v, got %v", want, requiredFields)
	}
}
