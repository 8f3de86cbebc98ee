package prompts

import (
	"strings"
	"testing"

	"github.com/yungbote/quizreel-backend/internal/content"
)

func TestRegisterAll_EveryContentTypeHasAPrompt(t *testing.T) {
	RegisterAll()

	types := []content.ContentType{
		content.TypeCodeOutput,
		content.TypeQueryOutput,
		content.TypePatternMatch,
		content.TypeScenario,
		content.TypeCommandOutput,
		content.TypeQA,
		content.TypeMindBender,
		content.TypeWisdomCard,
		content.TypeFinanceCard,
	}
	for _, ct := range types {
		name, ok := ForContentType(ct)
		if !ok {
			t.Fatalf("no prompt mapped for content type %q", ct)
		}
		schemaName, schema, ok := Schema(name)
		if !ok {
			t.Fatalf("prompt %q not registered", name)
		}
		if schemaName == "" || schema == nil {
			t.Fatalf("prompt %q missing schema", name)
		}
	}
}

func TestBuild_RendersSubjectAndTopic(t *testing.T) {
	RegisterAll()

	p, err := Build(PromptCodeOutput, Input{Subject: "python", Topic: "Decorators"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(p.System, "python") {
		t.Fatalf("expected subject in system prompt: %q", p.System)
	}
	if !strings.Contains(p.User, "Decorators") {
		t.Fatalf("expected topic in user prompt: %q", p.User)
	}
	if p.SchemaName != "code_output_question" {
		t.Fatalf("unexpected schema name: %q", p.SchemaName)
	}
	if p.Schema == nil {
		t.Fatalf("expected schema attached")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	RegisterAll()

	in := Input{Subject: "sql", Topic: "Window functions"}
	a, err := Build(PromptQueryOutput, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := Build(PromptQueryOutput, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.System != b.System || a.User != b.User {
		t.Fatalf("expected identical renders for identical input")
	}
}

func TestBuild_UnknownPrompt(t *testing.T) {
	_, err := Build(PromptName("does_not_exist"), Input{Topic: "x"})
	if err == nil {
		t.Fatalf("expected error for unknown prompt")
	}
}

func TestBuild_ValidatorRejectsEmptyTopic(t *testing.T) {
	RegisterAll()

	_, err := Build(PromptMindBender, Input{})
	if err == nil {
		t.Fatalf("expected validator error for empty topic")
	}
}

func TestChoiceQuestionSchema_StrictShape(t *testing.T) {
	s := ChoiceQuestionSchema()
	if s["additionalProperties"] != false {
		t.Fatalf("expected additionalProperties=false")
	}
	props, ok := s["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties map")
	}
	required, ok := s["required"].([]string)
	if !ok {
		t.Fatalf("expected required list")
	}
	if len(required) != len(props) {
		t.Fatalf("strict mode requires every property listed: %d props, %d required", len(props), len(required))
	}
}
