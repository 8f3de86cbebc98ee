package render

import (
	"testing"

	"github.com/yungbote/quizreel-backend/internal/content"
)

func TestResolveProfile_Mapping(t *testing.T) {
	cases := []struct {
		ct        content.ContentType
		name      string
		codeStyle string
	}{
		{content.TypeCodeOutput, "code_output", "editor"},
		{content.TypeQueryOutput, "code_output", "editor"},
		{content.TypePatternMatch, "code_output", "editor"},
		{content.TypeCommandOutput, "command_output", "terminal"},
		{content.TypeQA, "qa", "none"},
		{content.TypeScenario, "scenario", "none"},
		{content.TypeMindBender, "mind_bender", "none"},
		{content.TypeWisdomCard, "card", "none"},
		{content.TypeFinanceCard, "card", "none"},
	}
	for _, tc := range cases {
		p, err := ResolveProfile(tc.ct)
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", tc.ct, err)
		}
		if p.Name != tc.name {
			t.Fatalf("%s: expected profile %q, got %q", tc.ct, tc.name, p.Name)
		}
		if p.CodeStyle != tc.codeStyle {
			t.Fatalf("%s: expected code style %q, got %q", tc.ct, tc.codeStyle, p.CodeStyle)
		}
	}
}

func TestResolveProfile_UnknownContentType(t *testing.T) {
	if _, err := ResolveProfile(content.ContentType("hologram")); err == nil {
		t.Fatalf("expected error for unknown content type")
	}
}

func TestResolveProfile_CardsSkipOptions(t *testing.T) {
	p, err := ResolveProfile(content.TypeWisdomCard)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.HasOptions {
		t.Fatalf("card profile must not draw options")
	}
	if !p.HasExplanation {
		t.Fatalf("card profile keeps the explanation section")
	}
}
