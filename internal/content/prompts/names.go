package prompts

import "github.com/yungbote/quizreel-backend/internal/content"

type PromptName string

const (
	// Multiple choice
	PromptCodeOutput    PromptName = "code_output"
	PromptQueryOutput   PromptName = "query_output"
	PromptPatternMatch  PromptName = "pattern_match"
	PromptScenario      PromptName = "scenario"
	PromptCommandOutput PromptName = "command_output"
	PromptQA            PromptName = "qa"
	PromptMindBender    PromptName = "mind_bender"

	// Cards
	PromptWisdomCard  PromptName = "wisdom_card"
	PromptFinanceCard PromptName = "finance_card"
)

var byContentType = map[content.ContentType]PromptName{
	content.TypeCodeOutput:    PromptCodeOutput,
	content.TypeQueryOutput:   PromptQueryOutput,
	content.TypePatternMatch:  PromptPatternMatch,
	content.TypeScenario:      PromptScenario,
	content.TypeCommandOutput: PromptCommandOutput,
	content.TypeQA:            PromptQA,
	content.TypeMindBender:    PromptMindBender,
	content.TypeWisdomCard:    PromptWisdomCard,
	content.TypeFinanceCard:   PromptFinanceCard,
}

// ForContentType maps a registry content type to its prompt. Every content
// type registers exactly one prompt.
func ForContentType(ct content.ContentType) (PromptName, bool) {
	n, ok := byContentType[ct]
	return n, ok
}
