package prompts

// RegisterAll registers every prompt in the registry using RegisterSpec.
// Each user template spells out the exact structural contract the content
// validator enforces for the same content type; the two are a matched pair
// and must be changed together.
func RegisterAll() {
	requireSubjectTopic := []Validator{
		RequireNonEmpty("Subject", func(in Input) string { return in.Subject }),
		RequireNonEmpty("Topic", func(in Input) string { return in.Topic }),
	}
	requireTopic := []Validator{
		RequireNonEmpty("Topic", func(in Input) string { return in.Topic }),
	}

	RegisterSpec(Spec{
		Name:       PromptCodeOutput,
		Version:    1,
		SchemaName: "code_output_question",
		Schema:     ChoiceQuestionSchema,
		System: `
You are a senior {{.Subject}} expert creating short-form quiz content for social reels.
Content must be concise, mobile-readable, and tricky without being obscure.
Return JSON only.`,
		User: `
Generate ONE tricky {{.Subject}} multiple-choice question about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 8 words
- code: max 12 lines, no comments, no blank lines
- question: exactly 1 sentence, max 200 characters
- options: exactly 4 items, each under 60 characters
- correct: one of "A", "B", "C", "D"
- explanation: 2-3 short sentences, under 300 characters total

Style:
- Short variable names, code fits one phone screen.
- Explanation should sound like a spoken voiceover, not documentation.
- Assume the viewer has intermediate {{.Subject}} knowledge.`,
		Validators: requireSubjectTopic,
	})

	RegisterSpec(Spec{
		Name:       PromptQueryOutput,
		Version:    1,
		SchemaName: "query_output_question",
		Schema:     ChoiceQuestionSchema,
		System: `
You are a senior SQL expert creating short-form quiz content for social reels.
Queries must be fully self-contained so a viewer can reason about the result without any external tables.
Return JSON only.`,
		User: `
Generate ONE tricky SQL multiple-choice question about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 8 words
- code: a single query, max 12 lines, which MUST embed its sample data via a CTE (WITH ... VALUES ...)
- question: ask what the query returns, max 110 characters
- options: exactly 4 items, each under 60 characters
- correct: one of "A", "B", "C", "D"
- explanation: 2-3 short sentences, under 300 characters total`,
		Validators: requireTopic,
	})

	RegisterSpec(Spec{
		Name:       PromptPatternMatch,
		Version:    1,
		SchemaName: "pattern_match_question",
		Schema:     ChoiceQuestionSchema,
		System: `
You are a regex expert creating short-form quiz content for social reels.
Return JSON only.`,
		User: `
Generate ONE tricky regular-expression multiple-choice question about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 6 words
- code: the pattern plus the input string, max 120 characters total
- question: max 200 characters
- options: exactly 4 items, each under 60 characters
- correct: one of "A", "B", "C", "D"
- explanation: under 300 characters`,
		Validators: requireTopic,
	})

	RegisterSpec(Spec{
		Name:       PromptScenario,
		Version:    1,
		SchemaName: "scenario_question",
		Schema:     ScenarioQuestionSchema,
		System: `
You are a staff engineer creating system design quiz content for social reels.
Scenarios must describe a concrete production situation, not abstract theory.
Return JSON only.`,
		User: `
Generate ONE system design multiple-choice question about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 8 words
- scenario: 30 to 350 characters of concrete production context
- code: leave empty
- question: max 150 characters
- options: exactly 4 items, each under 75 characters
- correct: one of "A", "B", "C", "D"
- explanation: the trade-off reasoning, under 400 characters`,
		Validators: requireTopic,
	})

	RegisterSpec(Spec{
		Name:       PromptCommandOutput,
		Version:    1,
		SchemaName: "command_output_question",
		Schema:     ChoiceQuestionSchema,
		System: `
You are a Linux power user creating terminal quiz content for social reels.
Return JSON only.`,
		User: `
Generate ONE tricky shell multiple-choice question about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 6 words
- code: the terminal command(s), max 6 lines
- question: ask what the command prints or exits with, max 120 characters
- options: exactly 4 items, each under 55 characters
- correct: one of "A", "B", "C", "D"
- explanation: under 300 characters`,
		Validators: requireTopic,
	})

	RegisterSpec(Spec{
		Name:       PromptQA,
		Version:    1,
		SchemaName: "qa_question",
		Schema:     ScenarioQuestionSchema,
		System: `
You are a DevOps engineer creating Docker and Kubernetes quiz content for social reels.
Scenarios must read like a real incident or configuration situation.
Return JSON only.`,
		User: `
Generate ONE Docker/Kubernetes multiple-choice question about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 7 words
- scenario: 30 to 350 characters
- code: optional short snippet, max 50 characters, empty string if unused
- question: max 150 characters
- options: exactly 4 items, each under 75 characters
- correct: one of "A", "B", "C", "D"
- explanation: under 400 characters`,
		Validators: requireTopic,
	})

	RegisterSpec(Spec{
		Name:       PromptMindBender,
		Version:    1,
		SchemaName: "mind_bender_question",
		Schema:     MindBenderSchema,
		System: `
You are a puzzle writer creating brain-teaser content for social reels.
Puzzles must be solvable from the card alone, with a satisfying twist.
Return JSON only.`,
		User: `
Generate ONE brain teaser about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 6 words
- puzzle: max 100 characters
- visual_elements: optional ASCII aid; puzzle plus visual_elements combined max 230 characters
- question: max 100 characters
- options: exactly 4 items, each under 40 characters
- correct: one of "A", "B", "C", "D"
- explanation: the aha moment, under 300 characters
- fun_fact: optional, under 200 characters, empty string if unused`,
		Validators: requireTopic,
	})

	RegisterSpec(Spec{
		Name:       PromptWisdomCard,
		Version:    1,
		SchemaName: "wisdom_card",
		Schema:     WisdomCardSchema,
		System: `
You are a psychology educator creating short-form wisdom cards for social reels.
Cite real, established principles only; never invent research.
Return JSON only.`,
		User: `
Generate ONE psychology wisdom card about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 6 words
- category: one of cognitive_bias, social_psychology, behavioral_economics, mental_health, decision_making, perception, memory, emotions, relationships, motivation
- statement: the punchy insight, max 150 characters
- explanation: why this happens, max 250 characters
- real_example: a concrete everyday scenario, max 200 characters
- application: must start with "Try this:" and stay under 150 characters
- source: optional attribution, max 50 characters, empty string if unused`,
		Validators: requireTopic,
	})

	RegisterSpec(Spec{
		Name:       PromptFinanceCard,
		Version:    1,
		SchemaName: "finance_card",
		Schema:     FinanceCardSchema,
		System: `
You are a finance educator creating short-form money cards for social reels.
Stick to widely accepted personal-finance principles; no investment advice for specific securities.
Return JSON only.`,
		User: `
Generate ONE finance card about {{.Topic}}.

Hard limits (the response is rejected if any is exceeded):
- title: max 6 words
- category: one of investing, budgeting, taxes, personal_finance, markets, risk_management, retirement, fintech
- insight: the core idea, max 140 characters
- explanation: why it matters, max 220 characters
- example: a concrete numeric example, max 180 characters
- action: must start with "Try this:" and stay under 130 characters
- source: optional attribution, max 50 characters, empty string if unused`,
		Validators: requireTopic,
	})
}
