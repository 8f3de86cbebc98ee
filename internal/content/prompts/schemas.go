package prompts

// OpenAI strict JSON schema requires that for object schemas:
// - additionalProperties must be present and false
// - required must include EVERY key listed in properties
//
// So optional fields (code in qa, visual_elements, fun_fact, source) are
// required here and allowed to be empty strings; length rules live in the
// content validator.

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func stringArrayProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

func ChoiceQuestionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       stringProp(),
			"code":        stringProp(),
			"question":    stringProp(),
			"options":     stringArrayProp(),
			"correct":     stringProp(),
			"explanation": stringProp(),
		},
		"required":             []string{"title", "code", "question", "options", "correct", "explanation"},
		"additionalProperties": false,
	}
}

func ScenarioQuestionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       stringProp(),
			"scenario":    stringProp(),
			"code":        stringProp(),
			"question":    stringProp(),
			"options":     stringArrayProp(),
			"correct":     stringProp(),
			"explanation": stringProp(),
		},
		"required":             []string{"title", "scenario", "code", "question", "options", "correct", "explanation"},
		"additionalProperties": false,
	}
}

func MindBenderSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":           stringProp(),
			"puzzle":          stringProp(),
			"visual_elements": stringProp(),
			"question":        stringProp(),
			"options":         stringArrayProp(),
			"correct":         stringProp(),
			"explanation":     stringProp(),
			"fun_fact":        stringProp(),
		},
		"required":             []string{"title", "puzzle", "visual_elements", "question", "options", "correct", "explanation", "fun_fact"},
		"additionalProperties": false,
	}
}

func WisdomCardSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":        stringProp(),
			"category":     stringProp(),
			"statement":    stringProp(),
			"explanation":  stringProp(),
			"real_example": stringProp(),
			"application":  stringProp(),
			"source":       stringProp(),
		},
		"required":             []string{"title", "category", "statement", "explanation", "real_example", "application", "source"},
		"additionalProperties": false,
	}
}

func FinanceCardSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       stringProp(),
			"category":    stringProp(),
			"insight":     stringProp(),
			"explanation": stringProp(),
			"example":     stringProp(),
			"action":      stringProp(),
			"source":      stringProp(),
		},
		"required":             []string{"title", "category", "insight", "explanation", "example", "action", "source"},
		"additionalProperties": false,
	}
}
