package content

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var wordRE = regexp.MustCompile(`[A-Za-z0-9]+(?:'[A-Za-z0-9]+)?`)

func WordCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(wordRE.FindAllString(s, -1))
}

var optionLetters = map[string]bool{"A": true, "B": true, "C": true, "D": true}

var wisdomCategories = map[string]bool{
	"cognitive_bias":       true,
	"social_psychology":    true,
	"behavioral_economics": true,
	"mental_health":        true,
	"decision_making":      true,
	"perception":           true,
	"memory":               true,
	"emotions":             true,
	"relationships":        true,
	"motivation":           true,
}

var financeCategories = map[string]bool{
	"investing":        true,
	"budgeting":        true,
	"taxes":            true,
	"personal_finance": true,
	"markets":          true,
	"risk_management":  true,
	"retirement":       true,
	"fintech":          true,
}

// Validate is the total validation function: every raw output maps to exactly
// one Result. Checks are structural and bounded, not semantic; the bounds
// mirror what the prompt for the same content type asks for, so the two must
// be changed together.
func Validate(ct ContentType, raw map[string]any) Result {
	if raw == nil {
		return Reject(ReasonMalformedOutput, nil)
	}

	switch ct {
	case TypeCodeOutput:
		return validateChoice(ct, raw, choiceRules{
			needCode: true, maxTitleWords: 8, maxCodeLines: 12,
			maxQuestion: 200, maxOption: 60, maxExplanation: 300,
		})
	case TypeQueryOutput:
		res := validateChoice(ct, raw, choiceRules{
			needCode: true, maxTitleWords: 8, maxCodeLines: 12,
			maxQuestion: 110, maxOption: 60, maxExplanation: 300,
		})
		if !res.Accepted {
			return res
		}
		// Queries must be self-contained: sample data embedded via CTE VALUES.
		if !strings.Contains(res.Item.Code, "WITH") || !strings.Contains(res.Item.Code, "VALUES") {
			return Reject(ReasonSampleDataMissing, raw)
		}
		return res
	case TypePatternMatch:
		res := validateChoice(ct, raw, choiceRules{
			needCode: true, maxTitleWords: 6, maxCodeChars: 120,
			maxQuestion: 200, maxOption: 60, maxExplanation: 300,
		})
		return res
	case TypeScenario:
		return validateChoice(ct, raw, choiceRules{
			needScenario: true, maxTitleWords: 8,
			maxQuestion: 150, maxOption: 75, maxExplanation: 400,
		})
	case TypeCommandOutput:
		return validateChoice(ct, raw, choiceRules{
			needCode: true, maxTitleWords: 6, maxCodeLines: 6,
			maxQuestion: 120, maxOption: 55, maxExplanation: 300,
		})
	case TypeQA:
		res := validateChoice(ct, raw, choiceRules{
			needScenario: true, maxTitleWords: 7,
			maxQuestion: 150, maxOption: 75, maxExplanation: 400,
		})
		if !res.Accepted {
			return res
		}
		// Optional code snippet, but if present it must stay card-sized.
		code := stringFromAny(raw["code"])
		if strings.TrimSpace(code) != "" && len(code) > 50 {
			return Reject(ReasonCodeTooLong, raw)
		}
		res.Item.Code = code
		return res
	case TypeMindBender:
		return validateMindBender(raw)
	case TypeWisdomCard:
		return validateWisdomCard(raw)
	case TypeFinanceCard:
		return validateFinanceCard(raw)
	default:
		return Reject(ReasonUnsupportedContentType, raw)
	}
}

type choiceRules struct {
	needCode     bool
	needScenario bool

	maxTitleWords  int
	maxCodeLines   int
	maxCodeChars   int
	maxQuestion    int
	maxOption      int
	maxExplanation int
}

func validateChoice(ct ContentType, raw map[string]any, rules choiceRules) Result {
	title := stringFromAny(raw["title"])
	question := stringFromAny(raw["question"])
	correct := strings.ToUpper(strings.TrimSpace(stringFromAny(raw["correct"])))
	explanation := stringFromAny(raw["explanation"])

	if strings.TrimSpace(title) == "" {
		return Reject(ReasonMissingField("title"), raw)
	}
	if strings.TrimSpace(question) == "" {
		return Reject(ReasonMissingField("question"), raw)
	}
	if correct == "" {
		return Reject(ReasonMissingField("correct"), raw)
	}
	if strings.TrimSpace(explanation) == "" {
		return Reject(ReasonMissingField("explanation"), raw)
	}

	var code string
	if rules.needCode {
		code = stringFromAny(raw["code"])
		if strings.TrimSpace(code) == "" {
			return Reject(ReasonMissingField("code"), raw)
		}
	}
	var scenario string
	if rules.needScenario {
		scenario = stringFromAny(raw["scenario"])
		if strings.TrimSpace(scenario) == "" {
			return Reject(ReasonMissingField("scenario"), raw)
		}
	}

	options, ok := stringSliceFromAny(raw["options"])
	if !ok || len(options) == 0 {
		return Reject(ReasonMissingField("options"), raw)
	}
	if len(options) != 4 {
		return Reject(ReasonOptionCountMismatch, raw)
	}
	if !optionLetters[correct] {
		return Reject(ReasonAnswerNotInOptions, raw)
	}

	if WordCount(title) > rules.maxTitleWords {
		return Reject(ReasonTitleTooLong, raw)
	}
	if rules.maxCodeLines > 0 && strings.Count(code, "\n") > rules.maxCodeLines {
		return Reject(ReasonCodeTooLong, raw)
	}
	if rules.maxCodeChars > 0 && len(code) > rules.maxCodeChars {
		return Reject(ReasonCodeTooLong, raw)
	}
	if rules.needScenario {
		if len(scenario) > 350 {
			return Reject(ReasonScenarioTooLong, raw)
		}
		if len(scenario) < 30 {
			return Reject(ReasonScenarioTooShort, raw)
		}
	}
	if len(question) > rules.maxQuestion {
		return Reject(ReasonQuestionTooLong, raw)
	}
	for _, opt := range options {
		if len(opt) > rules.maxOption {
			return Reject(ReasonOptionTooLong, raw)
		}
	}
	if len(explanation) > rules.maxExplanation {
		return Reject(ReasonExplanationTooLong, raw)
	}

	return Accept(Item{
		ID:          uuid.New(),
		ContentType: ct,
		Title:       title,
		Code:        code,
		Scenario:    scenario,
		Question:    question,
		Options:     options,
		Correct:     correct,
		Explanation: explanation,
	})
}

func validateMindBender(raw map[string]any) Result {
	title := stringFromAny(raw["title"])
	puzzle := stringFromAny(raw["puzzle"])
	question := stringFromAny(raw["question"])
	correct := strings.ToUpper(strings.TrimSpace(stringFromAny(raw["correct"])))
	explanation := stringFromAny(raw["explanation"])
	visual := stringFromAny(raw["visual_elements"])
	funFact := stringFromAny(raw["fun_fact"])

	if strings.TrimSpace(title) == "" {
		return Reject(ReasonMissingField("title"), raw)
	}
	if strings.TrimSpace(puzzle) == "" {
		return Reject(ReasonMissingField("puzzle"), raw)
	}
	if strings.TrimSpace(question) == "" {
		return Reject(ReasonMissingField("question"), raw)
	}
	if correct == "" {
		return Reject(ReasonMissingField("correct"), raw)
	}
	if strings.TrimSpace(explanation) == "" {
		return Reject(ReasonMissingField("explanation"), raw)
	}

	options, ok := stringSliceFromAny(raw["options"])
	if !ok || len(options) == 0 {
		return Reject(ReasonMissingField("options"), raw)
	}
	if len(options) != 4 {
		return Reject(ReasonOptionCountMismatch, raw)
	}
	if !optionLetters[correct] {
		return Reject(ReasonAnswerNotInOptions, raw)
	}

	if WordCount(title) > 6 {
		return Reject(ReasonTitleTooLong, raw)
	}
	if len(puzzle) > 100 {
		return Reject(ReasonFieldTooLong, raw)
	}
	// Puzzle and visual elements render on one card together.
	combined := puzzle
	if visual != "" {
		combined += "\n" + visual
	}
	if len(combined) > 230 {
		return Reject(ReasonCombinedTextTooLong, raw)
	}
	if len(question) > 100 {
		return Reject(ReasonQuestionTooLong, raw)
	}
	for _, opt := range options {
		if len(opt) > 40 {
			return Reject(ReasonOptionTooLong, raw)
		}
	}
	if len(explanation) > 300 {
		return Reject(ReasonExplanationTooLong, raw)
	}
	if funFact != "" && len(funFact) > 200 {
		return Reject(ReasonFieldTooLong, raw)
	}

	return Accept(Item{
		ID:             uuid.New(),
		ContentType:    TypeMindBender,
		Title:          title,
		Puzzle:         puzzle,
		VisualElements: visual,
		Question:       question,
		Options:        options,
		Correct:        correct,
		Explanation:    explanation,
		FunFact:        funFact,
	})
}

func validateWisdomCard(raw map[string]any) Result {
	title := stringFromAny(raw["title"])
	category := stringFromAny(raw["category"])
	statement := stringFromAny(raw["statement"])
	explanation := stringFromAny(raw["explanation"])
	realExample := stringFromAny(raw["real_example"])
	application := stringFromAny(raw["application"])
	source := stringFromAny(raw["source"])

	if strings.TrimSpace(title) == "" {
		return Reject(ReasonMissingField("title"), raw)
	}
	if strings.TrimSpace(statement) == "" {
		return Reject(ReasonMissingField("statement"), raw)
	}
	if strings.TrimSpace(explanation) == "" {
		return Reject(ReasonMissingField("explanation"), raw)
	}
	if strings.TrimSpace(realExample) == "" {
		return Reject(ReasonMissingField("real_example"), raw)
	}
	if strings.TrimSpace(application) == "" {
		return Reject(ReasonMissingField("application"), raw)
	}

	if WordCount(title) > 6 {
		return Reject(ReasonTitleTooLong, raw)
	}
	if !wisdomCategories[category] {
		return Reject(ReasonCategoryInvalid, raw)
	}
	if len(statement) > 150 {
		return Reject(ReasonFieldTooLong, raw)
	}
	if len(explanation) > 250 {
		return Reject(ReasonExplanationTooLong, raw)
	}
	if len(realExample) > 200 {
		return Reject(ReasonFieldTooLong, raw)
	}
	if len(application) > 150 {
		return Reject(ReasonFieldTooLong, raw)
	}
	if !strings.HasPrefix(strings.ToLower(application), "try this:") {
		return Reject(ReasonActionPrefixMissing, raw)
	}
	if source != "" && len(source) > 50 {
		return Reject(ReasonFieldTooLong, raw)
	}

	return Accept(Item{
		ID:          uuid.New(),
		ContentType: TypeWisdomCard,
		Title:       title,
		Category:    category,
		Question:    statement,
		Explanation: explanation,
		Example:     realExample,
		Action:      application,
		Source:      source,
	})
}

func validateFinanceCard(raw map[string]any) Result {
	title := stringFromAny(raw["title"])
	category := stringFromAny(raw["category"])
	insight := stringFromAny(raw["insight"])
	explanation := stringFromAny(raw["explanation"])
	example := stringFromAny(raw["example"])
	action := stringFromAny(raw["action"])
	source := stringFromAny(raw["source"])

	if strings.TrimSpace(title) == "" {
		return Reject(ReasonMissingField("title"), raw)
	}
	if strings.TrimSpace(insight) == "" {
		return Reject(ReasonMissingField("insight"), raw)
	}
	if strings.TrimSpace(explanation) == "" {
		return Reject(ReasonMissingField("explanation"), raw)
	}
	if strings.TrimSpace(example) == "" {
		return Reject(ReasonMissingField("example"), raw)
	}
	if strings.TrimSpace(action) == "" {
		return Reject(ReasonMissingField("action"), raw)
	}

	if WordCount(title) > 6 {
		return Reject(ReasonTitleTooLong, raw)
	}
	if !financeCategories[category] {
		return Reject(ReasonCategoryInvalid, raw)
	}
	if len(insight) > 140 {
		return Reject(ReasonFieldTooLong, raw)
	}
	if len(explanation) > 220 {
		return Reject(ReasonExplanationTooLong, raw)
	}
	if len(example) > 180 {
		return Reject(ReasonFieldTooLong, raw)
	}
	if len(action) > 130 {
		return Reject(ReasonFieldTooLong, raw)
	}
	if !strings.HasPrefix(strings.ToLower(action), "try this:") {
		return Reject(ReasonActionPrefixMissing, raw)
	}
	if source != "" && len(source) > 50 {
		return Reject(ReasonFieldTooLong, raw)
	}

	return Accept(Item{
		ID:          uuid.New(),
		ContentType: TypeFinanceCard,
		Title:       title,
		Category:    category,
		Question:    insight,
		Explanation: explanation,
		Example:     example,
		Action:      action,
		Source:      source,
	})
}

func stringFromAny(v any) string {
	s, _ := v.(string)
	return s
}

func stringSliceFromAny(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
