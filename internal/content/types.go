package content

import (
	"github.com/google/uuid"
)

// ContentType selects the prompt contract and validation rules for a subject.
// A content type never maps to more than one validation contract.
type ContentType string

const (
	TypeCodeOutput    ContentType = "code_output"
	TypeQueryOutput   ContentType = "query_output"
	TypePatternMatch  ContentType = "pattern_match"
	TypeScenario      ContentType = "scenario"
	TypeCommandOutput ContentType = "command_output"
	TypeQA            ContentType = "qa"
	TypeMindBender    ContentType = "mind_bender"
	TypeWisdomCard    ContentType = "wisdom_card"
	TypeFinanceCard   ContentType = "finance_card"
)

// Spec is one row of the subject registry.
type Spec struct {
	Subject     string
	ContentType ContentType
	Assets      []string
	Topics      []string
}

// Item is a validated unit of generated content. It is only ever constructed
// by a successful validation and is immutable after that.
type Item struct {
	ID          uuid.UUID
	Subject     string
	ContentType ContentType
	Topic       string

	Title       string
	Code        string
	Scenario    string
	Question    string
	Options     []string
	Correct     string
	Explanation string

	// Card types (wisdom_card, finance_card).
	Category string
	Example  string
	Action   string
	Source   string

	// Mind benders.
	Puzzle         string
	VisualElements string
	FunFact        string

	// Which attempt produced the acceptance (1-based).
	Attempts int
}

// AnswerText is the single answer string recorded in the run manifest.
// Multiple-choice types answer with the correct option letter; card types
// answer with their actionable line.
func (it Item) AnswerText() string {
	if it.Correct != "" {
		return it.Correct
	}
	if it.Action != "" {
		return it.Action
	}
	return it.Example
}

// Result is the outcome of validating one raw model output. Exactly one of
// Accepted/Rejected holds: an accepted result carries the item, a rejected
// one carries the reason code and the raw output for diagnostics.
type Result struct {
	Accepted bool
	Item     Item
	Reason   string
	Raw      map[string]any
}

func Accept(item Item) Result {
	return Result{Accepted: true, Item: item}
}

func Reject(reason string, raw map[string]any) Result {
	return Result{Accepted: false, Reason: reason, Raw: raw}
}

// Rejection reason codes. Stable strings: they end up in run manifests.
const (
	ReasonGenerationFailed       = "generation_failed"
	ReasonMalformedOutput        = "malformed_output"
	ReasonUnsupportedContentType = "unsupported_content_type"
	ReasonOptionCountMismatch    = "option_count_mismatch"
	ReasonAnswerNotInOptions     = "answer_not_in_options"
	ReasonTitleTooLong           = "title_too_long"
	ReasonCodeTooLong            = "code_too_long"
	ReasonQuestionTooLong        = "question_too_long"
	ReasonOptionTooLong          = "option_too_long"
	ReasonExplanationTooLong     = "explanation_too_long"
	ReasonScenarioTooLong        = "scenario_too_long"
	ReasonScenarioTooShort       = "scenario_too_short"
	ReasonSampleDataMissing      = "sample_data_missing"
	ReasonCombinedTextTooLong    = "combined_text_too_long"
	ReasonCategoryInvalid        = "category_invalid"
	ReasonActionPrefixMissing    = "action_prefix_missing"
	ReasonFieldTooLong           = "field_too_long"
)

// ReasonMissingField builds the reason code for an absent required field.
func ReasonMissingField(field string) string {
	return "missing_field:" + field
}
