package render

import (
	"fmt"

	"github.com/yungbote/quizreel-backend/internal/content"
)

// Profile describes which sections a card layout draws and how code is
// chromed. Per-content-type behavior stays here as data.
type Profile struct {
	Name           string
	HasCode        bool
	HasOptions     bool
	HasExplanation bool
	CodeStyle      string // editor | terminal | none
}

var profiles = map[string]Profile{
	"code_output": {
		Name:           "code_output",
		HasCode:        true,
		HasOptions:     true,
		HasExplanation: true,
		CodeStyle:      "editor",
	},
	"command_output": {
		Name:           "command_output",
		HasCode:        true,
		HasOptions:     true,
		HasExplanation: true,
		CodeStyle:      "terminal",
	},
	"qa": {
		Name:           "qa",
		HasOptions:     true,
		HasExplanation: true,
		CodeStyle:      "none",
	},
	"scenario": {
		Name:           "scenario",
		HasOptions:     true,
		HasExplanation: true,
		CodeStyle:      "none",
	},
	"mind_bender": {
		Name:           "mind_bender",
		HasOptions:     true,
		HasExplanation: true,
		CodeStyle:      "none",
	},
	"card": {
		Name:           "card",
		HasExplanation: true,
		CodeStyle:      "none",
	},
}

// Queries and regex patterns render with the editor chrome rather than their
// own profiles.
var profileByContentType = map[content.ContentType]string{
	content.TypeCodeOutput:    "code_output",
	content.TypeQueryOutput:   "code_output",
	content.TypePatternMatch:  "code_output",
	content.TypeCommandOutput: "command_output",
	content.TypeQA:            "qa",
	content.TypeScenario:      "scenario",
	content.TypeMindBender:    "mind_bender",
	content.TypeWisdomCard:    "card",
	content.TypeFinanceCard:   "card",
}

// ResolveProfile maps a content type to its layout profile.
func ResolveProfile(ct content.ContentType) (Profile, error) {
	key, ok := profileByContentType[ct]
	if !ok {
		return Profile{}, fmt.Errorf("no layout profile for content type: %s", ct)
	}
	return profiles[key], nil
}
