package publish

import (
	"fmt"
	"math/rand"
)

// Caption hooks rotate per post; hashtags are per subject. A caption is one
// hook plus the subject's tag block.
var captionHooks = []string{
	"Can you crack this in 30 seconds? 🚀",
	"Think you've got the answer? Prove it. ⚡",
	"One quick puzzle: what's your move? 🤔",
	"Your turn, solve it before the timer ends. 🎯",
	"Pause, solve, flex your brain. 🧠",
}

var subjectHashtags = map[string]string{
	"python":        "#Python #CodeChallenge #PythonTips #Programming",
	"javascript":    "#JavaScript #WebDev #JS #Frontend",
	"rust":          "#RustLang #SystemsProgramming #Rust #Programming",
	"golang":        "#Golang #Go #Backend #CloudNative",
	"sql":           "#SQL #Database #DataEngineering #SQLQuery",
	"regex":         "#Regex #RegularExpressions #PatternMatching #Programming",
	"system_design": "#SystemDesign #Architecture #SoftwareEngineering #ScalableSystems",
	"linux":         "#Linux #SysAdmin #DevOps #Terminal",
	"docker_k8s":    "#Docker #Kubernetes #DevOps #CloudNative",
	"mind_benders":  "#BrainTeaser #Riddle #Puzzle #MindBender",
	"psychology":    "#Psychology #MindHacks #BehavioralScience #SelfImprovement",
	"finance":       "#Finance #PersonalFinance #MoneyTips #Investing",
}

// CaptionFor builds an upload caption for one subject's post.
func CaptionFor(subject string) (string, error) {
	tags, ok := subjectHashtags[subject]
	if !ok {
		return "", fmt.Errorf("no captions for subject: %s", subject)
	}
	hook := captionHooks[rand.Intn(len(captionHooks))]
	return hook + " " + tags, nil
}

// CaptionSubjects lists every subject with a caption block, for parity checks
// against the content registry.
func CaptionSubjects() []string {
	out := make([]string, 0, len(subjectHashtags))
	for s := range subjectHashtags {
		out = append(out, s)
	}
	return out
}
