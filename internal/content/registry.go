package content

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// UnknownSubjectError is returned by Resolve for subjects that are not
// registered. Fatal for that subject request only, never for a whole run.
type UnknownSubjectError struct {
	Subject string
}

func (e *UnknownSubjectError) Error() string {
	return fmt.Sprintf("unknown subject: %s", e.Subject)
}

// registry is the static subject table. Per-content-type behavior lives here
// as data; nothing downstream branches on subject names.
var registry = map[string]Spec{
	"python": {
		Subject:     "python",
		ContentType: TypeCodeOutput,
		Assets:      []string{"code", "explanation"},
		Topics: []string{
			"Python internals and memory model",
			"List comprehensions and generators",
			"Variable scope and closures",
			"Mutability and immutability",
			"Decorators",
			"Async and await",
			"Threading and GIL",
			"Standard library gotchas",
			"Object-oriented Python internals",
			"Python truthiness and comparisons",
		},
	},
	"javascript": {
		Subject:     "javascript",
		ContentType: TypeCodeOutput,
		Assets:      []string{"code", "explanation"},
		Topics: []string{
			"Hoisting and temporal dead zone",
			"Closures and lexical scope",
			"this binding rules",
			"Async/await and promises",
			"Event loop and microtasks",
			"Prototype chain behaviors",
			"Array/Object mutation pitfalls",
		},
	},
	"rust": {
		Subject:     "rust",
		ContentType: TypeCodeOutput,
		Assets:      []string{"code", "explanation"},
		Topics: []string{
			"Ownership and borrowing basics",
			"Lifetimes in functions",
			"Traits and generics",
			"Pattern matching tricks",
			"Error handling with Result",
			"Smart pointers (Rc, Arc, RefCell)",
			"Concurrency with threads and channels",
		},
	},
	"golang": {
		Subject:     "golang",
		ContentType: TypeCodeOutput,
		Assets:      []string{"code", "explanation"},
		Topics: []string{
			"Slices vs arrays semantics",
			"Maps and zero values",
			"Goroutines and channels",
			"Select and timeouts",
			"Interfaces and method sets",
			"Defer execution order",
			"Context cancellation patterns",
		},
	},
	"sql": {
		Subject:     "sql",
		ContentType: TypeQueryOutput,
		Assets:      []string{"query", "table"},
		Topics: []string{
			"GROUP BY edge cases",
			"JOIN behavior with NULLs",
			"HAVING vs WHERE",
			"Window functions",
			"Subqueries vs CTEs",
		},
	},
	"regex": {
		Subject:     "regex",
		ContentType: TypePatternMatch,
		Assets:      []string{"input", "regex"},
		Topics: []string{
			"Greedy vs lazy matching",
			"Lookahead and lookbehind",
			"Character classes",
			"Anchors and boundaries",
		},
	},
	"system_design": {
		Subject:     "system_design",
		ContentType: TypeScenario,
		Assets:      []string{"diagram", "text"},
		Topics: []string{
			"Rate limiting",
			"Caching strategies",
			"Queue backpressure",
			"Database sharding",
		},
	},
	"linux": {
		Subject:     "linux",
		ContentType: TypeCommandOutput,
		Assets:      []string{"terminal"},
		Topics: []string{
			"wc / awk / sed",
			"Pipe behavior",
			"Exit codes",
			"Subshells",
		},
	},
	"docker_k8s": {
		Subject:     "docker_k8s",
		ContentType: TypeQA,
		Assets:      []string{"question", "explanation"},
		Topics: []string{
			"OOMKilled",
			"Image layers",
			"Pod restarts",
			"ConfigMaps vs Secrets",
		},
	},
	"mind_benders": {
		Subject:     "mind_benders",
		ContentType: TypeMindBender,
		Assets:      []string{"puzzle", "explanation"},
		Topics: []string{
			"Lateral thinking puzzles",
			"Number sequences",
			"Logic grid riddles",
			"Probability paradoxes",
			"Wordplay riddles",
		},
	},
	"psychology": {
		Subject:     "psychology",
		ContentType: TypeWisdomCard,
		Assets:      []string{"card"},
		Topics: []string{
			"Cognitive biases in decisions",
			"Habit formation",
			"Social influence and conformity",
			"Memory distortions",
			"Motivation and reward loops",
		},
	},
	"finance": {
		Subject:     "finance",
		ContentType: TypeFinanceCard,
		Assets:      []string{"card"},
		Topics: []string{
			"Compound interest intuition",
			"Index funds vs stock picking",
			"Emergency funds",
			"Tax-advantaged accounts",
			"Behavioral money mistakes",
		},
	},
}

// Resolve looks a subject up in the registry.
func Resolve(subject string) (Spec, error) {
	spec, ok := registry[subject]
	if !ok {
		return Spec{}, &UnknownSubjectError{Subject: subject}
	}
	return spec, nil
}

// Subjects returns all registered subject names, sorted.
func Subjects() []string {
	out := make([]string, 0, len(registry))
	for s := range registry {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// PickTopic selects a topic not in exclude when one exists. Once the pool is
// exhausted repeats are allowed rather than failing the item.
func PickTopic(pool []string, exclude map[string]bool) string {
	if len(pool) == 0 {
		return ""
	}
	unused := make([]string, 0, len(pool))
	for _, t := range pool {
		if !exclude[t] {
			unused = append(unused, t)
		}
	}
	if len(unused) == 0 {
		return pool[rand.Intn(len(pool))]
	}
	return unused[rand.Intn(len(unused))]
}

type topicsFile struct {
	Topics map[string][]string `yaml:"topics"`
}

// ApplyTopicOverrides replaces registered topic pools from a YAML file of the
// form:
//
//	topics:
//	  python: ["...", "..."]
//
// Unknown subjects in the file are rejected so typos don't silently no-op.
func ApplyTopicOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read topics file: %w", err)
	}
	var f topicsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse topics file: %w", err)
	}
	for subject, topics := range f.Topics {
		spec, ok := registry[subject]
		if !ok {
			return &UnknownSubjectError{Subject: subject}
		}
		if len(topics) == 0 {
			return fmt.Errorf("empty topic list for subject %s", subject)
		}
		spec.Topics = topics
		registry[subject] = spec
	}
	return nil
}
