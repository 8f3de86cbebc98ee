package prompts

// Prompt is the fully rendered instruction set for one generation attempt,
// ready to pass into openai.GenerateJSON.
type Prompt struct {
	Name       string
	Version    int
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
}
