package driven

// Prompt names understood by PromptStore implementations.
const (
	// PromptDraftSection drafts one digest section from evidence bullets.
	PromptDraftSection = "draft_section"

	// PromptSummarise compresses source excerpts into the executive summary.
	PromptSummarise = "summarise"
)

// PromptStore loads LLM prompt templates by name.
// Implementations may load from user-editable files with embedded
// defaults as fallback.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads.
	Reload()
}
