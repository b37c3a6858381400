package extractor

import (
	"strings"

	"github.com/docsieve/docsieve/pkg/schema"
)

const promptInstruction = `You are a structured-extraction engine for identity documents.

Rules:
1. Extract only the fields listed in the schema below
2. Respond with a single JSON object and nothing else
3. Use ISO format (YYYY-MM-DD) for the issueDate field
4. Copy values exactly as they appear in the document text`

// BuildPrompt produces the remote-service prompt. It is deterministic: the
// serialized schema description and the raw text are embedded verbatim.
func BuildPrompt(rawText string, s schema.Schema) string {
	var prompt strings.Builder

	prompt.WriteString(promptInstruction)
	prompt.WriteString("\n\n## Fields to Extract\n")
	prompt.WriteString(s.PromptDescription())
	prompt.WriteString("\n\n## Document Text\n```\n")
	prompt.WriteString(rawText)
	prompt.WriteString("\n```\n")

	return prompt.String()
}
