package xstruct

import (
	"strings"

	"github.com/alexanderramin/normgate/internal/llm"
)

const systemInstruction = "You are an expert in JSON data extraction."

const completionTemplate = `=== TASK ===

- Your task is to extract the correct information from the conversation context below.
- You must provide the structured output in JSON format using the JSON schema provided.
- You are also provided with an example of the expected output in JSON.
- You must escape any strings embedded in the JSON output as follows:
    " is replaced with \"
    \ is replaced with \\
    newlines, tabs and other control characters are replaced with \n, \t or \uXXXX
- Your output must be a single valid JSON document and nothing else.

=== START CONVERSATION CONTEXT ===
{{context}}
=== END CONVERSATION CONTEXT ===

=== START JSON SCHEMA ===
{{schema}}
=== END JSON SCHEMA ===

=== START JSON EXAMPLE ===
{{example}}
=== END JSON EXAMPLE ===`

// completionPrompt builds the per-attempt prompt. It is a pure function of
// its inputs so every attempt sends an identical, independent request.
func completionPrompt(messages []llm.Message, schema, example string) []llm.Message {
	body := strings.NewReplacer(
		"{{context}}", llm.Transcript(messages),
		"{{schema}}", strings.TrimSpace(schema),
		"{{example}}", compact(example),
	).Replace(completionTemplate)
	return []llm.Message{llm.System(systemInstruction), llm.User(body)}
}
