package optimize

import "fmt"

const instructions = `You are an expert at crafting effective AI prompts. Your task is to analyze the following prompt and enhance it to be more clear, specific, and effective.

Keep the core intent but improve:
- Clarity and specificity
- Structure and organization
- Context and examples where helpful
- Actionable instructions

Original prompt:
%s

Please provide ONLY the improved prompt without any explanation or meta-commentary. Return just the enhanced prompt text.`

// BuildPrompt embeds input verbatim in the rewrite instructions sent to the
// model.
func BuildPrompt(input string) string {
	return fmt.Sprintf(instructions, input)
}
