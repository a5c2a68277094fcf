package anthropic

import "encoding/json"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation turn with plain-text content.
type Message struct {
	Role    string
	Content string
}

// MessageRequest describes a Messages API call. Zero Model and MaxTokens
// are filled from the client's configuration.
type MessageRequest struct {
	Model     string
	MaxTokens int
	System    string
	Messages  []Message
}

// Usage reports token consumption for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// MessageResponse is a Messages API reply with its content mapped onto
// ContentBlock variants.
type MessageResponse struct {
	ID         string
	Type       string
	Role       string
	Model      string
	Content    Content
	StopReason string
	Usage      Usage
}

// ContentBlock is either a TextBlock or an OtherBlock.
type ContentBlock interface {
	BlockType() string
}

// TextBlock carries generated text.
type TextBlock struct {
	Text string
}

func (TextBlock) BlockType() string { return "text" }

// OtherBlock preserves any non-text block (tool use, thinking, ...) as raw
// JSON.
type OtherBlock struct {
	Type string
	Raw  json.RawMessage
}

func (b OtherBlock) BlockType() string { return b.Type }

// Content is an ordered list of response blocks.
type Content []ContentBlock

// FirstText returns the text of the first TextBlock.
func (c Content) FirstText() (string, bool) {
	for _, block := range c {
		if text, ok := block.(TextBlock); ok {
			return text.Text, true
		}
	}
	return "", false
}
