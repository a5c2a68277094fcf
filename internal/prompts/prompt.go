// Package prompts stores each user's markdown prompt documents.
package prompts

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTitle   = "Untitled Prompt"
	DefaultContent = "# New Prompt\n\nStart writing your prompt here..."
)

// Prompt is a markdown document owned by one user. ID never changes after
// creation and UpdatedAt never moves backwards.
type Prompt struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand creates a prompt. Omitted fields get DefaultTitle and
// DefaultContent.
type CreateCommand struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

func (c CreateCommand) values() (title, content string) {
	title, content = DefaultTitle, DefaultContent
	if c.Title != nil {
		title = *c.Title
	}
	if c.Content != nil {
		content = *c.Content
	}
	return title, content
}

// UpdateCommand replaces a prompt's title and content.
type UpdateCommand struct {
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content"`
}
