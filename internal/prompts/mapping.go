package prompts

import (
	"net/url"

	"github.com/chillyai/enhancer/pkg/query"
	"github.com/chillyai/enhancer/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "id").
	Project("owner_id", "owner_id").
	Project("title", "title").
	Project("content", "content").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

const returning = "id, owner_id, title, content, created_at, updated_at"

var defaultSort = query.SortField{Field: "updated_at", Descending: true}

// Filters narrows a listing. Title is a case-insensitive contains match.
type Filters struct {
	Title *string `json:"title,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("title", f.Title)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if t := values.Get("title"); t != "" {
		f.Title = &t
	}
	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Content,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Preview = Preview(p.Content)
	return p, err
}
