package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/chillyai/enhancer/pkg/pagination"
)

// System defines prompt storage. Every operation is scoped to owner;
// another user's prompt behaves as if it does not exist.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		owner uuid.UUID,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	Find(ctx context.Context, owner, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, owner uuid.UUID, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, owner, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
}
