package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/chillyai/enhancer/pkg/pagination"
	"github.com/chillyai/enhancer/pkg/query"
	"github.com/chillyai/enhancer/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	validate   *validator.Validate
}

// New creates the PostgreSQL-backed prompt System.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	owner uuid.UUID,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("owner_id", owner).
		WhereSearch(page.Search, "title", "content")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	prompts, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(prompts, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, owner, id uuid.UUID) (*Prompt, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("id", id).
		WhereEquals("owner_id", owner).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, owner uuid.UUID, cmd CreateCommand) (*Prompt, error) {
	if err := r.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	title, content := cmd.values()
	q := `
		INSERT INTO prompts(owner_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING ` + returning

	p, err := repository.QueryOne(ctx, r.db, q, []any{owner, title, content}, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt created", "id", p.ID, "owner", owner)
	return &p, nil
}

// Update replaces title and content. updated_at never moves backwards.
func (r *repo) Update(ctx context.Context, owner, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	if err := r.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	q := `
		UPDATE prompts
		SET title = $1, content = $2, updated_at = GREATEST(NOW(), updated_at)
		WHERE id = $3 AND owner_id = $4
		RETURNING ` + returning

	args := []any{cmd.Title, cmd.Content, id, owner}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt updated", "id", p.ID, "owner", owner)
	return &p, nil
}
