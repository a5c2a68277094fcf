package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chillyai/enhancer/pkg/repository"
)

const userColumns = "u.id, u.email, u.subject, u.created_at"

type repo struct {
	db       *sql.DB
	cfg      Config
	logger   *slog.Logger
	validate *validator.Validate
	verifier Verifier
	events   *listeners
	// dummyHash is compared against when an email is unknown so both
	// failure paths do the same bcrypt work.
	dummyHash []byte
}

// New creates the PostgreSQL-backed auth System. verifier may be nil, in
// which case ID tokens are always rejected.
func New(db *sql.DB, cfg Config, verifier Verifier, logger *slog.Logger) System {
	dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)

	return &repo{
		db:        db,
		cfg:       cfg,
		logger:    logger.With("system", "auth"),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		verifier:  verifier,
		events:    &listeners{},
		dummyHash: dummy,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.cfg, r.logger)
}

func (r *repo) OnChange(fn func(Event)) func() {
	return r.events.add(fn)
}

func (r *repo) SignUp(ctx context.Context, creds Credentials) (*User, error) {
	creds.Email = normalizeEmail(creds.Email)
	if err := r.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), r.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `
		INSERT INTO users AS u (email, password_hash)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	u, err := repository.QueryOne(ctx, r.db, q, []any{creds.Email, string(hash)}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrUnauthorized, ErrDuplicate)
	}

	r.logger.Info("user signed up", "user", u.ID)
	return &u, nil
}

func (r *repo) SignIn(ctx context.Context, creds Credentials) (*Session, error) {
	email := normalizeEmail(creds.Email)

	var (
		u    User
		hash sql.NullString
	)
	q := `SELECT ` + userColumns + `, u.password_hash FROM users u WHERE u.email = $1`
	row := r.db.QueryRowContext(ctx, q, email)
	err := scanUserInto(row, &u, &hash)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		bcrypt.CompareHashAndPassword(r.dummyHash, []byte(creds.Password))
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("find user: %w", err)
	case !hash.Valid:
		// account created through the identity provider
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash.String), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := newToken()
	expires := time.Now().Add(r.cfg.SessionTTLDuration())

	session, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM sessions WHERE user_id = $1 AND expires_at <= NOW()`, u.ID,
		); err != nil {
			return Session{}, err
		}

		s := Session{Token: token, User: u}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO sessions(token_hash, user_id, expires_at)
			VALUES ($1, $2, $3)
			RETURNING created_at, expires_at`,
			hashToken(token), u.ID, expires,
		).Scan(&s.CreatedAt, &s.ExpiresAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	r.logger.Info("user signed in", "user", u.ID)
	r.events.emit(Event{Type: SignedIn, UserID: u.ID, At: session.CreatedAt})
	return &session, nil
}

// SignOut deletes the session for token. Unknown tokens are ignored.
func (r *repo) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	var userID uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM sessions WHERE token_hash = $1 RETURNING user_id`,
		hashToken(token),
	).Scan(&userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	r.logger.Info("user signed out", "user", userID)
	r.events.emit(Event{Type: SignedOut, UserID: userID, At: time.Now()})
	return nil
}

func (r *repo) Current(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	q := `
		SELECT ` + userColumns + `
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = $1 AND s.expires_at > NOW()`

	u, err := repository.QueryOne(ctx, r.db, q, []any{hashToken(token)}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrUnauthorized, ErrDuplicate)
	}
	return &u, nil
}

// Verify resolves an OIDC ID token to a user, creating the account on
// first sight of the subject and refreshing its email afterwards.
func (r *repo) Verify(ctx context.Context, rawIDToken string) (*User, error) {
	if r.verifier == nil {
		return nil, ErrUnauthorized
	}

	id, err := r.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		r.logger.Warn("id token rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	email := sql.NullString{String: id.Email, Valid: id.Email != ""}
	q := `
		INSERT INTO users AS u (email, subject)
		VALUES ($1, $2)
		ON CONFLICT (subject) DO UPDATE SET email = COALESCE(EXCLUDED.email, u.email)
		RETURNING ` + userColumns

	u, err := repository.QueryOne(ctx, r.db, q, []any{email, id.Subject}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrUnauthorized, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Authenticate(req *http.Request) (*User, error) {
	token := requestToken(req, r.cfg.CookieName)
	if token == "" {
		return nil, ErrUnauthorized
	}
	if isJWT(token) {
		return r.Verify(req.Context(), token)
	}
	return r.Current(req.Context(), token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := scanUserInto(s, &u)
	return u, err
}

func scanUserInto(s repository.Scanner, u *User, extra ...any) error {
	var email, subject sql.NullString
	dest := append([]any{&u.ID, &email, &subject, &u.CreatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return err
	}

	u.Email = email.String
	if subject.Valid {
		u.Subject = &subject.String
	}
	return nil
}
