package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chillyai/enhancer/pkg/handlers"
	"github.com/chillyai/enhancer/pkg/routes"
)

// Handler provides the account and session endpoints.
type Handler struct {
	sys    System
	cfg    Config
	logger *slog.Logger
}

func NewHandler(sys System, cfg Config, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		cfg:    cfg,
		logger: logger.With("handler", "auth"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/signup", Handler: h.SignUp},
			{Method: "POST", Pattern: "/signin", Handler: h.SignIn},
			{Method: "POST", Pattern: "/signout", Handler: h.SignOut},
			{Method: "GET", Pattern: "/session", Handler: h.Session},
		},
	}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decode(w, r)
	if !ok {
		return
	}

	user, err := h.sys.SignUp(r.Context(), creds)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, user)
}

// SignIn creates a session, sets the session cookie and also returns the
// token for clients that send it as a bearer header.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decode(w, r)
	if !ok {
		return
	}

	session, err := h.sys.SignIn(r.Context(), creds)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie(),
		SameSite: http.SameSiteLaxMode,
	})
	handlers.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.SignOut(r.Context(), requestToken(r, h.cfg.CookieName)); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie(),
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the current user, or 401.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	user, err := h.sys.Authenticate(r)
	if err != nil {
		respondAuthFailure(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Credentials, bool) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrValidation, err))
		return creds, false
	}
	return creds, true
}
