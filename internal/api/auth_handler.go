package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/stallhq/storefront-api/internal/api/middleware"
	"github.com/stallhq/storefront-api/internal/api/shared"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/identity"
)

// minPasswordLength is the floor enforced before the request ever
// reaches the identity provider.
const minPasswordLength = 6

// AuthHandler handles authentication-related HTTP requests by
// delegating to the hosted identity provider.
type AuthHandler struct {
	provider identity.Provider
	siteURL  string
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. siteURL is the frontend
// origin that email links and OAuth flows redirect back to.
func NewAuthHandler(provider identity.Provider, siteURL string, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		provider: provider,
		siteURL:  siteURL,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// callbackURL is where provider-initiated flows land on the frontend.
func (h *AuthHandler) callbackURL() string {
	return strings.TrimRight(h.siteURL, "/") + "/auth/callback"
}

// Register handles POST /api/auth/register requests. Registration never
// returns a session; the provider's email confirmation flow does that.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	if _, err := h.provider.SignUp(r.Context(), req.Email, req.Password, nil); err != nil {
		HandleAPIError(w, r, err, "Registration failed")
		return
	}

	h.logger.Info("user registered", slog.String("email_domain", emailDomain(req.Email)))
	shared.RespondWithJSON(w, r, http.StatusCreated, MessageResponse{
		Message: "Registration successful. Please check your email to confirm your account.",
	})
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, err := h.provider.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Login failed")
		return
	}

	var summary domain.UserSummary
	if session.User != nil {
		summary = session.User.Summary()
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    summary,
		Session: session,
	})
}

// MagicLink handles POST /api/auth/magic-link requests. The provider
// emails a one-time sign-in link pointing back at the frontend callback,
// creating the account on first use.
func (h *AuthHandler) MagicLink(w http.ResponseWriter, r *http.Request) {
	var req MagicLinkRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.provider.SendMagicLink(r.Context(), req.Email, h.callbackURL()); err != nil {
		HandleAPIError(w, r, err, "Failed to send magic link")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Magic link sent. Check your email.",
	})
}

// GoogleOAuth handles POST /api/auth/google requests. The handler does
// not perform the OAuth dance itself; it returns the provider-hosted
// URL the client must navigate to.
func (h *AuthHandler) GoogleOAuth(w http.ResponseWriter, r *http.Request) {
	url, err := h.provider.AuthorizeURL("google", h.callbackURL())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start OAuth flow")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, OAuthResponse{
		Provider: "google",
		URL:      url,
	})
}

// Session handles GET /api/auth/session requests. The auth guard has
// already validated the token, so this is pure introspection.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	caller, token, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Token:    token,
		Identity: caller,
		User:     caller.Summary(),
	})
}

// Logout handles POST /api/auth/logout requests. Sign-out is
// best-effort: a missing token and a failed provider call both still
// yield success, since the client discards the token either way.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err == nil && token != "" {
		if err := h.provider.SignOut(r.Context(), token); err != nil {
			h.logger.Warn("provider sign-out failed", slog.String("error", err.Error()))
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Logged out successfully",
	})
}

// emailDomain returns the part after '@' for logging without recording
// the full address.
func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 && i+1 < len(email) {
		return email[i+1:]
	}
	return ""
}
