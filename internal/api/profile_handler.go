package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/stallhq/storefront-api/internal/api/shared"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/identity"
	"github.com/stallhq/storefront-api/internal/security"
	"github.com/stallhq/storefront-api/internal/store"
)

// ProfileHandler handles profile read and upsert requests. Profile rows
// are optional, so reads merge the stored row (if any) over fallbacks
// drawn from the caller's identity metadata.
type ProfileHandler struct {
	profiles  store.ProfileStore
	provider  identity.Provider
	sanitizer *security.Sanitizer
	logger    *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(
	profiles store.ProfileStore,
	provider identity.Provider,
	sanitizer *security.Sanitizer,
	logger *slog.Logger,
) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{
		profiles:  profiles,
		provider:  provider,
		sanitizer: sanitizer,
		logger:    logger.With(slog.String("component", "profile_handler")),
	}
}

// Get handles GET /api/auth/profile requests. A missing row or a failed
// lookup degrades to identity-metadata fallbacks rather than an error:
// the caller is authenticated, so there is always something to return.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, _, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(r.Context(), caller.ID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			h.logger.Warn("profile lookup failed, serving identity fallbacks",
				slog.String("user_id", caller.ID.String()),
				slog.String("error", err.Error()))
		}
		profile = nil
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		Profile: mergeProfile(caller, profile),
	})
}

// Update handles PUT /api/auth/profile requests. The row is upserted, so
// the first edit creates it. Display fields are mirrored into the
// identity provider's user metadata afterwards on a best-effort basis; a
// mirror failure never fails the request.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, token, ok := callerFromContext(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	username := ""
	if req.Username != nil {
		username = h.sanitizer.Text(*req.Username)
	}
	if username == "" && req.Name != nil {
		username = h.sanitizer.Text(*req.Name)
	}
	if username == "" {
		username = caller.Email
	}

	profile := &domain.Profile{
		ID:       caller.ID,
		Username: username,
	}
	if req.Website != nil {
		profile.Website = h.sanitizer.Text(*req.Website)
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = h.sanitizer.Text(*req.AvatarURL)
	}
	if req.GoogleID != nil {
		profile.GoogleID = h.sanitizer.Text(*req.GoogleID)
	}

	if err := profile.Validate(); err != nil {
		if errors.Is(err, domain.ErrUsernameTooLong) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Username must be 50 characters or less")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	upserted, err := h.profiles.Upsert(r.Context(), profile)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}

	h.mirrorToIdentity(r, token, upserted)

	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		Message: "Profile updated successfully",
		Profile: mergeProfile(caller, upserted),
	})
}

// mirrorToIdentity pushes display fields into the provider's user
// metadata so other consumers of the identity see them too. Failures are
// logged and swallowed.
func (h *ProfileHandler) mirrorToIdentity(r *http.Request, token string, profile *domain.Profile) {
	metadata := map[string]any{"full_name": profile.Username}
	if profile.AvatarURL != "" {
		metadata["avatar_url"] = profile.AvatarURL
	}

	if err := h.provider.UpdateUserMetadata(r.Context(), token, metadata); err != nil {
		h.logger.Warn("identity metadata mirror failed",
			slog.String("user_id", profile.ID.String()),
			slog.String("error", err.Error()))
	}
}

// mergeProfile combines the stored profile row with identity-metadata
// fallbacks, field by field. profile may be nil.
func mergeProfile(caller *domain.Identity, profile *domain.Profile) ProfileView {
	view := ProfileView{
		ID:        caller.ID,
		Email:     caller.Email,
		Username:  caller.DisplayName(),
		AvatarURL: caller.AvatarURL(),
		GoogleID:  caller.ProviderID(),
		CreatedAt: caller.CreatedAt.Format(time.RFC3339),
	}
	if caller.LastSignInAt != nil {
		view.LastSignInAt = caller.LastSignInAt.Format(time.RFC3339)
	}

	if profile == nil {
		return view
	}
	if profile.Username != "" {
		view.Username = profile.Username
	}
	if profile.Website != "" {
		view.Website = profile.Website
	}
	if profile.AvatarURL != "" {
		view.AvatarURL = profile.AvatarURL
	}
	if profile.GoogleID != "" {
		view.GoogleID = profile.GoogleID
	}
	return view
}
