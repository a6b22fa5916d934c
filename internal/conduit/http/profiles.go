package http

import (
	"net/http"

	"github.com/aussiebroadwan/conduit/internal/conduit/service"
	"github.com/aussiebroadwan/conduit/pkg/conduitsdk"
	"github.com/aussiebroadwan/conduit/pkg/httpx"
)

type ProfilesHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns a public profile.
//
//	@Summary		Get a profile
//	@Description	Public profile lookup. The token is optional; when it belongs to the profile's owner the email is included.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Produce		json
//	@Param			username	path		string						true	"Username"
//	@Success		200			{object}	conduitsdk.ProfileResponse	"Profile"
//	@Failure		401			{object}	conduitsdk.APIError			"Token present but invalid"
//	@Failure		404			{object}	conduitsdk.APIError			"No such user"
//	@Router			/api/profiles/{username} [get].
func (h *ProfilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := httpx.UserIDFromContext(r.Context())

	p, err := h.UserService.GetProfile(r.Context(), r.PathValue("username"), viewerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := conduitsdk.Profile{
		Username: p.User.Username,
		Bio:      p.User.Bio,
		Image:    p.User.Image,
	}
	if p.Owner {
		out.Email = p.User.Email
	}

	httpx.WriteJSON(w, http.StatusOK, conduitsdk.ProfileResponse{Profile: out})
}
