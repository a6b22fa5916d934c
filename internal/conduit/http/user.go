package http

import (
	"net/http"

	"github.com/aussiebroadwan/conduit/internal/conduit/domain"
	"github.com/aussiebroadwan/conduit/internal/conduit/service"
	"github.com/aussiebroadwan/conduit/pkg/conduitsdk"
	"github.com/aussiebroadwan/conduit/pkg/httpx"
)

type CurrentUserHandler struct {
	UserService *service.UserService
}

// HandleGet returns the authenticated user.
//
//	@Summary		Get current user
//	@Description	Returns the authenticated user with a freshly generated token.
//	@Tags			User
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	conduitsdk.UserResponse	"Current user with token"
//	@Failure		401	{object}	conduitsdk.APIError		"Missing, invalid or expired token"
//	@Failure		500	{object}	conduitsdk.APIError		"Internal server error"
//	@Router			/api/user [get].
func (h *CurrentUserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteUnauthorized(w)
		return
	}

	sess, err := h.UserService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, conduitsdk.UserResponse{User: toAuthUser(sess)})
}

// HandleUpdate changes the fields present in the body.
//
//	@Summary		Update current user
//	@Description	Only fields present in the body change. A new password replaces the stored credential.
//	@Tags			User
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		conduitsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	conduitsdk.UserResponse			"Updated user with token"
//	@Failure		400		{object}	conduitsdk.APIError				"Body is not valid JSON"
//	@Failure		401		{object}	conduitsdk.APIError				"Missing, invalid or expired token"
//	@Failure		422		{object}	conduitsdk.APIError				"Validation failed or username/email already taken"
//	@Router			/api/user [put].
func (h *CurrentUserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteUnauthorized(w)
		return
	}

	patch, err := decodeUserBody[domain.UserPatch](w, r)
	if err != nil {
		conduitsdk.ErrInvalidBody.WriteError(w)
		return
	}

	sess, err := h.UserService.UpdateUser(r.Context(), userID, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, conduitsdk.UserResponse{User: toAuthUser(sess)})
}
