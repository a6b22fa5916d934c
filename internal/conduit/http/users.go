package http

import (
	"net/http"

	"github.com/aussiebroadwan/conduit/internal/conduit/service"
	"github.com/aussiebroadwan/conduit/pkg/conduitsdk"
	"github.com/aussiebroadwan/conduit/pkg/httpx"
	"github.com/aussiebroadwan/conduit/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister creates a new user.
//
//	@Summary		Register a user
//	@Description	Creates a user and returns it with a session token. Username and email are stored lowercase.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		conduitsdk.RegisterRequest	true	"New user"
//	@Success		200		{object}	conduitsdk.UserResponse		"Registered user with token"
//	@Failure		400		{object}	conduitsdk.APIError			"Body is not valid JSON"
//	@Failure		422		{object}	conduitsdk.APIError			"Validation failed or username/email already taken"
//	@Failure		429		{object}	conduitsdk.APIError			"Rate limit exceeded"
//	@Router			/api/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	in, err := decodeUserBody[conduitsdk.RegisterUser](w, r)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("invalid register body", "err", err)
		conduitsdk.ErrInvalidBody.WriteError(w)
		return
	}

	sess, err := h.UserService.Register(r.Context(), service.RegisterInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, conduitsdk.UserResponse{User: toAuthUser(sess)})
}

// HandleLogin authenticates with email and password.
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a session token.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		conduitsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	conduitsdk.UserResponse		"Authenticated user with token"
//	@Failure		400		{object}	conduitsdk.APIError			"Body is not valid JSON"
//	@Failure		422		{object}	conduitsdk.APIError			"Blank field, or email or password is invalid"
//	@Failure		429		{object}	conduitsdk.APIError			"Rate limit exceeded"
//	@Router			/api/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	in, err := decodeUserBody[conduitsdk.LoginUser](w, r)
	if err != nil {
		conduitsdk.ErrInvalidBody.WriteError(w)
		return
	}

	sess, err := h.UserService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, conduitsdk.UserResponse{User: toAuthUser(sess)})
}

// TestHandler godoc
//
//	@Summary	Smoke test
//	@Tags		Health
//	@Produce	json
//	@Success	200	{string}	string	"1234"
//	@Router		/api/users/test [get].
func TestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, "1234")
	}
}

func toAuthUser(s service.Session) conduitsdk.AuthUser {
	return conduitsdk.AuthUser{
		Email:    s.User.Email,
		Token:    s.Token,
		Username: s.User.Username,
		Bio:      s.User.Bio,
		Image:    s.User.Image,
	}
}
