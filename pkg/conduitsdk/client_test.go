package conduitsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/conduit/pkg/conduitsdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req conduitsdk.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.User.Password != "jakejake" {
			conduitsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		_ = json.NewEncoder(w).Encode(conduitsdk.UserResponse{User: conduitsdk.AuthUser{
			Email:    req.User.Email,
			Username: "jake",
			Token:    "tok",
		}})
	}))
	defer srv.Close()

	c := conduitsdk.NewClient(srv.URL + "/")

	user, err := c.Login(context.Background(), "jake@jake.jake", "jakejake")
	require.NoError(t, err)
	require.Equal(t, "tok", user.Token)

	_, err = c.Login(context.Background(), "jake@jake.jake", "nope")
	var apiErr *conduitsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Equal(t, "is invalid", apiErr.Errors["email or password"])
}

func TestClient_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			conduitsdk.ErrUnauthorized.WriteError(w)
			return
		}
		_ = json.NewEncoder(w).Encode(conduitsdk.UserResponse{User: conduitsdk.AuthUser{Username: "jake"}})
	}))
	defer srv.Close()

	c := conduitsdk.NewClient(srv.URL)

	user, err := c.CurrentUser(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "jake", user.Username)

	_, err = c.CurrentUser(context.Background(), "")
	var apiErr *conduitsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := conduitsdk.NewClient(srv.URL).Health(context.Background())
	var apiErr *conduitsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "Bad Gateway", apiErr.Errors["message"])
}

func TestUpdateUser_OmitsNilFields(t *testing.T) {
	bio := ""
	b, err := json.Marshal(conduitsdk.UpdateUserRequest{User: conduitsdk.UpdateUser{Bio: &bio}})
	require.NoError(t, err)
	require.JSONEq(t, `{"user":{"bio":""}}`, string(b))
}
