package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/conduit/pkg/httpx"
)

// decodeUserBody reads a user payload that is either wrapped as
// {"user": {...}} or sent flat as {...}.
func decodeUserBody[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T

	var raw json.RawMessage
	if err := httpx.DecodeJSON(w, r, &raw); err != nil {
		return v, err
	}

	var envelope struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return v, err
	}

	body := raw
	if len(envelope.User) > 0 && !bytes.Equal(envelope.User, []byte("null")) {
		body = envelope.User
	}

	err := json.Unmarshal(body, &v)
	return v, err
}
