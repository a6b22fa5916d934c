package conduitsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/aussiebroadwan/conduit/pkg/httpx"
)

// APIError is the conduit error envelope: {"errors": {"field": "message"}}.
// It is written by the server and returned by Client for non-2xx responses.
type APIError struct {
	StatusCode int               `json:"-"`
	Errors     map[string]string `json:"errors"`
}

func (e *APIError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Errors[k])
	}
	return fmt.Sprintf("conduit: %d: %s", e.StatusCode, strings.Join(parts, ", "))
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, httpx.ErrorBody{Errors: e.Errors})
}

// NewValidationError returns a 422 carrying per-field messages.
func NewValidationError(fields map[string]string) *APIError {
	return &APIError{StatusCode: http.StatusUnprocessableEntity, Errors: fields}
}

func newMessageError(status int, msg string) *APIError {
	return &APIError{StatusCode: status, Errors: map[string]string{"message": msg}}
}

var (
	// ErrInvalidCredentials is the single login failure for an unknown
	// email or a wrong password.
	ErrInvalidCredentials = NewValidationError(map[string]string{"email or password": "is invalid"})

	ErrInvalidBody  = newMessageError(http.StatusBadRequest, "request body is not valid JSON")
	ErrUnauthorized = newMessageError(http.StatusUnauthorized, "unauthorized")
	ErrNotFound     = newMessageError(http.StatusNotFound, "Not Found")
	ErrServerError  = newMessageError(http.StatusInternalServerError, "internal server error")

	ErrServiceUnavailable = newMessageError(http.StatusServiceUnavailable, "service busy, try again later")
)

func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || len(apiErr.Errors) == 0 {
		apiErr.Errors = map[string]string{"message": strings.TrimSpace(string(body))}
		if len(body) == 0 {
			apiErr.Errors["message"] = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
