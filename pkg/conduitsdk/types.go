package conduitsdk

// ============================================================================
// Requests
// ============================================================================

// RegisterRequest is the body of POST /api/users.
type RegisterRequest struct {
	User RegisterUser `json:"user"`
}

type RegisterUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	User LoginUser `json:"user"`
}

type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the body of PUT /api/user. Nil fields are left
// unchanged by the server.
type UpdateUserRequest struct {
	User UpdateUser `json:"user"`
}

type UpdateUser struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ============================================================================
// Responses
// ============================================================================

// UserResponse wraps the authenticated user returned by register, login and
// the /api/user endpoints.
type UserResponse struct {
	User AuthUser `json:"user"`
}

// AuthUser is the caller's own user together with a fresh session token.
type AuthUser struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// ProfileResponse wraps a public profile.
type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

// Profile is the public view of a user. Email is only present when the
// viewer is the profile's owner.
type Profile struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Email    string `json:"email,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Secret   string `json:"secret"`
}
