package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// SessionUser is the minimal projection returned on login.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	Role    string      `json:"role"`
	User    SessionUser `json:"user"`
}

// RegisteredUser is the projection returned on registration; it never carries
// the password, hash or salt.
type RegisteredUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}

type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}
