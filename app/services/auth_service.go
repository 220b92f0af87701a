package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lingo-guard/app/errs"
	"lingo-guard/app/models"
	"lingo-guard/app/ratelimit"
	"lingo-guard/app/security"
	"lingo-guard/app/store"
	"lingo-guard/app/validate"
)

const tokenPrefix = "SECURE_SESSION_"

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService orchestrates rate limiting, validation, the user store and the
// password hasher for the two operations of the service.
type AuthService struct {
	users         store.UserStore
	loginLimit    *ratelimit.Limiter
	registerLimit *ratelimit.Limiter
	maxUsers      int
	log           zerolog.Logger
	now           func() time.Time
}

func NewAuthService(users store.UserStore, loginLimit, registerLimit *ratelimit.Limiter, maxUsers int, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:         users,
		loginLimit:    loginLimit,
		registerLimit: registerLimit,
		maxUsers:      maxUsers,
		log:           log,
		now:           time.Now,
	}
}

// Login runs the full state machine: rate check, field check, lookup,
// active gate, credential verification. Unknown users and wrong passwords
// produce the same generic failure; a disabled account is reported
// distinctly. On success the client's login window is cleared, lastLogin is
// stamped and an opaque session token is issued.
func (s *AuthService) Login(ctx context.Context, clientKey, username, password string) (*models.User, string, error) {
	res, err := s.loginLimit.Check(ctx, clientKey)
	if err != nil {
		s.log.Error().Err(err).Msg("login rate check failed")
		return nil, "", errs.Wrap(errs.Store, "Authentication system error.", err)
	}
	if !res.Allowed {
		msg := fmt.Sprintf("Too many login attempts. Try again in %d minutes.", res.RetryAfter)
		return nil, "", errs.RateLimited(msg, res.RetryAfter)
	}

	if username == "" || password == "" {
		return nil, "", errs.New(errs.Validation, "Username and password required.")
	}

	clean := strings.ToLower(strings.TrimSpace(username))
	u, err := s.users.FindByUsername(ctx, clean)
	if err != nil {
		s.log.Error().Err(err).Msg("user lookup failed")
		return nil, "", errs.Wrap(errs.Store, "Authentication system error.", err)
	}
	if u == nil {
		return nil, "", errs.New(errs.Authentication, "Invalid credentials.")
	}
	if u.Disabled() {
		return nil, "", errs.New(errs.Authorization, "Account disabled.")
	}

	ok, err := credentialOf(u, s.users).verify(ctx, password)
	if err != nil {
		s.log.Error().Err(err).Msg("credential check failed")
		return nil, "", errs.Wrap(errs.Store, "Authentication system error.", err)
	}
	if !ok {
		return nil, "", errs.New(errs.Authentication, "Invalid credentials.")
	}

	if err := s.loginLimit.Clear(ctx, clientKey); err != nil {
		s.log.Warn().Err(err).Msg("login window clear failed")
	}
	at := s.now()
	if err := s.users.UpdateLastLogin(ctx, u.ID, at); err != nil {
		s.log.Error().Err(err).Msg("last login update failed")
		return nil, "", errs.Wrap(errs.Store, "Authentication system error.", err)
	}
	u.LastLogin = &at

	return u, tokenPrefix + uuid.NewString(), nil
}

// Register sanitizes and validates the request, enforces the user ceiling and
// identity uniqueness, demotes admin role requests and persists the record
// with a freshly derived salt+hash. The returned record never reaches clients
// whole; controllers project it.
func (s *AuthService) Register(ctx context.Context, clientKey string, in RegisterInput) (*models.User, error) {
	res, err := s.registerLimit.Check(ctx, clientKey)
	if err != nil {
		s.log.Error().Err(err).Msg("register rate check failed")
		return nil, errs.Wrap(errs.Store, "Registration failed.", err)
	}
	if !res.Allowed {
		return nil, errs.RateLimited("Rate limit exceeded. Try again later.", res.RetryAfter)
	}

	cleanUsername := strings.ToLower(validate.Sanitize(in.Username))
	cleanEmail := strings.ToLower(validate.Sanitize(in.Email))
	cleanRole := validate.Sanitize(in.Role)
	if cleanRole == "" {
		cleanRole = "student"
	}

	if cleanUsername == "" || in.Password == "" || cleanEmail == "" {
		return nil, errs.New(errs.Validation, "All fields are required.")
	}
	if !validate.Username(cleanUsername) {
		return nil, errs.New(errs.Validation, "Username must be 3-20 characters, alphanumeric and underscore only.")
	}
	if !validate.Email(cleanEmail) {
		return nil, errs.New(errs.Validation, "Invalid email format.")
	}
	if !validate.Password(in.Password) {
		return nil, errs.New(errs.Validation, "Password must be at least 8 characters with uppercase, lowercase, and number.")
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("user count failed")
		return nil, errs.Wrap(errs.Store, "Registration failed.", err)
	}
	if count >= int64(s.maxUsers) {
		return nil, errs.New(errs.Capacity, "Registration limit reached.")
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, cleanUsername, cleanEmail)
	if err != nil {
		s.log.Error().Err(err).Msg("duplicate lookup failed")
		return nil, errs.Wrap(errs.Store, "Registration failed.", err)
	}
	if existing != nil {
		return nil, errs.New(errs.Conflict, "Username or email already registered.")
	}

	if cleanRole == "admin" {
		cleanRole = "student"
	}

	salt, hash, err := security.Hash(in.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("password hash failed")
		return nil, errs.Wrap(errs.Store, "Registration failed.", err)
	}

	active := true
	u := &models.User{
		ID:            uuid.NewString(),
		Username:      cleanUsername,
		Email:         cleanEmail,
		PasswordHash:  hash,
		Salt:          salt,
		Role:          cleanRole,
		IsActive:      &active,
		EmailVerified: false,
		CreatedAt:     s.now(),
	}
	if err := s.users.Insert(ctx, u); err != nil {
		s.log.Error().Err(err).Msg("user insert failed")
		return nil, errs.Wrap(errs.Store, "Registration failed.", err)
	}
	return u, nil
}
