package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{RateLimit, http.StatusTooManyRequests},
		{Authentication, http.StatusUnauthorized},
		{Authorization, http.StatusForbidden},
		{Conflict, http.StatusConflict},
		{Capacity, http.StatusForbidden},
		{Store, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(New(tt.kind, "msg")))
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestMessageHidesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(Store, "Registration failed.", cause)
	assert.Equal(t, "Registration failed.", Message(err))
	assert.ErrorIs(t, err, cause)
}

func TestMessageWrappedFurther(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(Conflict, "Username or email already registered."))
	assert.Equal(t, "Username or email already registered.", Message(err))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestRetryAfterMinutes(t *testing.T) {
	assert.Equal(t, 3, RetryAfterMinutes(RateLimited("slow down", 3)))
	assert.Zero(t, RetryAfterMinutes(New(Validation, "bad")))
	assert.Zero(t, RetryAfterMinutes(errors.New("plain")))
}
