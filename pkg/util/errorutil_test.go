package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	err := NewCooldownActive(42)
	assert.True(t, HasCode(err, CodeCooldownActive))
	assert.False(t, HasCode(err, CodeTooShort))
	assert.False(t, HasCode(nil, CodeCooldownActive))
	assert.False(t, HasCode(errors.New("plain"), CodeCooldownActive))
}

func TestHasCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("handling update: %w", NewQueueEmpty())
	assert.True(t, HasCode(err, CodeQueueEmpty))
}

func TestRemainingSeconds(t *testing.T) {
	assert.Equal(t, int64(42), RemainingSeconds(NewCooldownActive(42)))
	assert.Equal(t, int64(0), RemainingSeconds(NewTooShort(5)))
	assert.Equal(t, int64(0), RemainingSeconds(nil))
}

func TestToDomainError_WrapsUnknown(t *testing.T) {
	plain := errors.New("disk on fire")
	domainErr := ToDomainError(plain)
	require.NotNil(t, domainErr)
	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestToDomainError_PassesThrough(t *testing.T) {
	err := NewOutOfRange("cooldown_seconds", 10, 3600)
	domainErr := ToDomainError(err)
	assert.Equal(t, CodeOutOfRange, domainErr.Code)
	assert.Equal(t, 10, domainErr.Details["min"])
	assert.Equal(t, 3600, domainErr.Details["max"])
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("tcp reset")
	err := NewDeliveryFailed(42, cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusBadGateway, ToDomainError(err).HTTPStatus)
}
