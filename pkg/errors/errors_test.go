package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerErrorPreservesStatus(t *testing.T) {
	for _, code := range []int{400, 401, 404, 500, 503} {
		err := ServerError(code, "")
		assert.Equal(t, code, StatusCode(err))
		assert.True(t, Is(err, ErrServer))
		assert.Equal(t, code == http.StatusUnauthorized, IsUnauthorized(err))
	}
}

func TestIsMatchesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("fetch today: %w", NetworkError(errors.New("connection refused")))
	assert.True(t, Is(err, ErrNetwork))
	assert.False(t, Is(err, ErrDecoding))
	assert.False(t, Is(errors.New("plain"), ErrNetwork))
	assert.False(t, Is(nil, ErrNetwork))
}

func TestRequiresLogin(t *testing.T) {
	assert.True(t, RequiresLogin(Clone(ErrNotAuthenticated, "")))
	assert.True(t, RequiresLogin(ServerError(http.StatusUnauthorized, "")))
	assert.False(t, RequiresLogin(ServerError(http.StatusForbidden, "")))
	assert.False(t, RequiresLogin(DecodingError(errors.New("bad json"))))
}

func TestFromErrorNormalisesUnknownErrors(t *testing.T) {
	err := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Nil(t, FromError(nil))

	typed := InvalidURL(errors.New("missing host"))
	assert.Same(t, typed, FromError(typed))
	assert.Equal(t, "invalid request url: missing host", typed.Error())
}
