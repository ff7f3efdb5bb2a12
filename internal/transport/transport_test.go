package transport

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesInProcess(t *testing.T) {
	h := NewHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))

	req, err := http.NewRequest(http.MethodGet, "http://fixture/calendar/today", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token")

	res, err := h.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestHandlerHonoursCancelledContext(t *testing.T) {
	called := false
	h := NewHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://fixture/health", nil)
	require.NoError(t, err)

	_, err = h.Do(req)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
