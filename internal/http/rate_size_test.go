package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojavirtual/internal/domain"
)

// Bursts above RATE_LIMIT answer 429 and are logged.
func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 3
	a := newTestAppWith(t, cfg)
	logs := observeLogs(t)
	tok := token(t, "a@b.com", domain.ScopeCategoriesRead)

	for i := 0; i < 4; i++ {
		r := a.do(t, "GET", "/api/categories", tok, nil)
		if i < 3 {
			require.Equal(t, http.StatusOK, r.status, "limited too early at %d", i)
			continue
		}
		assert.Equal(t, http.StatusTooManyRequests, r.status)
		assert.Len(t, r.mensagens, 1)
	}
	assert.Equal(t, 1, logs.FilterMessage("rate.limit.hit").Len())

	// health checks are never throttled
	assert.Equal(t, http.StatusOK, a.do(t, "GET", "/healthz", "", nil).status)
}

// Oversized bodies are rejected before reaching a handler.
func TestBodySizeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.BodyLimit = 1024
	a := newTestAppWith(t, cfg)
	tok := token(t, "a@b.com", domain.ScopeCategoriesWrite)

	body := `{"name":"` + strings.Repeat("A", 4096) + `"}`
	req := httptest.NewRequest("POST", "/api/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := a.app.Test(req)
	// fasthttp may refuse the body before producing a response
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, 0, a.count(t, "categories"))
}
