package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojavirtual/internal/auth"
	"lojavirtual/internal/domain"
)

func TestMissingBearerIs401(t *testing.T) {
	a := newTestApp(t)
	r := a.do(t, "POST", "/api/categories", "", map[string]any{"name": "Games"})
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Empty(t, r.body)
	assert.Equal(t, 0, a.count(t, "categories"))
}

func TestInvalidBearerIs401(t *testing.T) {
	a := newTestApp(t)

	other, err := auth.NewVerifier("another-secret", "").Issue("a@b.com", allScopes, time.Hour)
	require.NoError(t, err)
	expired, err := auth.NewVerifier(testSecret, "").Issue("a@b.com", allScopes, -time.Minute)
	require.NoError(t, err)

	for name, tok := range map[string]string{"garbage": "abc.def.ghi", "wrong key": other, "expired": expired} {
		t.Run(name, func(t *testing.T) {
			r := a.do(t, "GET", "/api/categories", tok, nil)
			assert.Equal(t, http.StatusUnauthorized, r.status)
		})
	}
}

func TestMissingScopeIs403AndLogged(t *testing.T) {
	a := newTestApp(t)
	logs := observeLogs(t)

	r := a.do(t, "POST", "/api/categories", token(t, "a@b.com", domain.ScopeCategoriesRead), map[string]any{"name": "Games"})
	assert.Equal(t, http.StatusForbidden, r.status)
	assert.Empty(t, r.body)
	assert.Equal(t, 0, a.count(t, "categories"))

	denied := logs.FilterMessage("access.denied.scope").All()
	require.Len(t, denied, 1)
	fields := denied[0].ContextMap()
	assert.Equal(t, domain.ScopeCategoriesWrite, fields["scope"])
	assert.Equal(t, "a@b.com", fields["principal"])
	assert.NotEmpty(t, fields["req_id"])
}

func TestUnregisteredPrincipalIs401(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "ghost@example.com", allScopes...)

	r := a.do(t, "POST", "/api/categories", tok, map[string]any{"name": "Consoles"})
	require.Equal(t, http.StatusCreated, r.status)

	r = a.do(t, "POST", "/api/products", tok, validProduct(1))
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, 0, a.count(t, "products"))
}
