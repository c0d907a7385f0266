package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojavirtual/internal/domain"
)

func TestCreateUser(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "admin@example.com", domain.ScopeUsersWrite, domain.ScopeUsersRead)

	r := a.do(t, "POST", "/api/users", tok, map[string]any{"login": "alberto@zup.com.br", "password": "senha123"})
	require.Equal(t, http.StatusCreated, r.status)
	assert.Regexp(t, `^/api/users/\d+$`, r.location)
	assert.Equal(t, 1, a.count(t, "users"))

	var hash string
	require.NoError(t, a.db.Get(&hash, `SELECT password_hash FROM users`))
	assert.NotContains(t, hash, "senha123")

	r = a.do(t, "GET", "/api/users", tok, nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Contains(t, string(r.body), "alberto@zup.com.br")
	assert.NotContains(t, string(r.body), hash)
}

func TestCreateUserInvalid(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "admin@example.com", domain.ScopeUsersWrite)

	r := a.do(t, "POST", "/api/users", tok, map[string]any{"login": "", "password": "123"})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.ElementsMatch(t, []string{
		"O campo password tamanho deve ser entre 6 e 2147483647",
		"O campo login não deve estar vazio",
	}, r.mensagens)

	r = a.do(t, "POST", "/api/users", tok, map[string]any{"login": "alberto", "password": "senha123"})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo login deve ser um endereço de e-mail bem formado"}, r.mensagens)
	assert.Equal(t, 0, a.count(t, "users"))
}

func TestCreateUserDuplicate(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "admin@example.com", domain.ScopeUsersWrite)
	body := map[string]any{"login": "alberto@zup.com.br", "password": "senha123"}

	require.Equal(t, http.StatusCreated, a.do(t, "POST", "/api/users", tok, body).status)

	r := a.do(t, "POST", "/api/users", tok, body)
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo login login is already registered"}, r.mensagens)

	r = a.do(t, "POST", "/api/users", tok, map[string]any{"login": " ALBERTO@zup.com.br", "password": "senha123"})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo login login is already registered"}, r.mensagens)
	assert.Equal(t, 1, a.count(t, "users"))
}

func TestCreateUserPasswordTooLong(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "admin@example.com", domain.ScopeUsersWrite)

	r := a.do(t, "POST", "/api/users", tok, map[string]any{"login": "long@zup.com.br", "password": strings.Repeat("a", 73)})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo password não deve exceder 72 bytes"}, r.mensagens)
	assert.Zero(t, a.count(t, "users"))
}

func TestMalformedBody(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "admin@example.com", domain.ScopeUsersWrite)

	r := a.do(t, "POST", "/api/users", tok, `{"login":`)
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Len(t, r.mensagens, 1)
}

func TestCreateCategory(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "admin@example.com", domain.ScopeCategoriesWrite, domain.ScopeCategoriesRead)

	r := a.do(t, "POST", "/api/categories", tok, map[string]any{"name": "Tecnologia"})
	require.Equal(t, http.StatusCreated, r.status)
	assert.Equal(t, "/api/categories/1", r.location)

	r = a.do(t, "POST", "/api/categories", tok, map[string]any{"name": "Celulares", "superCategory": 1})
	require.Equal(t, http.StatusCreated, r.status)
	assert.Equal(t, 2, a.count(t, "categories"))

	r = a.do(t, "GET", "/api/categories", tok, nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `[{"id":2,"name":"Celulares","superCategory":1},{"id":1,"name":"Tecnologia","superCategory":null}]`, string(r.body))
}

func TestCreateCategoryInvalid(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "admin@example.com", domain.ScopeCategoriesWrite)

	r := a.do(t, "POST", "/api/categories", tok, map[string]any{"name": ""})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo name não deve estar vazio"}, r.mensagens)

	r = a.do(t, "POST", "/api/categories", tok, map[string]any{"name": "Filha", "superCategory": 42})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo superCategory superCategory is not registered"}, r.mensagens)
	assert.Equal(t, 0, a.count(t, "categories"))
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	a := newTestApp(t)
	tok := token(t, "admin@example.com", domain.ScopeCategoriesWrite)

	require.Equal(t, http.StatusCreated, a.do(t, "POST", "/api/categories", tok, map[string]any{"name": "Tecnologia"}).status)
	for _, name := range []string{"Tecnologia", "TECNOLOGIA"} {
		r := a.do(t, "POST", "/api/categories", tok, map[string]any{"name": name})
		require.Equal(t, http.StatusBadRequest, r.status)
		assert.Equal(t, []string{"O campo name name is already registered"}, r.mensagens)
	}
	assert.Equal(t, 1, a.count(t, "categories"))
}
