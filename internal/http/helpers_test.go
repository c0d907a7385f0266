package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"lojavirtual/internal/auth"
	"lojavirtual/internal/config"
	"lojavirtual/internal/domain"
	"lojavirtual/internal/http/handlers"
	applog "lojavirtual/internal/log"
	"lojavirtual/internal/repos"
)

const testSecret = "test-secret"

var allScopes = []string{
	domain.ScopeUsersWrite, domain.ScopeUsersRead,
	domain.ScopeCategoriesWrite, domain.ScopeCategoriesRead,
	domain.ScopeProductsWrite, domain.ScopeProductsRead,
	domain.ScopePurchaseWrite,
}

type testApp struct {
	app *fiber.App
	db  *sqlx.DB
	cfg config.Config
}

func testConfig() config.Config {
	return config.Config{
		DBDriver:      repos.DriverSQLite,
		DBDSN:         ":memory:",
		JWTSecret:     testSecret,
		PublicBaseURL: "http://localhost",
		PhotoBaseURL:  "https://bucket.io",
		RateLimit:     0,
		BodyLimit:     1 << 20,
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWith(t, testConfig())
}

func newTestAppWith(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	deps, err := handlers.NewDeps(db, cfg)
	require.NoError(t, err)
	return &testApp{app: handlers.NewApp(cfg, deps), db: db, cfg: cfg}
}

// observeLogs installs an in-memory zap core for the duration of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(nil) })
	return logs
}

func token(t *testing.T, email string, scopes ...string) string {
	t.Helper()
	tok, err := auth.NewVerifier(testSecret, "").Issue(email, scopes, time.Hour)
	require.NoError(t, err)
	return tok
}

// seedUser stores a user directly so it can act as a token principal.
func (a *testApp) seedUser(t *testing.T, email string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := repos.NewUserRepo(a.db).Create(email, string(hash))
	require.NoError(t, err)
	return id
}

func (a *testApp) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, a.db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

type result struct {
	status    int
	location  string
	body      []byte
	mensagens []string
}

func (a *testApp) do(t *testing.T, method, path, bearer string, body any) result {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := result{status: resp.StatusCode, location: resp.Header.Get("Location")}
	out.body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	if resp.Header.Get("Content-Type") != "" && len(out.body) > 0 && resp.StatusCode >= http.StatusBadRequest {
		var eb struct {
			Mensagens []string `json:"mensagens"`
		}
		if json.Unmarshal(out.body, &eb) == nil {
			out.mensagens = eb.Mensagens
		}
	}
	return out
}
