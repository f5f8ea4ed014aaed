package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/internal/animals"
	authsvc "github.com/estradaranch/flockherd-backend/internal/auth"
	"github.com/estradaranch/flockherd-backend/internal/feeds"
	"github.com/estradaranch/flockherd-backend/internal/inventory"
	"github.com/estradaranch/flockherd-backend/internal/sales"
	"github.com/estradaranch/flockherd-backend/internal/users"
	"github.com/estradaranch/flockherd-backend/pkg/config"
	"github.com/estradaranch/flockherd-backend/pkg/db"
	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
	"github.com/estradaranch/flockherd-backend/pkg/metrics"
)

// memorySessions backs both the auth service and the middleware checker in
// router tests.
type memorySessions struct {
	live map[string]uint
}

func (m *memorySessions) Create(_ context.Context, sessionID string, userID uint) error {
	m.live[sessionID] = userID
	return nil
}

func (m *memorySessions) Revoke(_ context.Context, sessionID string) error {
	delete(m.live, sessionID)
	return nil
}

func (m *memorySessions) Has(_ context.Context, sessionID string) (bool, error) {
	_, ok := m.live[sessionID]
	return ok, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Animal{}, &models.Feed{}, &models.InventoryItem{}, &models.Sale{},
	))

	client := db.NewFromConn(conn)
	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Env: "dev", Port: "0"},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			Issuer:     "flockherd",
			TTLMinutes: 60,
			CookieName: "flockherd_session",
		},
		Password: config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16},
	}
	logg := logger.New(logger.Options{ServiceName: "flockherd-test", Output: io.Discard})
	sessions := &memorySessions{live: map[string]uint{}}

	authService, err := authsvc.NewService(users.NewRepository(conn), sessions, client, cfg.Session, cfg.Password)
	require.NoError(t, err)
	animalsService, err := animals.NewService(animals.NewRepository(conn), client)
	require.NoError(t, err)
	feedsService, err := feeds.NewService(feeds.NewRepository(conn), client)
	require.NoError(t, err)
	inventoryService, err := inventory.NewService(inventory.NewRepository(conn), client)
	require.NoError(t, err)
	salesService, err := sales.NewService(sales.NewRepository(conn), animals.NewRepository(conn), client)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()

	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		Renderer:       renderer,
		DB:             client,
		SessionChecker: sessions,
		Auth:           authService,
		Animals:        animalsService,
		Feeds:          feedsService,
		Inventory:      inventoryService,
		Sales:          salesService,
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		PromGatherer:   registry,
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get("X-FlockHerd-Env"))
	assert.Contains(t, rec.Body.String(), "live")
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestAnonymousRequestRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fanimals%2F", rec.Header().Get("Location"))
}

func TestLoginPageIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login")
}

func TestRegisterLoginBrowseFlow(t *testing.T) {
	router := newTestRouter(t)

	register := url.Values{
		"username":         {"shepherd"},
		"email":            {"shepherd@example.com"},
		"password":         {"wooly-pass"},
		"confirm_password": {"wooly-pass"},
	}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(register.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	login := url.Values{
		"username": {"shepherd"},
		"password": {"wooly-pass"},
	}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(login.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flockherd_session" {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")

	req = httptest.NewRequest(http.MethodGet, "/animals/", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Animals")
}
