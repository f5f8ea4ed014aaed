package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/estradaranch/flockherd-backend/api/middleware"
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
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	conn      *gorm.DB
	renderer  *views.Renderer
	sessions  *fakeSessions
	auth      authsvc.Service
	animals   animals.Service
	feeds     feeds.Service
	inventory inventory.Service
	sales     sales.Service
}

type fakeSessions struct {
	live map[string]uint
}

func (f *fakeSessions) Create(_ context.Context, sessionID string, userID uint) error {
	f.live[sessionID] = userID
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	delete(f.live, sessionID)
	return nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		Issuer:     "flockherd",
		TTLMinutes: 60,
		CookieName: "flockherd_session",
	}
}

func newTestEnv(t *testing.T) *testEnv {
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

	sessions := &fakeSessions{live: map[string]uint{}}
	passwordCfg := config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16}

	authService, err := authsvc.NewService(users.NewRepository(conn), sessions, client, testSessionConfig(), passwordCfg)
	require.NoError(t, err)
	animalsService, err := animals.NewService(animals.NewRepository(conn), client)
	require.NoError(t, err)
	feedsService, err := feeds.NewService(feeds.NewRepository(conn), client)
	require.NoError(t, err)
	inventoryService, err := inventory.NewService(inventory.NewRepository(conn), client)
	require.NoError(t, err)
	salesService, err := sales.NewService(sales.NewRepository(conn), animals.NewRepository(conn), client)
	require.NoError(t, err)

	return &testEnv{
		conn:      conn,
		renderer:  renderer,
		sessions:  sessions,
		auth:      authService,
		animals:   animalsService,
		feeds:     feedsService,
		inventory: inventoryService,
		sales:     salesService,
	}
}

// postForm builds an authenticated form submission.
func postForm(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(middleware.WithUser(req.Context(), 1, "shepherd", "session-1"))
}

func getAuthed(t *testing.T, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(middleware.WithUser(req.Context(), 1, "shepherd", "session-1"))
}
