package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	authsvc "github.com/estradaranch/flockherd-backend/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, env *testEnv, username, email, password string) {
	t.Helper()
	_, err := env.auth.Register(context.Background(), authsvc.RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
}

func TestLoginSetsCookieAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "shepherd", "shepherd@example.com", "wooly-pass")

	handler := Login(env.auth, testSessionConfig(), nil)
	req := postForm(t, "/login", url.Values{
		"username": {"shepherd"},
		"password": {"wooly-pass"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == testSessionConfig().CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "session cookie must be set")
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Len(t, env.sessions.live, 1)
}

func TestLoginHonorsNextParameter(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "shepherd", "shepherd@example.com", "wooly-pass")

	handler := Login(env.auth, testSessionConfig(), nil)
	req := postForm(t, "/login?next=%2Fanimals%2F", url.Values{
		"username": {"shepherd"},
		"password": {"wooly-pass"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/animals/", rec.Header().Get("Location"))
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "shepherd", "shepherd@example.com", "wooly-pass")

	handler := Login(env.auth, testSessionConfig(), nil)
	req := postForm(t, "/login?next=https%3A%2F%2Fevil.example", url.Values{
		"username": {"shepherd"},
		"password": {"wooly-pass"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginBadCredentialsRedirectsBack(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "shepherd", "shepherd@example.com", "wooly-pass")

	handler := Login(env.auth, testSessionConfig(), nil)
	req := postForm(t, "/login", url.Values{
		"username": {"shepherd"},
		"password": {"wrong"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Empty(t, env.sessions.live)
}

func TestRegisterMismatchedPasswordsRedirectsBack(t *testing.T) {
	env := newTestEnv(t)

	handler := Register(env.auth, nil)
	req := postForm(t, "/register", url.Values{
		"username":         {"shepherd"},
		"email":            {"shepherd@example.com"},
		"password":         {"one"},
		"confirm_password": {"two"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))
}

func TestRegisterSuccessRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	handler := Register(env.auth, nil)
	req := postForm(t, "/register", url.Values{
		"username":         {"shepherd"},
		"email":            {"shepherd@example.com"},
		"password":         {"wooly-pass"},
		"confirm_password": {"wooly-pass"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLogoutRevokesAndClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.live["session-1"] = 1

	handler := Logout(env.auth, testSessionConfig(), nil)
	req := getAuthed(t, "/logout")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Empty(t, env.sessions.live)

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == testSessionConfig().CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie must be cleared")
}

func TestProfileRendersUser(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "shepherd", "shepherd@example.com", "wooly-pass")

	handler := Profile(env.auth, env.renderer, nil)
	req := getAuthed(t, "/profile")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shepherd@example.com")
}
