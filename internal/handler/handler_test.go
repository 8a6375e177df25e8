package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"roomhub/internal/app/store"
	"roomhub/internal/configs"
	"roomhub/internal/pkg/auth/session"
	"roomhub/internal/pkg/render"
)

const testSecret = "test_session_secret"

// newTestEnv builds a full router backed by an in-memory store. Each
// test gets its own instance, so rate limiter state never leaks between
// tests.
func newTestEnv(t *testing.T) (http.Handler, *memStore, *AppDeps) {
	t.Helper()

	ms := newMemStore()
	deps := &AppDeps{
		Store: ms,
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           8080,
			AllowedOrigins: []string{},
			SessionSecret:  testSecret,
		},
		Render: render.New(),
	}

	return Router(deps), ms, deps
}

// seedUser inserts a user with a real bcrypt hash so login flows work.
func seedUser(t *testing.T, ms *memStore, name, email, password string) store.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	u, err := ms.CreateUser(t.Context(), store.CreateUserParams{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedRoom(t *testing.T, ms *memStore, host store.User, topicName, name, description string) store.Room {
	t.Helper()

	topic, err := ms.GetOrCreateTopic(t.Context(), topicName)
	if err != nil {
		t.Fatalf("seed topic: %v", err)
	}

	rm, err := ms.CreateRoom(t.Context(), store.CreateRoomParams{
		HostID:      host.ID,
		TopicID:     topic.ID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return rm
}

func seedMessage(t *testing.T, ms *memStore, author store.User, room store.Room, body string) store.Message {
	t.Helper()

	msg, err := ms.CreateMessage(t.Context(), store.CreateMessageParams{
		UserID: author.ID,
		RoomID: room.ID,
		Body:   body,
	})
	if err != nil {
		t.Fatalf("seed message: %v", err)
	}
	return msg
}

// sessionCookie signs a session token for the user, the same way a real
// login would.
func sessionCookie(t *testing.T, user store.User) *http.Cookie {
	t.Helper()

	token, err := session.GenerateToken(&session.Claims{
		UserID: user.ID,
		Name:   user.Name,
	}, testSecret, session.Lifetime)
	if err != nil {
		t.Fatalf("sign session token: %v", err)
	}

	return &http.Cookie{Name: session.CookieName, Value: token}
}

func doGet(t *testing.T, h http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func doPost(t *testing.T, h http.Handler, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	b, err := io.ReadAll(w.Result().Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(b)
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("status = %d, want %d", w.Code, want)
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()

	assertStatus(t, w, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("redirect location = %q, want %q", got, location)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("response does not contain %q", needle)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if strings.Contains(haystack, needle) {
		t.Fatalf("response unexpectedly contains %q", needle)
	}
}

// sessionCookieSet reports whether the response established a session.
func sessionCookieSet(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" && c.MaxAge >= 0 {
			return true
		}
	}
	return false
}
