package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"homebudget/internal/auth"
	"homebudget/internal/middleware"
	"homebudget/internal/validator"
)

// --- mock services ---

type mockProvider struct {
	exchangeFn func(ctx context.Context, code string) (*auth.User, error)
}

func (m *mockProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (m *mockProvider) Exchange(ctx context.Context, code string) (*auth.User, error) {
	if m.exchangeFn != nil {
		return m.exchangeFn(ctx, code)
	}
	return &auth.User{ID: "google-1", Email: "anna@example.com"}, nil
}

var _ auth.Provider = (*mockProvider)(nil)

type auditEntry struct {
	userID, action, resourceType, resourceID string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, _ map[string]any) {
	m.entries = append(m.entries, auditEntry{userID, action, resourceType, resourceID})
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Set("email", "anna@example.com")
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// assertErrorDetail checks that the error details name field.
func assertErrorDetail(t *testing.T, result map[string]interface{}, field string) {
	t.Helper()
	errObj, _ := result["error"].(map[string]interface{})
	details, ok := errObj["details"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error details, got: %v", result)
	}
	if _, ok := details[field]; !ok {
		t.Errorf("expected details for %q, got %v", field, details)
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.GET("/auth/oauth/google", handler.Login)
	r.GET("/auth/callback", handler.Callback)
	r.POST("/auth/logout", handler.Logout)
	r.GET("/me", injectUserID("google-1"), handler.Me)
	return r
}

func newTestAuthHandler(provider auth.Provider) (*AuthHandler, *auth.Sessions) {
	sessions := auth.NewSessions("test-secret", time.Hour)
	allowed := func(email string) bool { return email == "anna@example.com" }
	return NewAuthHandler(provider, sessions, allowed, false), sessions
}

func callbackRequest(r *gin.Engine, query, state string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/auth/callback?"+query, nil)
	if state != "" {
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestAuthHandler_Login(t *testing.T) {
	t.Run("redirects with a state cookie", func(t *testing.T) {
		handler, _ := newTestAuthHandler(&mockProvider{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/oauth/google", "")

		if rec.Code != http.StatusTemporaryRedirect {
			t.Fatalf("expected 307, got %d", rec.Code)
		}
		state := findCookie(rec, oauthStateCookie)
		if state == nil || state.Value == "" {
			t.Fatal("expected a state cookie")
		}
		if !strings.HasSuffix(rec.Header().Get("Location"), "state="+state.Value) {
			t.Errorf("expected redirect to carry the state, got %s", rec.Header().Get("Location"))
		}
	})
}

func TestAuthHandler_Callback(t *testing.T) {
	t.Run("sets the session cookie on success", func(t *testing.T) {
		var gotCode string
		provider := &mockProvider{exchangeFn: func(_ context.Context, code string) (*auth.User, error) {
			gotCode = code
			return &auth.User{ID: "google-1", Email: "anna@example.com"}, nil
		}}
		handler, sessions := newTestAuthHandler(provider)
		r := setupAuthRouter(handler)

		rec := callbackRequest(r, "code=abc&state=s1", "s1")

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotCode != "abc" {
			t.Errorf("expected code abc, got %q", gotCode)
		}
		cookie := findCookie(rec, middleware.SessionCookie)
		if cookie == nil {
			t.Fatal("expected a session cookie")
		}
		user, err := sessions.Parse(cookie.Value)
		if err != nil {
			t.Fatalf("session cookie should verify: %v", err)
		}
		if user.ID != "google-1" || user.Email != "anna@example.com" {
			t.Errorf("unexpected session user %+v", user)
		}
	})

	t.Run("returns 400 on state mismatch", func(t *testing.T) {
		handler, _ := newTestAuthHandler(&mockProvider{})
		r := setupAuthRouter(handler)

		rec := callbackRequest(r, "code=abc&state=other", "s1")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorDetail(t, parseJSON(t, rec), "state")
	})

	t.Run("returns 400 without a state cookie", func(t *testing.T) {
		handler, _ := newTestAuthHandler(&mockProvider{})
		r := setupAuthRouter(handler)

		rec := callbackRequest(r, "code=abc&state=s1", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 401 when the exchange fails", func(t *testing.T) {
		provider := &mockProvider{exchangeFn: func(context.Context, string) (*auth.User, error) {
			return nil, errors.New("bad code")
		}}
		handler, _ := newTestAuthHandler(provider)
		r := setupAuthRouter(handler)

		rec := callbackRequest(r, "code=abc&state=s1", "s1")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})

	t.Run("returns 401 for an email off the allow-list", func(t *testing.T) {
		provider := &mockProvider{exchangeFn: func(context.Context, string) (*auth.User, error) {
			return &auth.User{ID: "google-2", Email: "mallory@example.com"}, nil
		}}
		handler, _ := newTestAuthHandler(provider)
		r := setupAuthRouter(handler)

		rec := callbackRequest(r, "code=abc&state=s1", "s1")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if findCookie(rec, middleware.SessionCookie) != nil {
			t.Error("no session cookie should be set")
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	handler, _ := newTestAuthHandler(&mockProvider{})
	r := setupAuthRouter(handler)

	rec := doRequest(r, "POST", "/auth/logout", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := findCookie(rec, middleware.SessionCookie)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Errorf("expected the session cookie to be cleared, got %+v", cookie)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler, _ := newTestAuthHandler(&mockProvider{})
	r := setupAuthRouter(handler)

	rec := doRequest(r, "GET", "/me", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["id"] != "google-1" || result["email"] != "anna@example.com" {
		t.Errorf("unexpected body %v", result)
	}
}
