package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func newTestProvider(t *testing.T, userInfo string) *GoogleProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			if r.Header.Get("Authorization") != "Bearer at" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(userInfo))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	p := NewGoogleProvider("client", "secret", "http://localhost/auth/callback")
	p.config.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	p := NewGoogleProvider("client", "secret", "http://localhost/auth/callback")
	raw := p.AuthCodeURL("st4te")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	q := u.Query()
	if q.Get("state") != "st4te" || q.Get("client_id") != "client" {
		t.Errorf("unexpected query %v", q)
	}
	if !strings.Contains(q.Get("scope"), "email") {
		t.Errorf("expected email scope, got %q", q.Get("scope"))
	}
}

func TestGoogleProvider_Exchange(t *testing.T) {
	t.Run("returns the verified user", func(t *testing.T) {
		p := newTestProvider(t, `{"id":"g-1","email":"anna@example.com","verified_email":true}`)
		user, err := p.Exchange(context.Background(), "code")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != "g-1" || user.Email != "anna@example.com" {
			t.Errorf("unexpected user %+v", user)
		}
	})

	t.Run("rejects unverified email", func(t *testing.T) {
		p := newTestProvider(t, `{"id":"g-1","email":"anna@example.com","verified_email":false}`)
		if _, err := p.Exchange(context.Background(), "code"); err == nil {
			t.Error("expected an error")
		}
	})
}
