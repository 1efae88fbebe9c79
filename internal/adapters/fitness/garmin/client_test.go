package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bodycomp-sync/internal/ports/fitness"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{
		BaseURL:  ts.URL,
		Email:    "scale@example.com",
		Password: "hunter2",
		Timeout:  2 * time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, ts
}

func TestClient_Login(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/oauth-service/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "scale@example.com" || body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fresh-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))

	tok, err := c.Login(context.Background())
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.AccessToken != "fresh-token" {
		t.Errorf("access token: got %q", tok.AccessToken)
	}
	if !tok.Usable(time.Now()) {
		t.Error("fresh token should be usable")
	}
	if tok.Usable(time.Now().Add(2 * time.Hour)) {
		t.Error("token should expire after expires_in")
	}
}

func TestClient_LoginRejected(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))

	_, err := c.Login(context.Background())
	if !errors.Is(err, fitness.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_LoginRateLimited(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))

	_, err := c.Login(context.Background())
	if !errors.Is(err, fitness.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestClient_NetworkErrorIsUnavailable(t *testing.T) {
	c, ts := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // nadie escuchando

	_, err := c.Login(context.Background())
	if !errors.Is(err, fitness.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_CheckToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userprofile-service/socialProfile" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer cached-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	good := Token{AccessToken: "cached-token", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}
	if err := c.CheckToken(context.Background(), good); err != nil {
		t.Fatalf("check: %v", err)
	}

	bad := Token{AccessToken: "stale", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}
	if err := c.CheckToken(context.Background(), bad); !errors.Is(err, fitness.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_UploadBodyComposition(t *testing.T) {
	bmi, muscle := 22.1, 55.3

	var got uploadRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/weight-service/user-weight" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "rw-123"})
	}))

	tok := Token{AccessToken: "tok", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}
	id, err := c.UploadBodyComposition(context.Background(), tok, fitness.BodyComposition{
		Date:       time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Weight:     70.2,
		PercentFat: 18.5,
		BMI:        &bmi,
		MuscleMass: &muscle,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if id != "rw-123" {
		t.Errorf("remote id: got %q", id)
	}

	if got.DateTimestamp != "2026-08-24T00:00:00.0" {
		t.Errorf("dateTimestamp: got %q", got.DateTimestamp)
	}
	if got.Weight != 70.2 || got.BodyFat != 18.5 {
		t.Errorf("payload values: %+v", got)
	}
	if got.BMI == nil || *got.BMI != 22.1 {
		t.Errorf("bmi: %+v", got.BMI)
	}
	if got.MuscleMass == nil || *got.MuscleMass != 55.3 {
		t.Errorf("muscle mass: %+v", got.MuscleMass)
	}
	if got.PercentHydration != nil {
		t.Errorf("hydration should be omitted, got %+v", got.PercentHydration)
	}
	if got.UnitKey != "kg" {
		t.Errorf("unitKey: got %q", got.UnitKey)
	}
}

func TestClient_UploadUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	tok := Token{AccessToken: "tok", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}
	_, err := c.UploadBodyComposition(context.Background(), tok, fitness.BodyComposition{Weight: 70})
	if !errors.Is(err, fitness.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestToken_Usable(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		tok  Token
		want bool
	}{
		{"vigente", Token{AccessToken: "x", ExpiresAt: now.Add(time.Hour)}, true},
		{"vencido", Token{AccessToken: "x", ExpiresAt: now.Add(-time.Hour)}, false},
		{"por vencer dentro del margen", Token{AccessToken: "x", ExpiresAt: now.Add(10 * time.Second)}, false},
		{"sin access token", Token{ExpiresAt: now.Add(time.Hour)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tok.Usable(now); got != tc.want {
				t.Fatalf("usable: expected %v, got %v", tc.want, got)
			}
		})
	}
}
