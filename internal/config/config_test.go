package config

import (
	"errors"
	"testing"
	"time"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EMAIL", "scale@example.com")
	t.Setenv("PASSWORD", "hunter2")
	t.Setenv("SECRET_KEY", "not-the-default")
	t.Setenv("TOKEN_PATH", t.TempDir()+"/token.json")
}

func TestLoad_Defaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("port: expected %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.ConnectBaseURL != DefaultConnectBaseURL {
		t.Errorf("base url: expected %s, got %s", DefaultConnectBaseURL, cfg.ConnectBaseURL)
	}
	if cfg.ConnectTimeout != DefaultConnectTimeout {
		t.Errorf("timeout: expected %v, got %v", DefaultConnectTimeout, cfg.ConnectTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("origins: expected [*], got %v", cfg.AllowedOrigins)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("addr: expected :8080, got %s", cfg.Addr())
	}
	// Sin TLS por defecto: la cookie sale sin Secure.
	if cfg.CookieSecure {
		t.Error("cookie secure: expected false by default")
	}
}

func TestLoad_MissingCredentialsIsFatal(t *testing.T) {
	// Sin EMAIL/PASSWORD el proceso no debe arrancar: error de
	// configuración, fatal en startup.
	cases := []struct {
		name  string
		unset string
		want  error
	}{
		{"sin email", "EMAIL", ErrMissingEmail},
		{"sin password", "PASSWORD", ErrMissingPassword},
		{"sin secret", "SECRET_KEY", ErrMissingSecret},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setValidEnv(t)
			t.Setenv(tc.unset, "")

			_, err := Load()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CONNECT_BASE_URL", "http://localhost:9999")
	t.Setenv("CONNECT_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port: got %d", cfg.Port)
	}
	if cfg.ConnectBaseURL != "http://localhost:9999" {
		t.Errorf("base url: got %s", cfg.ConnectBaseURL)
	}
	if cfg.ConnectTimeout != 3*time.Second {
		t.Errorf("timeout: got %v", cfg.ConnectTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.local" {
		t.Errorf("origins: got %v", cfg.AllowedOrigins)
	}
	if !cfg.CookieSecure {
		t.Error("cookie secure: expected true")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name, key, val string
	}{
		{"puerto no numérico", "PORT", "web"},
		{"puerto fuera de rango", "PORT", "70000"},
		{"timeout ilegible", "CONNECT_TIMEOUT", "pronto"},
		{"base url sin host", "CONNECT_BASE_URL", "not-a-url"},
		{"cookie secure ilegible", "COOKIE_SECURE", "quizás"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setValidEnv(t)
			t.Setenv(tc.key, tc.val)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
		})
	}
}
