package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort           = 8080
	DefaultConnectBaseURL = "https://connectapi.garmin.com"
	DefaultConnectTimeout = 15 * time.Second
)

var (
	ErrMissingEmail    = errors.New("EMAIL is required")
	ErrMissingPassword = errors.New("PASSWORD is required")
	ErrMissingSecret   = errors.New("SECRET_KEY is required")
)

// Config es inmutable: se construye una vez en main y se pasa hacia abajo.
// Nada de estado global mutable (ver handlers: reciben lo que necesitan).
type Config struct {
	// Credenciales de la cuenta Garmin Connect.
	Email    string
	Password string

	// Dónde persistimos el token de sesión (cero o un archivo).
	TokenPath string

	// Secreto HS256 para la cookie de sesión del navegador.
	SessionSecret string

	// Secure en la cookie; encender cuando se sirve detrás de TLS.
	CookieSecure bool

	Port           int
	ConnectBaseURL string
	ConnectTimeout time.Duration

	// CORS. "*" permite todo (uso típico: una sola balanza en LAN).
	AllowedOrigins []string
}

// Load arma la Config desde env vars y valida.
// Falla acá = el proceso no debe arrancar a servir (error de configuración, fatal).
func Load() (Config, error) {
	cfg := Config{
		Email:          strings.TrimSpace(os.Getenv("EMAIL")),
		Password:       os.Getenv("PASSWORD"),
		TokenPath:      strings.TrimSpace(os.Getenv("TOKEN_PATH")),
		SessionSecret:  os.Getenv("SECRET_KEY"),
		Port:           DefaultPort,
		ConnectBaseURL: DefaultConnectBaseURL,
		ConnectTimeout: DefaultConnectTimeout,
		AllowedOrigins: []string{"*"},
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return Config{}, fmt.Errorf("PORT invalid: %q", v)
		}
		cfg.Port = p
	}

	if v := strings.TrimSpace(os.Getenv("CONNECT_BASE_URL")); v != "" {
		cfg.ConnectBaseURL = v
	}

	if v := strings.TrimSpace(os.Getenv("CONNECT_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("CONNECT_TIMEOUT invalid: %q", v)
		}
		cfg.ConnectTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("COOKIE_SECURE invalid: %q", v)
		}
		cfg.CookieSecure = b
	}

	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	if cfg.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("TOKEN_PATH not set and home dir unknown: %w", err)
		}
		cfg.TokenPath = filepath.Join(home, ".bodycomp-sync", "token.json")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Email == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(c.Password) == "" {
		return ErrMissingPassword
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return ErrMissingSecret
	}

	u, err := url.Parse(c.ConnectBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CONNECT_BASE_URL invalid: %q", c.ConnectBaseURL)
	}
	return nil
}

// Addr devuelve la dirección de escucha para http.Server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
