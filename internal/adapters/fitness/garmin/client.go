package garmin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bodycomp-sync/internal/platform/httpclient"
	"bodycomp-sync/internal/ports/fitness"
)

var ErrNotConfigured = errors.New("garmin client not configured")

// Margen antes del vencimiento real; un token a segundos de vencer
// no sirve para una subida.
const expiryLeeway = time.Minute

// Config del cliente Garmin Connect.
// BaseURL y credenciales vienen de env vars en quien lo instancia.
type Config struct {
	BaseURL  string
	Email    string
	Password string

	Timeout time.Duration

	// Opcional, para tests: transport inyectable.
	Transport http.RoundTripper
}

// Token es el blob de sesión que emite el servicio. Se persiste como JSON
// en el TokenStore; fuera de este paquete es opaco.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Usable es el chequeo local: token presente y no vencido.
// Que el servicio lo acepte es otra historia (CheckToken / 401 en la subida).
func (t Token) Usable(now time.Time) bool {
	if strings.TrimSpace(t.AccessToken) == "" {
		return false
	}
	return now.Add(expiryLeeway).Before(t.ExpiresAt)
}

type Client struct {
	email    string
	password string
	http     *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, ErrNotConfigured
	}

	var hc *httpclient.Client
	if cfg.Transport != nil {
		hc = httpclient.NewWithTransport(base, cfg.Timeout, cfg.Transport)
	} else {
		var err error
		hc, err = httpclient.New(base, cfg.Timeout)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		email:    strings.TrimSpace(cfg.Email),
		password: cfg.Password,
		http:     hc,
	}, nil
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // segundos
}

// Login hace el login completo con email/password y devuelve un token fresco.
func (c *Client) Login(ctx context.Context) (Token, error) {
	if c.email == "" || strings.TrimSpace(c.password) == "" {
		return Token{}, fmt.Errorf("%w: missing credentials", fitness.ErrUnauthorized)
	}

	var out loginResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/oauth-service/login", nil,
		map[string]string{
			"email":    c.email,
			"password": c.password,
		}, &out)
	if err != nil {
		return Token{}, wrapRemoteErr("login", err)
	}

	if strings.TrimSpace(out.AccessToken) == "" {
		return Token{}, fmt.Errorf("%w: login response missing access_token", fitness.ErrUpstream)
	}

	tokenType := strings.TrimSpace(out.TokenType)
	if tokenType == "" {
		tokenType = "Bearer"
	}
	expiresIn := out.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	return Token{
		AccessToken: out.AccessToken,
		TokenType:   tokenType,
		ExpiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}

// CheckToken hace un GET liviano al perfil para confirmar que el servicio
// todavía acepta el token. No refresca nada.
func (c *Client) CheckToken(ctx context.Context, tok Token) error {
	err := c.http.DoJSON(ctx, http.MethodGet, "/userprofile-service/socialProfile",
		authHeader(tok), nil, nil)
	if err != nil {
		return wrapRemoteErr("check token", err)
	}
	return nil
}

type uploadRequest struct {
	DateTimestamp    string   `json:"dateTimestamp"`
	UnitKey          string   `json:"unitKey"`
	Weight           float64  `json:"weight"`
	BodyFat          float64  `json:"bodyFat"`
	BMI              *float64 `json:"bmi,omitempty"`
	MuscleMass       *float64 `json:"muscleMass,omitempty"`
	PercentHydration *float64 `json:"percentHydration,omitempty"`
}

type uploadResponse struct {
	ID string `json:"id"`
}

// UploadBodyComposition sube la medición con el token dado.
// Devuelve el id remoto si el servicio lo informa.
func (c *Client) UploadBodyComposition(ctx context.Context, tok Token, bc fitness.BodyComposition) (string, error) {
	req := uploadRequest{
		DateTimestamp:    bc.Date.Format("2006-01-02") + "T00:00:00.0",
		UnitKey:          "kg",
		Weight:           bc.Weight,
		BodyFat:          bc.PercentFat,
		BMI:              bc.BMI,
		MuscleMass:       bc.MuscleMass,
		PercentHydration: bc.PercentHydration,
	}

	var out uploadResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/weight-service/user-weight",
		authHeader(tok), req, &out)
	if err != nil {
		return "", wrapRemoteErr("upload body composition", err)
	}
	return strings.TrimSpace(out.ID), nil
}

func authHeader(tok Token) map[string]string {
	return map[string]string{
		"Authorization": tok.TokenType + " " + tok.AccessToken,
	}
}

// wrapRemoteErr traduce el error crudo a la taxonomía de ports/fitness.
func wrapRemoteErr(op string, err error) error {
	if st, ok := httpclient.StatusOf(err); ok {
		switch {
		case st == http.StatusUnauthorized || st == http.StatusForbidden:
			return fmt.Errorf("%w: garmin %s: %v", fitness.ErrUnauthorized, op, err)
		case st == http.StatusTooManyRequests:
			return fmt.Errorf("%w: garmin %s: %v", fitness.ErrRateLimited, op, err)
		default:
			return fmt.Errorf("%w: garmin %s: %v", fitness.ErrUpstream, op, err)
		}
	}
	// Sin respuesta HTTP: red caída, DNS, timeout.
	return fmt.Errorf("%w: garmin %s: %v", fitness.ErrUnavailable, op, err)
}
