// Package session maneja la cookie firmada del navegador.
// Solo guarda un memo de la última subida exitosa para mostrarlo en el form;
// nunca gatea ninguna llamada (el API acepta requests sin cookie).
package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	cookieName = "bodycomp_session"
	defaultTTL = 30 * 24 * time.Hour
)

// Memo es lo que recordamos de la última subida.
type Memo struct {
	ReferenceID string  `json:"ref"`
	Date        string  `json:"date"`
	Weight      float64 `json:"weight"`
}

type memoClaims struct {
	Memo Memo `json:"memo"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	// true solo detrás de TLS; en la LAN de la balanza suele ser http.
	secure bool
}

func NewManager(secret string, secure bool) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("session: empty secret")
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    defaultTTL,
		now:    time.Now,
		secure: secure,
	}, nil
}

// Remember firma el memo y lo deja en la cookie.
func (m *Manager) Remember(w http.ResponseWriter, memo Memo) {
	now := m.now()
	claims := memoClaims{
		Memo: memo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		// Firmar HS256 con secret no-vacío no falla; si pasa, la cookie
		// simplemente no se emite.
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Last devuelve el memo de la cookie si existe y la firma es válida.
// Cookie rota o vencida => (Memo{}, false), nunca error al usuario.
func (m *Manager) Last(r *http.Request) (Memo, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return Memo{}, false
	}

	var claims memoClaims
	tok, err := jwt.ParseWithClaims(c.Value, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return Memo{}, false
	}
	return claims.Memo, true
}
