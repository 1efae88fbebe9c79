package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"bodycomp-sync/internal/platform/logger"
	"bodycomp-sync/internal/ports/fitness"
)

// connectAPI es lo que el uploader necesita del cliente HTTP.
// Interface chica para poder fakear en tests sin levantar servidores.
type connectAPI interface {
	Login(ctx context.Context) (Token, error)
	CheckToken(ctx context.Context, tok Token) error
	UploadBodyComposition(ctx context.Context, tok Token, bc fitness.BodyComposition) (string, error)
}

// SessionUploader implementa fitness.Uploader manejando el ciclo de sesión:
//
//	{sin sesión} -> [login] -> {sesión activa} -> [token rechazado] -> {sin sesión}
//
// Por subida hay a lo sumo UN re-login; si el servicio rechaza también el
// token fresco, el error de auth sube tal cual.
type SessionUploader struct {
	api   connectAPI
	store fitness.TokenStore
	log   logger.Logger
	now   func() time.Time

	// El mutex protege solo el token en memoria. El archivo no se lockea
	// (un solo proceso, un solo usuario; ver FileStore).
	mu      sync.Mutex
	tok     Token
	checked bool // true si el servicio ya aceptó este token
}

func NewSessionUploader(api connectAPI, store fitness.TokenStore, log logger.Logger) *SessionUploader {
	return &SessionUploader{
		api:   api,
		store: store,
		log:   log,
		now:   time.Now,
	}
}

func (u *SessionUploader) UploadBodyComposition(ctx context.Context, bc fitness.BodyComposition) (fitness.UploadReceipt, error) {
	tok, relogin, err := u.session(ctx)
	if err != nil {
		return fitness.UploadReceipt{}, err
	}

	remoteID, err := u.api.UploadBodyComposition(ctx, tok, bc)
	if err == nil {
		return fitness.UploadReceipt{RemoteID: remoteID, Relogin: relogin}, nil
	}
	if !errors.Is(err, fitness.ErrUnauthorized) || relogin {
		// Ya gastamos el re-login de esta subida, o el error no es de auth.
		return fitness.UploadReceipt{}, err
	}

	// El token cacheado pasó el chequeo local pero la subida dio 401:
	// lo descartamos y reintentamos exactamente una vez con login completo.
	u.log.Warn("cached token rejected on upload, re-logging in", nil)
	u.forget()

	tok, err = u.login(ctx)
	if err != nil {
		return fitness.UploadReceipt{}, err
	}

	remoteID, err = u.api.UploadBodyComposition(ctx, tok, bc)
	if err != nil {
		return fitness.UploadReceipt{}, err
	}
	return fitness.UploadReceipt{RemoteID: remoteID, Relogin: true}, nil
}

// session devuelve un token usable. relogin=true si hizo login completo.
func (u *SessionUploader) session(ctx context.Context) (Token, bool, error) {
	u.mu.Lock()
	tok, checked := u.tok, u.checked
	u.mu.Unlock()

	if tok.Usable(u.now()) && checked {
		return tok, false, nil
	}

	// Token del disco: si existe y no venció, un chequeo liviano contra el
	// servicio alcanza para reusarlo sin login.
	if raw, err := u.store.Load(ctx); err == nil {
		var cached Token
		if jerr := json.Unmarshal(raw, &cached); jerr != nil {
			u.log.Warn("cached token unreadable, discarding", map[string]any{"err": jerr.Error()})
			_ = u.store.Clear(ctx)
		} else if cached.Usable(u.now()) {
			if cerr := u.api.CheckToken(ctx, cached); cerr == nil {
				u.remember(cached)
				return cached, false, nil
			} else if !errors.Is(cerr, fitness.ErrUnauthorized) {
				// Red caída durante el chequeo: no tiene sentido intentar
				// login contra el mismo servicio.
				return Token{}, false, cerr
			}
			u.log.Info("cached token no longer accepted", nil)
		}
	} else if !errors.Is(err, fitness.ErrNoToken) {
		return Token{}, false, fmt.Errorf("load cached token: %w", err)
	}

	tok, err := u.login(ctx)
	if err != nil {
		return Token{}, false, err
	}
	return tok, true, nil
}

// login hace el login completo y persiste el token nuevo antes de devolverlo.
func (u *SessionUploader) login(ctx context.Context) (Token, error) {
	u.log.Info("logging in to garmin connect", nil)

	tok, err := u.api.Login(ctx)
	if err != nil {
		return Token{}, err
	}

	raw, err := json.Marshal(tok)
	if err != nil {
		return Token{}, fmt.Errorf("marshal token: %w", err)
	}
	if err := u.store.Save(ctx, raw); err != nil {
		// El login salió bien; perder la persistencia no debe tirar la
		// subida, solo obliga a re-loguear en el próximo arranque.
		u.log.Warn("could not persist session token", map[string]any{"err": err.Error()})
	}

	u.remember(tok)
	return tok, nil
}

func (u *SessionUploader) remember(tok Token) {
	u.mu.Lock()
	u.tok = tok
	u.checked = true
	u.mu.Unlock()
}

func (u *SessionUploader) forget() {
	u.mu.Lock()
	u.tok = Token{}
	u.checked = false
	u.mu.Unlock()
}
