package fitness

import (
	"context"
	"errors"
)

// ErrNoToken indica que no hay token cacheado.
var ErrNoToken = errors.New("fitness: no cached token")

// TokenStore guarda cero o un token de sesión serializado.
// El contenido es opaco: lo define el adapter del servicio remoto.
// No es un cache con eviction; es exactamente un archivo que se pisa.
type TokenStore interface {
	// Load devuelve el token crudo, o ErrNoToken si no existe.
	Load(ctx context.Context) ([]byte, error)

	// Save persiste el token, pisando cualquier contenido anterior.
	Save(ctx context.Context, raw []byte) error

	// Clear borra el token cacheado (p.ej. si está corrupto).
	Clear(ctx context.Context) error
}
