package fitness

import (
	"context"
	"errors"
)

// Taxonomía de errores del lado remoto. Los adapters envuelven con %w
// y los handlers deciden el status con errors.Is, sin conocer el adapter.
var (
	// Credenciales rechazadas, o token vencido sin re-login posible.
	ErrUnauthorized = errors.New("fitness: unauthorized")

	// El servicio remoto pidió bajar el ritmo (HTTP 429).
	ErrRateLimited = errors.New("fitness: rate limited")

	// No se pudo llegar al servicio (red caída, timeout).
	ErrUnavailable = errors.New("fitness: service unavailable")

	// El servicio respondió, pero con un error que no es de auth ni de rate.
	ErrUpstream = errors.New("fitness: upstream error")
)

// Uploader sube una composición corporal al servicio remoto, manejando
// sesión/login por debajo. A lo sumo un re-login por subida.
type Uploader interface {
	UploadBodyComposition(ctx context.Context, bc BodyComposition) (UploadReceipt, error)
}
