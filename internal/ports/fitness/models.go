package fitness

import "time"

// BodyComposition es el punto de datos ya validado que se sube al servicio remoto.
type BodyComposition struct {
	// Día de la medición. Solo cuenta la fecha; la hora la ignora el servicio.
	Date time.Time

	Weight     float64 // kg
	PercentFat float64

	// Opcionales: nil = no enviar.
	BMI              *float64
	MuscleMass       *float64 // kg
	PercentHydration *float64 // %
}

// UploadReceipt describe el resultado de una subida exitosa.
type UploadReceipt struct {
	// ID que devuelve el servicio remoto (puede venir vacío).
	RemoteID string

	// true si esta subida necesitó un (re)login completo.
	Relogin bool
}
