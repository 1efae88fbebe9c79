package measurements

import "time"

// Measurement es el punto de datos de composición corporal que cargó el
// usuario. Es transitorio: no se persiste localmente, solo viaja al
// servicio remoto.
type Measurement struct {
	Date time.Time

	Weight  float64 // kg
	BodyFat float64 // %

	// Opcionales: nil = el usuario no los cargó.
	BMI        *float64
	MuscleMass *float64 // kg
	BodyWater  *float64 // %
}

// Confirmation es lo que se devuelve al navegador tras una subida exitosa.
type Confirmation struct {
	// ID local para correlacionar respuesta y logs.
	ReferenceID string

	// ID remoto, si el servicio lo informó.
	RemoteID string

	Date       string
	Weight     float64
	BodyFat    float64
	BMI        *float64
	MuscleMass *float64
	BodyWater  *float64
}
