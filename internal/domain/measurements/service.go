package measurements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bodycomp-sync/internal/platform/logger"
	"bodycomp-sync/internal/ports/fitness"
)

var ErrInvalidInput = errors.New("invalid input")

// Rangos fisiológicos plausibles. Afuera de esto es casi seguro un dedazo
// en el form, mejor rebotar antes de llamar al servicio.
const (
	minWeight, maxWeight       = 30.0, 300.0
	minBMI, maxBMI             = 10.0, 60.0
	minBodyFat, maxBodyFat     = 3.0, 60.0
	minMuscle, maxMuscle       = 10.0, 100.0
	minBodyWater, maxBodyWater = 30.0, 80.0
)

type Service struct {
	uploader fitness.Uploader
	log      logger.Logger
	now      func() time.Time
}

func NewService(uploader fitness.Uploader, log logger.Logger) *Service {
	return &Service{
		uploader: uploader,
		log:      log,
		now:      time.Now,
	}
}

type SubmitInput struct {
	Weight  float64
	BodyFat float64

	BMI        *float64
	MuscleMass *float64
	BodyWater  *float64

	// YYYY-MM-DD. Vacío = hoy.
	Date string
}

// Submit valida y sube la medición. La validación corta ANTES de cualquier
// llamada externa; un input inválido jamás toca la red.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Confirmation, error) {
	m, err := s.validate(in)
	if err != nil {
		return Confirmation{}, err
	}

	ref := uuid.NewString()
	log := s.log.With(map[string]any{"ref": ref})

	log.Info("submitting body composition", map[string]any{
		"date":     m.Date.Format("2006-01-02"),
		"weight":   m.Weight,
		"body_fat": m.BodyFat,
	})

	receipt, err := s.uploader.UploadBodyComposition(ctx, fitness.BodyComposition{
		Date:             m.Date,
		Weight:           m.Weight,
		BMI:              m.BMI,
		PercentFat:       m.BodyFat,
		MuscleMass:       m.MuscleMass,
		PercentHydration: m.BodyWater,
	})
	if err != nil {
		log.Error("upload failed", map[string]any{"err": err.Error()})
		return Confirmation{}, err
	}

	log.Info("body composition submitted", map[string]any{
		"remote_id": receipt.RemoteID,
		"relogin":   receipt.Relogin,
	})

	return Confirmation{
		ReferenceID: ref,
		RemoteID:    receipt.RemoteID,
		Date:        m.Date.Format("2006-01-02"),
		Weight:      m.Weight,
		BMI:         m.BMI,
		BodyFat:     m.BodyFat,
		MuscleMass:  m.MuscleMass,
		BodyWater:   m.BodyWater,
	}, nil
}

func (s *Service) validate(in SubmitInput) (Measurement, error) {
	if in.Weight < minWeight || in.Weight > maxWeight {
		return Measurement{}, fmt.Errorf("%w: weight must be between 30 and 300 kg", ErrInvalidInput)
	}
	if in.BMI != nil && (*in.BMI < minBMI || *in.BMI > maxBMI) {
		return Measurement{}, fmt.Errorf("%w: bmi must be between 10 and 60", ErrInvalidInput)
	}
	if in.BodyFat < minBodyFat || in.BodyFat > maxBodyFat {
		return Measurement{}, fmt.Errorf("%w: body fat percentage must be between 3 and 60", ErrInvalidInput)
	}
	if in.MuscleMass != nil && (*in.MuscleMass < minMuscle || *in.MuscleMass > maxMuscle) {
		return Measurement{}, fmt.Errorf("%w: muscle mass must be between 10 and 100 kg", ErrInvalidInput)
	}
	if in.BodyWater != nil && (*in.BodyWater < minBodyWater || *in.BodyWater > maxBodyWater) {
		return Measurement{}, fmt.Errorf("%w: body water percentage must be between 30 and 80", ErrInvalidInput)
	}

	date := s.now()
	if in.Date != "" {
		t, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return Measurement{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		date = t
	}

	return Measurement{
		Date:       date,
		Weight:     in.Weight,
		BodyFat:    in.BodyFat,
		BMI:        in.BMI,
		MuscleMass: in.MuscleMass,
		BodyWater:  in.BodyWater,
	}, nil
}
