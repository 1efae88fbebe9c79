package measurements

import (
	"context"
	"errors"
	"testing"
	"time"

	"bodycomp-sync/internal/platform/logger"
	"bodycomp-sync/internal/ports/fitness"
)

type fakeUploader struct {
	calls int
	last  fitness.BodyComposition
	err   error
}

func (f *fakeUploader) UploadBodyComposition(_ context.Context, bc fitness.BodyComposition) (fitness.UploadReceipt, error) {
	f.calls++
	f.last = bc
	if f.err != nil {
		return fitness.UploadReceipt{}, f.err
	}
	return fitness.UploadReceipt{RemoteID: "rw-9"}, nil
}

func newTestService(up fitness.Uploader) *Service {
	s := NewService(up, logger.New(logger.Options{Level: logger.Error}))
	s.now = func() time.Time { return time.Date(2026, 8, 24, 15, 0, 0, 0, time.UTC) }
	return s
}

func fp(f float64) *float64 { return &f }

func TestSubmit_Valid(t *testing.T) {
	up := &fakeUploader{}
	svc := newTestService(up)

	// Solo los requeridos: weight y bodyFat.
	conf, err := svc.Submit(context.Background(), SubmitInput{
		Weight:  70.2,
		BodyFat: 18.5,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if up.calls != 1 {
		t.Fatalf("expected exactly one upload, got %d", up.calls)
	}
	// Sin fecha explícita => el día de hoy.
	if conf.Date != "2026-08-24" {
		t.Errorf("date: got %q", conf.Date)
	}
	if conf.Weight != 70.2 || conf.BodyFat != 18.5 {
		t.Errorf("confirmation values: %+v", conf)
	}
	if conf.BMI != nil {
		t.Errorf("bmi should be absent, got %v", *conf.BMI)
	}
	if conf.ReferenceID == "" {
		t.Error("expected a reference id")
	}
	if conf.RemoteID != "rw-9" {
		t.Errorf("remote id: got %q", conf.RemoteID)
	}
	if up.last.PercentFat != 18.5 {
		t.Errorf("uploaded percent fat: got %v", up.last.PercentFat)
	}
}

func TestSubmit_ExplicitDateAndOptionals(t *testing.T) {
	up := &fakeUploader{}
	svc := newTestService(up)

	conf, err := svc.Submit(context.Background(), SubmitInput{
		Weight:     70.2,
		BodyFat:    18.5,
		BMI:        fp(22.1),
		MuscleMass: fp(55.0),
		BodyWater:  fp(52.3),
		Date:       "2026-08-20",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if conf.Date != "2026-08-20" {
		t.Errorf("date: got %q", conf.Date)
	}
	if up.last.BMI == nil || *up.last.BMI != 22.1 {
		t.Errorf("bmi not forwarded: %+v", up.last.BMI)
	}
	if up.last.MuscleMass == nil || *up.last.MuscleMass != 55.0 {
		t.Errorf("muscle mass not forwarded: %+v", up.last.MuscleMass)
	}
	if up.last.PercentHydration == nil || *up.last.PercentHydration != 52.3 {
		t.Errorf("body water not forwarded: %+v", up.last.PercentHydration)
	}
}

func TestSubmit_ValidationNeverCallsUploader(t *testing.T) {
	cases := []struct {
		name string
		in   SubmitInput
	}{
		{"peso negativo", SubmitInput{Weight: -5, BodyFat: 18}},
		{"peso bajo", SubmitInput{Weight: 20, BodyFat: 18}},
		{"peso alto", SubmitInput{Weight: 400, BodyFat: 18}},
		{"bmi fuera de rango", SubmitInput{Weight: 70, BodyFat: 18, BMI: fp(70)}},
		{"grasa fuera de rango", SubmitInput{Weight: 70, BodyFat: 1}},
		{"músculo fuera de rango", SubmitInput{Weight: 70, BodyFat: 18, MuscleMass: fp(5)}},
		{"agua fuera de rango", SubmitInput{Weight: 70, BodyFat: 18, BodyWater: fp(95)}},
		{"fecha ilegible", SubmitInput{Weight: 70, BodyFat: 18, Date: "24/08/2026"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			up := &fakeUploader{}
			svc := newTestService(up)

			_, err := svc.Submit(context.Background(), tc.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			// La validación corta antes de cualquier llamada externa.
			if up.calls != 0 {
				t.Fatalf("uploader should not be called, got %d calls", up.calls)
			}
		})
	}
}

func TestSubmit_UploaderErrorPropagates(t *testing.T) {
	up := &fakeUploader{err: fitness.ErrUnauthorized}
	svc := newTestService(up)

	_, err := svc.Submit(context.Background(), SubmitInput{Weight: 70, BodyFat: 18})
	if !errors.Is(err, fitness.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
