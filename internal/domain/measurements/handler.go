package measurements

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"bodycomp-sync/internal/ports/fitness"
	"bodycomp-sync/internal/session"
)

func RegisterRoutes(r chi.Router, svc *Service, sessions *session.Manager) {
	r.Post("/submit", submitHandler(svc, sessions))
}

type submitRequest struct {
	// Punteros para distinguir "no vino" de 0.
	Weight     *float64 `json:"weight"`
	BMI        *float64 `json:"bmi"`
	BodyFat    *float64 `json:"bodyFat"`
	MuscleMass *float64 `json:"muscleMass"`
	BodyWater  *float64 `json:"bodyWater"`
	Date       string   `json:"date"` // YYYY-MM-DD opcional
}

type submitData struct {
	ReferenceID string   `json:"referenceId"`
	RemoteID    string   `json:"remoteId,omitempty"`
	Date        string   `json:"date"`
	Weight      float64  `json:"weight"`
	BMI         *float64 `json:"bmi,omitempty"`
	BodyFat     float64  `json:"bodyFat"`
	MuscleMass  *float64 `json:"muscleMass,omitempty"`
	BodyWater   *float64 `json:"bodyWater,omitempty"`
}

type submitResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    *submitData `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// submitHandler godoc
// @Summary      Sube una medición de composición corporal a Garmin Connect
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request  body  submitRequest  true  "Medición"
// @Success      200  {object}  submitResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /submit [post]
func submitHandler(svc *Service, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeSubmit(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		// Requeridos: rebotar acá, antes de tocar el servicio.
		if req.Weight == nil {
			writeError(w, http.StatusBadRequest, "weight is required")
			return
		}
		if req.BodyFat == nil {
			writeError(w, http.StatusBadRequest, "bodyFat is required")
			return
		}

		conf, err := svc.Submit(r.Context(), SubmitInput{
			Weight:     *req.Weight,
			BMI:        req.BMI,
			BodyFat:    *req.BodyFat,
			MuscleMass: req.MuscleMass,
			BodyWater:  req.BodyWater,
			Date:       strings.TrimSpace(req.Date),
		})
		if err != nil {
			writeError(w, statusFor(err), userMessage(err))
			return
		}

		sessions.Remember(w, session.Memo{
			ReferenceID: conf.ReferenceID,
			Date:        conf.Date,
			Weight:      conf.Weight,
		})

		writeJSON(w, http.StatusOK, submitResponse{
			Success: true,
			Message: "body composition submitted",
			Data: &submitData{
				ReferenceID: conf.ReferenceID,
				RemoteID:    conf.RemoteID,
				Date:        conf.Date,
				Weight:      conf.Weight,
				BMI:         conf.BMI,
				BodyFat:     conf.BodyFat,
				MuscleMass:  conf.MuscleMass,
				BodyWater:   conf.BodyWater,
			},
		})
	}
}

// decodeSubmit acepta JSON o form-encoded (el form HTML manda esto último
// si no hay JS; el fetch del template manda JSON).
func decodeSubmit(r *http.Request) (submitRequest, error) {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return submitRequest{}, errors.New("invalid json")
		}
		req.Date = strings.TrimSpace(req.Date)
		return req, nil
	}
	return decodeSubmitForm(r)
}

func decodeSubmitForm(r *http.Request) (submitRequest, error) {
	if err := r.ParseForm(); err != nil {
		return submitRequest{}, errors.New("invalid form body")
	}

	var req submitRequest
	var err error
	if req.Weight, err = formFloat(r, "weight"); err != nil {
		return submitRequest{}, err
	}
	if req.BMI, err = formFloat(r, "bmi"); err != nil {
		return submitRequest{}, err
	}
	if req.BodyFat, err = formFloat(r, "bodyFat"); err != nil {
		return submitRequest{}, err
	}
	if req.MuscleMass, err = formFloat(r, "muscleMass"); err != nil {
		return submitRequest{}, err
	}
	if req.BodyWater, err = formFloat(r, "bodyWater"); err != nil {
		return submitRequest{}, err
	}
	req.Date = strings.TrimSpace(r.FormValue("date"))
	return req, nil
}

// formFloat devuelve nil si el campo no vino o vino vacío.
func formFloat(r *http.Request, name string) (*float64, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.New(name + " must be a number")
	}
	return &f, nil
}

// statusFor mapea la taxonomía de errores a HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, fitness.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, fitness.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, fitness.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, fitness.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		// El mensaje de validación es apto para el usuario tal cual.
		return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
	case errors.Is(err, fitness.ErrUnauthorized):
		return "authentication failed, please check your credentials"
	case errors.Is(err, fitness.ErrRateLimited):
		return "too many requests, please wait a moment and try again"
	case errors.Is(err, fitness.ErrUnavailable):
		return "could not reach the fitness service, please try again"
	case errors.Is(err, fitness.ErrUpstream):
		return "the fitness service rejected the submission"
	default:
		return "unexpected error"
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
