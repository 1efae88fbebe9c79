package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "bodycomp-sync/docs" // registro del spec generado por swag

	"bodycomp-sync/internal/domain/measurements"
	"bodycomp-sync/internal/middleware"
	"bodycomp-sync/internal/platform/logger"
	"bodycomp-sync/internal/ports/fitness"
	"bodycomp-sync/internal/session"
	"bodycomp-sync/internal/web"
)

type Options struct {
	// Uploader autenticado contra el servicio remoto. En tests se pasa un fake.
	Uploader fitness.Uploader

	Sessions *session.Manager
	Log      logger.Logger

	AllowedOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", healthHandler())

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	svc := measurements.NewService(opts.Uploader, log)

	web.RegisterRoutes(r, opts.Sessions, log)
	measurements.RegisterRoutes(r, svc, opts.Sessions)

	return r
}

// healthHandler es el liveness para el deploy. Nunca toca el servicio
// remoto: un health check no tiene por qué gastar login ni red.
//
// @Summary  Liveness del proceso
// @Produce  plain
// @Success  200 {string} string "ok"
// @Router   /health [get]
func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
