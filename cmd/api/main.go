package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bodycomp-sync/internal/adapters/fitness/garmin"
	"bodycomp-sync/internal/adapters/tokenstore"
	"bodycomp-sync/internal/config"
	"bodycomp-sync/internal/platform/logger"
	"bodycomp-sync/internal/router"
	"bodycomp-sync/internal/session"
)

// @title        bodycomp-sync API
// @version      1.0
// @description  Puente mínimo: formulario web de composición corporal hacia Garmin Connect.
// @BasePath     /
func main() {
	// .env opcional para dev; en deploy las vars vienen del entorno.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	// Config inválida = no arrancamos a servir. Fatal acá y en ningún
	// otro lado: después de este punto la config es inmutable.
	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	store, err := tokenstore.NewFileStore(cfg.TokenPath)
	if err != nil {
		log.Error("token store error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	client, err := garmin.NewClient(garmin.Config{
		BaseURL:  cfg.ConnectBaseURL,
		Email:    cfg.Email,
		Password: cfg.Password,
		Timeout:  cfg.ConnectTimeout,
	})
	if err != nil {
		log.Error("garmin client error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	sessions, err := session.NewManager(cfg.SessionSecret, cfg.CookieSecure)
	if err != nil {
		log.Error("session manager error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	uploader := garmin.NewSessionUploader(client, store, log)

	r := router.NewRouter(router.Options{
		Uploader:       uploader,
		Sessions:       sessions,
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// Un submit puede costar login + subida contra el servicio remoto.
		WriteTimeout: 2*cfg.ConnectTimeout + 10*time.Second,
	}

	log.Info("starting server", map[string]any{
		"addr":       cfg.Addr(),
		"token_path": store.Path(),
	})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
