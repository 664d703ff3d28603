package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"

	"github.com/patilpriyadarshini/migration-repo-sub001/api"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/auth"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/client"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/config"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/console"
	"github.com/patilpriyadarshini/migration-repo-sub001/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		return
	}

	if err := logging.Init(cfg.LogLevel, cfg.AppEnv, cfg.LogDir); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		return
	}

	logging.Logger.Info("application starting...")

	sessions := auth.NewSessionStore([]byte(cfg.SessionSecret), cfg.AppEnv == "production")
	backend := client.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	service := console.New(backend)
	frontEnd := api.NewApi(service, sessions)

	corsConf := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", api.HEADER_REQUEST_ID},
		ExposedHeaders:   []string{api.HEADER_REQUEST_ID},
		AllowCredentials: true,
	})

	handler := frontEnd.Handler()
	handler = corsConf.Handler(handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(logging.Logger))(handler)
	handler = handlers.LoggingHandler(logging.AccessLog(), handler)

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Starting server on port %s, CardDemo API at %s", cfg.AppPort, cfg.APIBaseURL)
	if err := server.ListenAndServe(); err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return
	}
}
