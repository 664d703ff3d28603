// Command carddemo-stub serves the CardDemo REST API from seeded in-memory
// data for local development.
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/config"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/storage"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/stubapi"
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

	store := storage.NewInMemoryStorage()
	if err := storage.Seed(store); err != nil {
		logging.Logger.Errorf("failed to seed demo data: %v", err)
		return
	}

	handler := handlers.LoggingHandler(logging.AccessLog(), stubapi.NewStubApi(store).Handler())
	server := &http.Server{
		Addr:              ":" + cfg.StubPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Starting CardDemo stub on port %s (%s storage)", cfg.StubPort, store.GetStorageType())
	if err := server.ListenAndServe(); err != nil {
		logging.Logger.Errorf("failed to start stub server: %v", err)
	}
}
