package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"streamdash/config"
	"streamdash/handlers"
	"streamdash/services/catalog"
	"streamdash/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	setupLogging(cfg)

	catalogSvc := catalog.NewService(cfg.TMDBAPIKey, cfg.TMDBBaseURL, nil)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc)

	router := utils.NewRouter()
	router.HandleFunc("/api/search", catalogHandler.Search).
		Methods(http.MethodGet, http.MethodOptions)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	log.Printf("[main] listening on %s", cfg.Addr())
	log.Fatal(server.ListenAndServe())
}

// setupLogging mirrors log output into a rotated file when LOG_FILE is set.
func setupLogging(cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}
	rotated := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogBackups,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotated))
}
