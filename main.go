package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"lockin/backend"
	"lockin/config"
	"lockin/handler"
	"lockin/logging"
	"lockin/manager"
)

var version = "dev"

func main() {
	config.ParseArgs()
	if config.CliArgs.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	log := logging.GetLogger()
	if err := config.LoadDotEnv(config.CliArgs.EnvFile); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}
	cfg, err := config.LoadConfig(config.CliArgs.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if config.CliArgs.Debug {
		logging.InitLogger(logrus.DebugLevel, cfg.LogFile)
	} else {
		logging.InitLogger(logrus.InfoLevel, cfg.LogFile)
	}

	client := backend.NewBackendClient(
		cfg.Upstream.APIRoot,
		cfg.Upstream.Model,
		cfg.GeminiAPIKey,
		backend.GenerationConfig{
			Temperature:     cfg.Generation.Temperature,
			TopK:            cfg.Generation.TopK,
			TopP:            cfg.Generation.TopP,
			MaxOutputTokens: cfg.Generation.MaxOutputTokens,
		},
		cfg.Upstream.Timeout,
	)

	monitor := manager.NewTrafficMonitor()
	reporter, err := monitor.StartReporting(cfg.StatsSchedule)
	if err != nil {
		log.Fatalf("Failed to start traffic reporter: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddress(),
		Handler:           handler.NewRouter(cfg, client, monitor),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("LockIn List server running on port %d", cfg.Port)
		log.Infof("App available at: http://localhost:%d", cfg.Port)
		if cfg.HasAPIKey() {
			log.Infoln("API key configured: yes")
		} else {
			log.Warnln("API key configured: no - set GEMINI_API_KEY in the environment or .env file")
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	log.Infoln("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}

	<-reporter.Stop().Done()
	monitor.LogMetrics()
}
