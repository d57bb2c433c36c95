// Package app wires configuration, logging, the hub, and the HTTP server
// into a runnable process.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	server "grind-and-gain/server"
	servernet "grind-and-gain/server/internal/net"
	"grind-and-gain/server/logging"
	loggingsinks "grind-and-gain/server/logging/sinks"
)

const defaultAddr = ":8080"

// Run starts the server and blocks until it fails or ctx is cancelled.
func Run(ctx context.Context) error {
	logger := log.Default()

	logCfg := logging.DefaultConfig()
	if path := os.Getenv("LOG_JSON_PATH"); path != "" {
		logCfg.JSON.FilePath = path
		if !logCfg.HasSink("json") {
			logCfg.EnabledSinks = append(logCfg.EnabledSinks, "json")
		}
	}

	namedSinks := []logging.NamedSink{
		{Name: "console", Sink: loggingsinks.NewConsole(os.Stdout, logCfg.Console)},
	}
	if logCfg.HasSink("json") && logCfg.JSON.FilePath != "" {
		file, err := os.OpenFile(logCfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open event log %s: %w", logCfg.JSON.FilePath, err)
		}
		defer file.Close()
		namedSinks = append(namedSinks, logging.NamedSink{
			Name: "json",
			Sink: loggingsinks.NewJSON(file, logCfg.JSON.FlushInterval),
		})
	}

	router, err := logging.NewRouter(logCfg, logging.SystemClock{}, namedSinks)
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(context.Background()); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	hubCfg := server.DefaultHubConfig()
	hubCfg.Logger = logger
	if raw := os.Getenv("TICK_RATE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			hubCfg.TickRate = value
		} else {
			logger.Printf("invalid TICK_RATE=%q", raw)
		}
	}
	if raw := os.Getenv("RUN_SEED"); raw != "" {
		hubCfg.Arena.Seed = raw
	}
	if raw := os.Getenv("AUTOPLAY_SKILL"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			hubCfg.AutoplaySkill = value
		} else {
			logger.Printf("invalid AUTOPLAY_SKILL=%q", raw)
		}
	}

	hub := server.NewHub(hubCfg, router)
	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		ClientDir: os.Getenv("CLIENT_DIR"),
		Logger:    logger,
	})

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	logger.Printf("server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
