// Package net assembles the HTTP surface: the websocket endpoint, a health
// probe, and the static browser client.
package net

import (
	"log"
	"net/http"

	server "grind-and-gain/server"
	"grind-and-gain/server/internal/net/ws"
)

// HTTPHandlerConfig carries the optional static client directory and logger.
type HTTPHandlerConfig struct {
	// ClientDir, when non-empty, is served at the root path.
	ClientDir string
	Logger    *log.Logger
}

// NewHTTPHandler builds the server's HTTP mux.
func NewHTTPHandler(hub *server.Hub, cfg HTTPHandlerConfig) http.Handler {
	mux := http.NewServeMux()

	wsHandler := ws.NewHandler(hub, ws.HandlerConfig{Logger: cfg.Logger})
	mux.HandleFunc("/ws", wsHandler.Handle)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if cfg.ClientDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.ClientDir)))
	}

	return mux
}
