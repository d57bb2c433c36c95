// Package ws upgrades browser connections and pumps client messages into
// the hub.
package ws

import (
	"log"
	nethttp "net/http"

	"github.com/gorilla/websocket"

	server "grind-and-gain/server"
	"grind-and-gain/server/internal/net/proto"
)

// HandlerConfig carries the optional logger for session diagnostics.
type HandlerConfig struct {
	Logger *log.Logger
}

// Handler coordinates websocket sessions against the hub.
type Handler struct {
	hub      *server.Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a websocket handler.
func NewHandler(hub *server.Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

// Handle upgrades the request, joins a run, sends the join handshake, and
// runs the session read loop until the client disconnects.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed: %v", err)
		return
	}

	session := h.hub.Join(conn)
	defer h.hub.Disconnect(session.ID())

	join, err := proto.EncodeJoin(session.ID(), session.ArenaConfig())
	if err != nil {
		h.logger.Printf("encode join for %s failed: %v", session.ID(), err)
		conn.Close()
		return
	}
	if err := session.WriteMessage(websocket.TextMessage, join); err != nil {
		h.logger.Printf("join write for %s failed: %v", session.ID(), err)
		conn.Close()
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("session %s read failed: %v", session.ID(), err)
			}
			return
		}
		msg, err := proto.DecodeClientMessage(payload)
		if err != nil {
			h.logger.Printf("session %s sent malformed payload: %v", session.ID(), err)
			continue
		}
		h.dispatch(session.ID(), msg)
	}
}

func (h *Handler) dispatch(id string, msg proto.ClientMessage) {
	switch msg.Type {
	case proto.TypeInput:
		h.hub.SetInput(id, msg.Input())
	case proto.TypeUpgrade:
		if msg.Choice != nil {
			h.hub.ApplyUpgrade(id, *msg.Choice)
		}
	case proto.TypeStart, proto.TypePause, proto.TypeResume, proto.TypeEnd:
		h.hub.Control(id, msg.Type)
	case proto.TypeAutoplay:
		h.hub.SetAutoplay(id, msg.Enabled, msg.Skill)
	default:
		h.logger.Printf("session %s sent unknown message type %q", id, msg.Type)
	}
}
