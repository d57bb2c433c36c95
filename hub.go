// Package server hosts Botnet Defense runs for browser clients. The Hub
// owns every live run, advances them on a fixed-rate tick loop, and
// broadcasts state snapshots to the subscribed websocket sessions.
package server

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"grind-and-gain/server/arena"
	"grind-and-gain/server/autoplay"
	"grind-and-gain/server/internal/net/proto"
	"grind-and-gain/server/logging"
)

// HubConfig captures the toggles used when constructing a hub.
type HubConfig struct {
	// TickRate is the simulation cadence in ticks per second.
	TickRate int
	// Arena is the tuning injected into every run.
	Arena arena.Config
	// AutoplaySkill, when 1-5, pilots every new run automatically.
	// Zero leaves runs under client control.
	AutoplaySkill int
	Logger        *log.Logger
}

// DefaultHubConfig returns the shipped hub settings.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		TickRate: tickRate,
		Arena:    arena.DefaultConfig(),
	}
}

// Session is one subscribed client and its run.
type Session struct {
	id    string
	run   *arena.Arena
	pilot *autoplay.Controller

	conn    *websocket.Conn
	writeMu sync.Mutex
}

// ID returns the run identifier assigned at join.
func (s *Session) ID() string {
	return s.id
}

// ArenaConfig returns the normalized tuning the session's run uses.
func (s *Session) ArenaConfig() arena.Config {
	return s.run.Config()
}

// WriteMessage serializes writes to the session's connection.
func (s *Session) WriteMessage(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn == nil {
		return nil
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

// Hub owns all live runs and their subscribers.
type Hub struct {
	mu       sync.Mutex
	cfg      HubConfig
	sessions map[string]*Session
	nextID   atomic.Uint64
	pub      logging.Publisher
	logger   *log.Logger
}

// NewHub constructs a hub. A nil publisher disables structured logging.
func NewHub(cfg HubConfig, pub logging.Publisher) *Hub {
	if cfg.TickRate <= 0 {
		cfg.TickRate = tickRate
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if pub == nil {
		pub = logging.NopPublisher()
	}
	return &Hub{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		pub:      pub,
		logger:   cfg.Logger,
	}
}

// Join creates a new run, starts it, and registers the connection as its
// subscriber. The returned session is already live.
func (h *Hub) Join(conn *websocket.Conn) *Session {
	id := fmt.Sprintf("run-%d", h.nextID.Add(1))
	run := arena.New(id, h.cfg.Arena, h.pub)

	session := &Session{id: id, run: run, conn: conn}
	if h.cfg.AutoplaySkill >= autoplay.MinSkill {
		session.pilot = autoplay.New(run, h.cfg.AutoplaySkill, nil)
	}

	h.mu.Lock()
	h.sessions[id] = session
	run.Start()
	h.mu.Unlock()

	h.logger.Printf("session %s joined", id)
	return session
}

// Disconnect ends and removes the identified run. Unknown ids are ignored.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	session, ok := h.sessions[id]
	if ok {
		session.run.End()
		delete(h.sessions, id)
	}
	h.mu.Unlock()
	if ok {
		h.logger.Printf("session %s disconnected", id)
	}
}

// SessionCount reports the number of live runs.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// SetInput overwrites the directional intent of the identified run.
func (h *Hub) SetInput(id string, input arena.Input) {
	h.withSession(id, func(s *Session) {
		s.run.SetInput(input)
	})
}

// ApplyUpgrade consumes a pending upgrade choice on the identified run.
func (h *Hub) ApplyUpgrade(id string, choice int) {
	h.withSession(id, func(s *Session) {
		s.run.ApplyUpgrade(choice)
	})
}

// Control dispatches a lifecycle action on the identified run. Unknown
// actions are ignored.
func (h *Hub) Control(id, action string) {
	h.withSession(id, func(s *Session) {
		switch action {
		case "start":
			s.run.Start()
		case "pause":
			s.run.Pause()
		case "resume":
			s.run.Resume()
		case "end":
			s.run.End()
		}
	})
}

// SetAutoplay attaches or detaches the autoplay pilot for a run.
func (h *Hub) SetAutoplay(id string, enabled bool, skill int) {
	h.withSession(id, func(s *Session) {
		if !enabled {
			s.pilot = nil
			return
		}
		s.pilot = autoplay.New(s.run, skill, nil)
	})
}

func (h *Hub) withSession(id string, fn func(*Session)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if session, ok := h.sessions[id]; ok {
		fn(session)
	}
}

// RunSimulation drives every live run at the configured tick rate until
// stop closes. Broadcast payloads are encoded under the hub lock but
// written outside it so a slow client cannot stall the tick.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	interval := time.Second / time.Duration(h.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			deltaMs := float64(now.Sub(last).Milliseconds())
			last = now
			h.tick(deltaMs)
		}
	}
}

type outboundFrame struct {
	session *Session
	data    []byte
}

// tick advances every run once by deltaMs and broadcasts the resulting
// state frames.
func (h *Hub) tick(deltaMs float64) {
	frames := h.advance(deltaMs)
	for _, frame := range frames {
		if err := frame.session.WriteMessage(websocket.TextMessage, frame.data); err != nil {
			h.logger.Printf("broadcast to %s failed: %v", frame.session.id, err)
			h.Disconnect(frame.session.id)
		}
	}
}

func (h *Hub) advance(deltaMs float64) []outboundFrame {
	h.mu.Lock()
	defer h.mu.Unlock()

	frames := make([]outboundFrame, 0, len(h.sessions))
	for _, session := range h.sessions {
		if session.pilot != nil {
			session.pilot.Step(deltaMs)
		}
		session.run.Update(deltaMs)

		data, err := proto.EncodeState(session.id, session.run.Snapshot(), session.run.DrainEvents())
		if err != nil {
			h.logger.Printf("encode state for %s failed: %v", session.id, err)
			continue
		}
		if session.conn == nil {
			continue
		}
		frames = append(frames, outboundFrame{session: session, data: data})
	}
	return frames
}
