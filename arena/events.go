package arena

import "fmt"

// EventKind tags a notification produced by Update.
type EventKind uint8

const (
	// EventWeaponFired is emitted every time an owned weapon fires.
	EventWeaponFired EventKind = iota
	// EventEnemyKilled is emitted when an enemy's HP reaches zero.
	EventEnemyKilled
	// EventPlayerHit is emitted when contact damage lands on the player.
	EventPlayerHit
	// EventRunEnded is emitted exactly once when the run terminates.
	EventRunEnded
)

func (k EventKind) String() string {
	switch k {
	case EventWeaponFired:
		return "weapon-fired"
	case EventEnemyKilled:
		return "enemy-killed"
	case EventPlayerHit:
		return "player-hit"
	case EventRunEnded:
		return "run-ended"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// MarshalText renders the kind as its wire name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is one entry of the outbound notification queue. Update appends
// events; the host drains them after each call and feeds its rendering and
// audio layers. Only the fields relevant to Kind are populated.
type Event struct {
	Kind      EventKind   `json:"kind"`
	Tick      uint64      `json:"tick"`
	Pos       Vec         `json:"pos"`
	Weapon    WeaponKind  `json:"weapon,omitempty"`
	Archetype ArchetypeID `json:"archetype,omitempty"`
	XPValue   int         `json:"xpValue,omitempty"`
	HP        int         `json:"hp,omitempty"`
	Score     int         `json:"score,omitempty"`
	Money     int         `json:"money,omitempty"`
}

// DrainEvents returns every event emitted since the previous drain and
// clears the queue.
func (a *Arena) DrainEvents() []Event {
	if len(a.events) == 0 {
		return nil
	}
	drained := a.events
	a.events = nil
	return drained
}

func (a *Arena) pushEvent(event Event) {
	event.Tick = a.tick
	a.events = append(a.events, event)
}
