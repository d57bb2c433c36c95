package arena

import (
	"fmt"

	"grind-and-gain/server/logging"
)

// WeaponKind is the closed set of weapon behaviors. Adding a kind means
// extending every switch that dispatches on it.
type WeaponKind uint8

const (
	// WeaponDirectional fires a single shot along the player's facing.
	WeaponDirectional WeaponKind = iota
	// WeaponOrbital keeps a ring of piercing orbs circling the player.
	WeaponOrbital
	// WeaponRing emits an expanding piercing shockwave around the player.
	WeaponRing
	// WeaponHoming fires a shot that steers toward the nearest enemy.
	WeaponHoming

	weaponKindCount
)

func (k WeaponKind) String() string {
	switch k {
	case WeaponDirectional:
		return "directional"
	case WeaponOrbital:
		return "orbital"
	case WeaponRing:
		return "ring"
	case WeaponHoming:
		return "homing"
	default:
		return fmt.Sprintf("weapon(%d)", uint8(k))
	}
}

// MarshalText renders the kind as its wire name.
func (k WeaponKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// pierces reports whether projectiles of this kind survive hits and damage
// every overlapping enemy each tick.
func (k WeaponKind) pierces() bool {
	return k == WeaponOrbital || k == WeaponRing
}

// displayName is the designer-facing label used in upgrade choices.
func (k WeaponKind) displayName() string {
	switch k {
	case WeaponDirectional:
		return "Packet Blaster"
	case WeaponOrbital:
		return "Firewall Orbs"
	case WeaponRing:
		return "Pulse Scanner"
	case WeaponHoming:
		return "Tracer Daemon"
	default:
		return k.String()
	}
}

// Input is the directional intent pushed by the host's input layer. Setting
// it overwrites the previous intent wholesale.
type Input struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Up    bool `json:"up"`
	Down  bool `json:"down"`
}

// Player is the single player-controlled entity. It is created at run start
// and mutated in place; death ends the run instead of destroying it.
type Player struct {
	Pos          Vec     `json:"pos"`
	Facing       Vec     `json:"facing"`
	HP           int     `json:"hp"`
	MaxHP        int     `json:"maxHp"`
	MoveSpeed    float64 `json:"moveSpeed"`
	Radius       float64 `json:"radius"`
	PickupRadius float64 `json:"pickupRadius"`
	DamageMult   float64 `json:"damageMult"`
	IFrameMs     float64 `json:"iframeMs"`
}

// Enemy is a spawned hostile. Removal is lazy: Active is cleared and the
// slot is purged by the cleanup pass.
type Enemy struct {
	ID                uint64      `json:"id"`
	Archetype         ArchetypeID `json:"archetype"`
	Pos               Vec         `json:"pos"`
	Radius            float64     `json:"radius"`
	HP                int         `json:"hp"`
	MaxHP             int         `json:"maxHp"`
	Speed             float64     `json:"speed"`
	XPValue           int         `json:"xpValue"`
	ContactCooldownMs float64     `json:"-"`
	Active            bool        `json:"-"`
}

// Projectile is a live weapon emission. The meaning of Vel, Phase, and
// RingRadius depends on Kind: directional and homing integrate Vel, orbital
// recomputes position from Phase each tick, and ring grows RingRadius around
// a fixed origin.
type Projectile struct {
	ID         uint64     `json:"id"`
	Kind       WeaponKind `json:"kind"`
	Pos        Vec        `json:"pos"`
	Radius     float64    `json:"radius"`
	Damage     int        `json:"damage"`
	Vel        Vec        `json:"-"`
	Phase      float64    `json:"-"`
	RingRadius float64    `json:"ringRadius,omitempty"`
	LifetimeMs float64    `json:"-"`
	Active     bool       `json:"-"`
}

func (e *Enemy) loggingRef() logging.EntityRef {
	return logging.EntityRef{ID: fmt.Sprintf("enemy-%d", e.ID), Kind: logging.EntityKindEnemy}
}

// XPGem is a collectible dropped by a defeated enemy.
type XPGem struct {
	ID     uint64  `json:"id"`
	Pos    Vec     `json:"pos"`
	Radius float64 `json:"radius"`
	Value  int     `json:"value"`
	Active bool    `json:"-"`
}

// WeaponState tracks one owned weapon. The player starts with exactly one
// and never owns duplicates of a kind.
type WeaponState struct {
	Kind       WeaponKind `json:"kind"`
	Level      int        `json:"level"`
	CooldownMs float64    `json:"-"`
}
