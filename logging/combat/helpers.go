package combat

import (
	"context"

	"grind-and-gain/server/logging"
)

const (
	// EventEnemyKilled is emitted when a projectile defeats an enemy.
	EventEnemyKilled logging.EventType = "combat.enemy_killed"
	// EventPlayerHit is emitted when an enemy lands contact damage.
	EventPlayerHit logging.EventType = "combat.player_hit"
)

// EnemyKilledPayload captures where and how an enemy died.
type EnemyKilledPayload struct {
	Archetype string  `json:"archetype"`
	Weapon    string  `json:"weapon"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XPValue   int     `json:"xpValue"`
}

// PlayerHitPayload captures the player's health after contact damage.
type PlayerHitPayload struct {
	Archetype string  `json:"archetype"`
	HP        int     `json:"hp"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// EnemyKilled publishes an enemy defeat.
func EnemyKilled(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload EnemyKilledPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEnemyKilled,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// PlayerHit publishes contact damage against the player.
func PlayerHit(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerHitPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPlayerHit,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}
