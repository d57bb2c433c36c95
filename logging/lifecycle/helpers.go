package lifecycle

import (
	"context"

	"grind-and-gain/server/logging"
)

const (
	// EventRunStarted is emitted when an arena run begins.
	EventRunStarted logging.EventType = "lifecycle.run_started"
	// EventRunEnded is emitted exactly once when a run reaches its terminal state.
	EventRunEnded logging.EventType = "lifecycle.run_ended"
	// EventLevelUp is emitted when the player banks enough XP to level.
	EventLevelUp logging.EventType = "lifecycle.level_up"
)

// RunEndedPayload captures the final tallies of a run.
type RunEndedPayload struct {
	Score       int     `json:"score"`
	Kills       int     `json:"kills"`
	Level       int     `json:"level"`
	SurvivedMs  float64 `json:"survivedMs"`
	MoneyEarned int     `json:"moneyEarned"`
}

// LevelUpPayload captures the new level and pending choice count.
type LevelUpPayload struct {
	Level   int `json:"level"`
	Choices int `json:"choices"`
}

// RunStarted publishes the start of a run.
func RunStarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRunStarted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
	})
}

// RunEnded publishes the terminal event of a run.
func RunEnded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RunEndedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRunEnded,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// LevelUp publishes a level-up pause.
func LevelUp(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload LevelUpPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLevelUp,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}
