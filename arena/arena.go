// Package arena implements the Botnet Defense simulation: a bounded 2D
// survival run where the player's weapons fire automatically while enemy
// waves close in. The host calls Update once per frame, reads Snapshot for
// rendering, and pushes intent through SetInput. Everything here is
// single-threaded; the owning hub serializes access.
package arena

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"

	"grind-and-gain/server/logging"
	loggingcombat "grind-and-gain/server/logging/combat"
	logginglifecycle "grind-and-gain/server/logging/lifecycle"
	"grind-and-gain/server/minigame"
)

const (
	// enemyContactCooldownMs spaces out contact damage from a single enemy.
	enemyContactCooldownMs = 600.0
	// despawnMargin is how far outside the arena a projectile may travel
	// before it is discarded.
	despawnMargin = 40.0
)

// Arena owns all per-run simulation state for one Botnet Defense run.
type Arena struct {
	runID string
	cfg   Config
	life  *minigame.Lifecycle
	rng   *rand.Rand
	pub   logging.Publisher

	tick   uint64
	input  Input
	player Player

	weapons     []WeaponState
	enemies     []Enemy
	projectiles []Projectile
	gems        []XPGem
	nextID      uint64

	spawnAccumMs float64

	xp         int
	xpToNext   int
	level      int
	kills      int
	levelingUp bool
	choices    []UpgradeChoice

	moneyEarned int
	events      []Event
}

// New constructs an idle arena. Call Start to begin a run. A nil publisher
// disables structured logging.
func New(runID string, cfg Config, pub logging.Publisher) *Arena {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	normalized := cfg.normalized()
	a := &Arena{
		runID: runID,
		cfg:   normalized,
		rng:   newRunRNG(normalized.Seed, runID),
		pub:   pub,
	}
	a.life = minigame.NewLifecycle(0, minigame.Hooks{
		Reset:  a.reset,
		Tick:   a.step,
		Finish: a.finish,
	})
	return a
}

// newRunRNG derives a run-scoped random source from the configured seed and
// run id, so two runs with the same seed replay the same spawn schedule.
func newRunRNG(seed, scope string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{0})
	h.Write([]byte(scope))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// Config returns the normalized tuning the arena runs with.
func (a *Arena) Config() Config {
	return a.cfg
}

// Status returns the lifecycle state of the run.
func (a *Arena) Status() minigame.Status {
	return a.life.Status()
}

// Start resets all run-scoped state and begins playing.
func (a *Arena) Start() {
	a.life.Start()
	logginglifecycle.RunStarted(context.Background(), a.pub, a.tick, a.actorRef())
}

// Pause suspends the run.
func (a *Arena) Pause() {
	a.life.Pause()
}

// Resume continues a paused run. While the level-up overlay is open the run
// stays paused until an upgrade is chosen.
func (a *Arena) Resume() {
	if a.levelingUp {
		return
	}
	a.life.Resume()
}

// End terminates the run. Idempotent.
func (a *Arena) End() {
	a.life.End()
}

// Update advances the simulation by deltaMs. No-op unless playing.
func (a *Arena) Update(deltaMs float64) {
	a.life.Update(deltaMs)
}

// SetInput overwrites the current directional intent.
func (a *Arena) SetInput(input Input) {
	a.input = input
}

// MoneyReward derives the monetary payout from the current score via the
// configured linear ratio.
func (a *Arena) MoneyReward() int {
	money := float64(a.life.Score()) * a.cfg.Score.MoneyPerScore
	if money < 0 {
		return 0
	}
	return int(money)
}

func (a *Arena) actorRef() logging.EntityRef {
	return logging.EntityRef{ID: a.runID, Kind: logging.EntityKindRun}
}

func (a *Arena) allocID() uint64 {
	a.nextID++
	return a.nextID
}

// reset re-creates all run-scoped state. Invoked by the lifecycle on Start.
func (a *Arena) reset() {
	a.tick = 0
	a.input = Input{}
	a.player = Player{
		Pos:          Vec{X: a.cfg.ArenaWidth / 2, Y: a.cfg.ArenaHeight / 2},
		Facing:       Vec{X: 1, Y: 0},
		HP:           a.cfg.Player.MaxHP,
		MaxHP:        a.cfg.Player.MaxHP,
		MoveSpeed:    a.cfg.Player.MoveSpeed,
		Radius:       a.cfg.Player.Radius,
		PickupRadius: a.cfg.Player.PickupRadius,
		DamageMult:   1,
	}
	a.weapons = []WeaponState{{Kind: WeaponDirectional, Level: 1}}
	a.enemies = a.enemies[:0]
	a.projectiles = a.projectiles[:0]
	a.gems = a.gems[:0]
	a.nextID = 0
	a.spawnAccumMs = 0
	a.xp = 0
	a.level = 1
	a.xpToNext = a.xpThreshold()
	a.kills = 0
	a.levelingUp = false
	a.choices = nil
	a.moneyEarned = 0
	a.events = nil
}

// step is the fixed-order per-tick pipeline. deltaMs has already been
// clamped non-negative by the lifecycle.
func (a *Arena) step(deltaMs float64) {
	a.tick++
	dt := deltaMs / 1000

	a.stepMovement(dt)
	a.stepIFrames(deltaMs)
	a.stepWeapons(deltaMs)
	a.stepProjectiles(deltaMs, dt)
	a.stepSpawner(deltaMs)
	a.stepEnemies(deltaMs, dt)
	a.stepProjectileHits()
	a.stepContactDamage()
	a.stepGems(dt)
	a.cleanup()
	a.recomputeScore()

	if a.player.HP <= 0 {
		a.End()
	}
}

// stepMovement converts boolean intent into a unit vector and integrates the
// player's position, clamped to the arena inset by the player's radius.
// Diagonal intent is normalized so diagonal speed matches cardinal speed.
func (a *Arena) stepMovement(dt float64) {
	var intent Vec
	if a.input.Left {
		intent.X--
	}
	if a.input.Right {
		intent.X++
	}
	if a.input.Up {
		intent.Y--
	}
	if a.input.Down {
		intent.Y++
	}

	dir := intent.Normalized()
	if dir.X != 0 || dir.Y != 0 {
		a.player.Facing = dir
	}

	a.player.Pos = a.player.Pos.Add(dir.Scale(a.player.MoveSpeed * dt))
	a.player.Pos.X = clamp(a.player.Pos.X, a.player.Radius, a.cfg.ArenaWidth-a.player.Radius)
	a.player.Pos.Y = clamp(a.player.Pos.Y, a.player.Radius, a.cfg.ArenaHeight-a.player.Radius)
}

func (a *Arena) stepIFrames(deltaMs float64) {
	a.player.IFrameMs -= deltaMs
	if a.player.IFrameMs < 0 {
		a.player.IFrameMs = 0
	}
}

// stepContactDamage applies at most one hit of contact damage per tick. The
// scan stops at the first overlapping enemy; i-frames gate everything.
func (a *Arena) stepContactDamage() {
	if a.player.IFrameMs > 0 {
		return
	}
	for i := range a.enemies {
		enemy := &a.enemies[i]
		if !enemy.Active || enemy.ContactCooldownMs > 0 {
			continue
		}
		if !circlesOverlap(a.player.Pos, a.player.Radius, enemy.Pos, enemy.Radius) {
			continue
		}
		a.player.HP--
		if a.player.HP < 0 {
			a.player.HP = 0
		}
		a.player.IFrameMs = a.cfg.Player.IFrameMs
		enemy.ContactCooldownMs = enemyContactCooldownMs
		a.pushEvent(Event{Kind: EventPlayerHit, Pos: a.player.Pos, Archetype: enemy.Archetype, HP: a.player.HP})
		loggingcombat.PlayerHit(context.Background(), a.pub, a.tick, a.actorRef(), loggingcombat.PlayerHitPayload{
			Archetype: string(enemy.Archetype),
			HP:        a.player.HP,
			X:         a.player.Pos.X,
			Y:         a.player.Pos.Y,
		})
		return
	}
}

// recomputeScore rebuilds the score from first principles each tick so that
// the value never drifts from its inputs.
func (a *Arena) recomputeScore() {
	survivedSeconds := int(math.Floor(a.life.ElapsedMs() / 1000))
	a.life.SetScore(a.kills*a.cfg.Score.KillPoints + survivedSeconds*a.cfg.Score.TimePoints)
}

// finish runs exactly once when the run ends.
func (a *Arena) finish() {
	a.recomputeScore()
	a.moneyEarned = a.MoneyReward()
	score := a.life.Score()
	a.pushEvent(Event{Kind: EventRunEnded, Pos: a.player.Pos, Score: score, Money: a.moneyEarned})
	logginglifecycle.RunEnded(context.Background(), a.pub, a.tick, a.actorRef(), logginglifecycle.RunEndedPayload{
		Score:       score,
		Kills:       a.kills,
		Level:       a.level,
		SurvivedMs:  a.life.ElapsedMs(),
		MoneyEarned: a.moneyEarned,
	})
}

// cleanup purges inactive entities from every collection. Slot order of the
// survivors is preserved; ids are never reused.
func (a *Arena) cleanup() {
	a.enemies = compactEnemies(a.enemies)
	a.projectiles = compactProjectiles(a.projectiles)
	a.gems = compactGems(a.gems)
}

func compactEnemies(list []Enemy) []Enemy {
	kept := list[:0]
	for _, e := range list {
		if e.Active {
			kept = append(kept, e)
		}
	}
	return kept
}

func compactProjectiles(list []Projectile) []Projectile {
	kept := list[:0]
	for _, p := range list {
		if p.Active {
			kept = append(kept, p)
		}
	}
	return kept
}

func compactGems(list []XPGem) []XPGem {
	kept := list[:0]
	for _, g := range list {
		if g.Active {
			kept = append(kept, g)
		}
	}
	return kept
}
