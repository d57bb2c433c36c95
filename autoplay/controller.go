// Package autoplay drives an arena run through the same public input
// surface a human player uses. A policy parameterized by a discrete skill
// level steers the player each tick and picks level-up upgrades.
package autoplay

import (
	"math"
	"math/rand"

	"grind-and-gain/server/arena"
)

// MinSkill and MaxSkill bound the controller's skill parameter.
const (
	MinSkill = 1
	MaxSkill = 5
)

const (
	// chooseDelayMs is how long the controller lingers on the upgrade
	// overlay before selecting, so spectators can read the choices.
	chooseDelayMs = 400.0
	// intentDeadzone is the per-axis force threshold below which no
	// directional intent is produced.
	intentDeadzone = 0.15
	// centerWeight scales the pull toward the arena center.
	centerWeight = 0.35
	// gemWeight scales the attraction toward the nearest gem.
	gemWeight = 1.0
	// dodgeWeight scales the repulsion away from nearby enemies.
	dodgeWeight = 2.0
)

// Simulation is the slice of the arena surface the controller drives. It is
// exactly what a human-driven input source gets: read a snapshot, push
// intent, pick upgrades.
type Simulation interface {
	Snapshot() arena.Snapshot
	SetInput(arena.Input)
	ApplyUpgrade(index int)
}

// Controller is a policy-driven stand-in for the player.
type Controller struct {
	sim           Simulation
	rng           *rand.Rand
	skill         int
	overlayOpenMs float64
}

// New constructs a controller at the given skill level, clamped to
// [MinSkill, MaxSkill]. A nil rng falls back to a fixed-seed source.
func New(sim Simulation, skill int, rng *rand.Rand) *Controller {
	if skill < MinSkill {
		skill = MinSkill
	}
	if skill > MaxSkill {
		skill = MaxSkill
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Controller{sim: sim, rng: rng, skill: skill}
}

// Skill returns the clamped skill level.
func (c *Controller) Skill() int {
	return c.skill
}

// Step reads the simulation and issues this tick's input. While the
// level-up overlay is open it waits a short delay, then selects an upgrade.
func (c *Controller) Step(deltaMs float64) {
	snapshot := c.sim.Snapshot()

	if snapshot.LevelingUp {
		c.overlayOpenMs += deltaMs
		if c.overlayOpenMs >= chooseDelayMs && len(snapshot.Choices) > 0 {
			c.sim.ApplyUpgrade(c.chooseUpgrade(snapshot.Choices))
			c.overlayOpenMs = 0
		}
		return
	}
	c.overlayOpenMs = 0

	force := c.steeringForce(snapshot)
	c.sim.SetInput(arena.Input{
		Left:  force.X < -intentDeadzone,
		Right: force.X > intentDeadzone,
		Up:    force.Y < -intentDeadzone,
		Down:  force.Y > intentDeadzone,
	})
}

// steeringForce composes enemy repulsion, gem attraction, and a gentle
// center pull into a single 2D force.
func (c *Controller) steeringForce(snapshot arena.Snapshot) arena.Vec {
	var force arena.Vec
	pos := snapshot.Player.Pos

	dodgeRadius := c.dodgeRadius()
	for _, enemy := range snapshot.Enemies {
		away := pos.Sub(enemy.Pos)
		dist := away.Length()
		if dist <= 0 || dist > dodgeRadius {
			continue
		}
		// Inverse-distance weighting: closer enemies push harder, fading
		// to zero at the dodge radius.
		force = force.Add(away.Normalized().Scale(dodgeWeight * (dodgeRadius/dist - 1)))
	}

	if gemRadius := c.gemRadius(); gemRadius > 0 {
		if gem, ok := nearestGem(pos, snapshot.Gems, gemRadius); ok {
			force = force.Add(gem.Sub(pos).Normalized().Scale(gemWeight))
		}
	}

	// A pull toward the center, growing with distance from it, keeps the
	// policy out of the corners.
	center := arena.Vec{X: snapshot.ArenaWidth / 2, Y: snapshot.ArenaHeight / 2}
	toCenter := center.Sub(pos)
	maxDist := math.Hypot(center.X, center.Y)
	if maxDist > 0 {
		force = force.Add(toCenter.Normalized().Scale(centerWeight * toCenter.Length() / maxDist))
	}

	return force
}

// dodgeRadius grows with skill: better players react to threats sooner.
func (c *Controller) dodgeRadius() float64 {
	return 60 + 30*float64(c.skill)
}

// gemRadius is the gem detection range. Skill 1 ignores gems entirely.
func (c *Controller) gemRadius() float64 {
	if c.skill <= 1 {
		return 0
	}
	return 50 * float64(c.skill)
}

func nearestGem(pos arena.Vec, gems []arena.XPGem, radius float64) (arena.Vec, bool) {
	best := radius * radius
	var found bool
	var nearest arena.Vec
	for _, gem := range gems {
		dx := gem.Pos.X - pos.X
		dy := gem.Pos.Y - pos.Y
		if d2 := dx*dx + dy*dy; d2 <= best {
			best = d2
			nearest = gem.Pos
			found = true
		}
	}
	return nearest, found
}
