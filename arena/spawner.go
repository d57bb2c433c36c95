package arena

import "math"

// stepSpawner accumulates elapsed time against the current bracket's
// interval and spawns a group on each threshold crossing.
func (a *Arena) stepSpawner(deltaMs float64) {
	bracket := a.cfg.Spawning.BracketFor(a.life.ElapsedMs())
	interval := bracket.IntervalMs
	if interval <= 0 {
		interval = 1000
	}
	a.spawnAccumMs += deltaMs
	for a.spawnAccumMs >= interval {
		a.spawnAccumMs -= interval
		a.spawnGroup(bracket)
	}
}

// spawnGroup places a rolled group of one archetype near a single random
// arena-edge point. The first member sits exactly on the edge point; the
// rest are jittered around it.
func (a *Arena) spawnGroup(bracket SpawnBracket) {
	archetype := a.cfg.Spawning.PickArchetype(a.rng, bracket)
	stats := a.cfg.Spawning.Stats(archetype)
	size := a.cfg.Spawning.RollGroupSize(a.rng, archetype)
	origin := a.randomEdgePoint()

	for i := 0; i < size; i++ {
		pos := origin
		if i > 0 && stats.GroupJitter > 0 {
			angle := a.rng.Float64() * 2 * math.Pi
			dist := a.rng.Float64() * stats.GroupJitter
			pos = origin.Add(vecFromAngle(angle).Scale(dist))
			pos.X = clamp(pos.X, 0, a.cfg.ArenaWidth)
			pos.Y = clamp(pos.Y, 0, a.cfg.ArenaHeight)
		}
		hp := a.cfg.Spawning.RollHP(a.rng, archetype, bracket.HPMult)
		a.enemies = append(a.enemies, Enemy{
			ID:        a.allocID(),
			Archetype: archetype,
			Pos:       pos,
			Radius:    stats.Radius,
			HP:        hp,
			MaxHP:     hp,
			Speed:     stats.Speed,
			XPValue:   stats.XPValue,
			Active:    true,
		})
	}
}

// randomEdgePoint picks a uniformly random point on the arena boundary.
func (a *Arena) randomEdgePoint() Vec {
	switch a.rng.Intn(4) {
	case 0: // top
		return Vec{X: a.rng.Float64() * a.cfg.ArenaWidth, Y: 0}
	case 1: // bottom
		return Vec{X: a.rng.Float64() * a.cfg.ArenaWidth, Y: a.cfg.ArenaHeight}
	case 2: // left
		return Vec{X: 0, Y: a.rng.Float64() * a.cfg.ArenaHeight}
	default: // right
		return Vec{X: a.cfg.ArenaWidth, Y: a.rng.Float64() * a.cfg.ArenaHeight}
	}
}

// stepEnemies steps every active enemy straight toward the player and
// decrements per-enemy contact cooldowns.
func (a *Arena) stepEnemies(deltaMs, dt float64) {
	for i := range a.enemies {
		enemy := &a.enemies[i]
		if !enemy.Active {
			continue
		}
		enemy.ContactCooldownMs -= deltaMs
		if enemy.ContactCooldownMs < 0 {
			enemy.ContactCooldownMs = 0
		}
		dir := a.player.Pos.Sub(enemy.Pos).Normalized()
		enemy.Pos = enemy.Pos.Add(dir.Scale(enemy.Speed * dt))
	}
}
