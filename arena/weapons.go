package arena

import (
	"math"
)

// stepWeapons decrements every owned weapon's cooldown and fires the ones
// that reach zero.
func (a *Arena) stepWeapons(deltaMs float64) {
	for i := range a.weapons {
		weapon := &a.weapons[i]
		weapon.CooldownMs -= deltaMs
		if weapon.CooldownMs > 0 {
			continue
		}
		a.fireWeapon(weapon)
	}
}

func (a *Arena) fireWeapon(weapon *WeaponState) {
	switch weapon.Kind {
	case WeaponDirectional:
		a.fireDirectional(weapon)
	case WeaponOrbital:
		a.fireOrbital(weapon)
	case WeaponRing:
		a.fireRing(weapon)
	case WeaponHoming:
		a.fireHoming(weapon)
	}
	a.pushEvent(Event{Kind: EventWeaponFired, Pos: a.player.Pos, Weapon: weapon.Kind})
}

// weaponDamage applies level scaling and the player's damage multiplier,
// floored at 1.
func (a *Arena) weaponDamage(base, perLevel, level int) int {
	damage := int(math.Round(float64(base+perLevel*(level-1)) * a.player.DamageMult))
	if damage < 1 {
		damage = 1
	}
	return damage
}

// fireDirectional launches a single shot along the player's current facing.
func (a *Arena) fireDirectional(weapon *WeaponState) {
	cfg := a.cfg.Weapons.Directional
	weapon.CooldownMs = scaledCooldown(cfg.CooldownMs, cfg.CooldownScale, weapon.Level)
	a.projectiles = append(a.projectiles, Projectile{
		ID:         a.allocID(),
		Kind:       WeaponDirectional,
		Pos:        a.player.Pos,
		Radius:     cfg.Radius,
		Damage:     a.weaponDamage(cfg.Damage, cfg.DamagePerLevel, weapon.Level),
		Vel:        a.player.Facing.Scale(cfg.ProjectileSpeed),
		LifetimeMs: cfg.LifetimeMs,
		Active:     true,
	})
}

// fireOrbital replaces the orbiting set with an evenly spaced ring of
// piercing orbs. Each orb stores only its angle offset; its position is
// recomputed analytically from elapsed time, so the set stays continuous
// across replacements.
func (a *Arena) fireOrbital(weapon *WeaponState) {
	cfg := a.cfg.Weapons.Orbital
	weapon.CooldownMs = cfg.IntervalMs

	for i := range a.projectiles {
		if a.projectiles[i].Kind == WeaponOrbital {
			a.projectiles[i].Active = false
		}
	}

	count := cfg.BaseCount + cfg.CountPerLevel*(weapon.Level-1)
	if count < 1 {
		count = 1
	}
	damage := a.weaponDamage(cfg.Damage, 0, weapon.Level)
	spin := a.life.ElapsedMs() / 1000 * cfg.AngularSpeed
	for i := 0; i < count; i++ {
		phase := 2 * math.Pi * float64(i) / float64(count)
		a.projectiles = append(a.projectiles, Projectile{
			ID:         a.allocID(),
			Kind:       WeaponOrbital,
			Pos:        a.player.Pos.Add(vecFromAngle(phase + spin).Scale(cfg.OrbitRadius)),
			Radius:     cfg.Radius,
			Damage:     damage,
			Phase:      phase,
			LifetimeMs: cfg.IntervalMs * 2,
			Active:     true,
		})
	}
}

// fireRing drops an expanding shockwave at the player's position. The ring's
// origin never moves; only its radius grows.
func (a *Arena) fireRing(weapon *WeaponState) {
	cfg := a.cfg.Weapons.Ring
	weapon.CooldownMs = cfg.CooldownMs
	lifetime := cfg.CooldownMs
	if cfg.ExpandSpeed > 0 {
		lifetime = cfg.MaxRadius / cfg.ExpandSpeed * 1000
	}
	a.projectiles = append(a.projectiles, Projectile{
		ID:         a.allocID(),
		Kind:       WeaponRing,
		Pos:        a.player.Pos,
		Radius:     cfg.Width,
		Damage:     a.weaponDamage(cfg.Damage, cfg.DamagePerLevel, weapon.Level),
		RingRadius: 0,
		LifetimeMs: lifetime + 100,
		Active:     true,
	})
}

// fireHoming launches a shot toward the nearest active enemy, or along the
// player's facing when nothing is alive.
func (a *Arena) fireHoming(weapon *WeaponState) {
	cfg := a.cfg.Weapons.Homing
	weapon.CooldownMs = cfg.CooldownMs

	dir := a.player.Facing
	if target := a.nearestEnemy(a.player.Pos); target != nil {
		dir = target.Pos.Sub(a.player.Pos).Normalized()
		if dir.X == 0 && dir.Y == 0 {
			dir = a.player.Facing
		}
	}
	a.projectiles = append(a.projectiles, Projectile{
		ID:         a.allocID(),
		Kind:       WeaponHoming,
		Pos:        a.player.Pos,
		Radius:     cfg.Radius,
		Damage:     a.weaponDamage(cfg.Damage, cfg.DamagePerLevel, weapon.Level),
		Vel:        dir.Scale(cfg.ProjectileSpeed),
		LifetimeMs: cfg.LifetimeMs,
		Active:     true,
	})
}

// scaledCooldown shortens a base cooldown per level above 1.
func scaledCooldown(baseMs, scale float64, level int) float64 {
	if scale <= 0 || scale >= 1 || level <= 1 {
		return baseMs
	}
	return baseMs * math.Pow(scale, float64(level-1))
}

// nearestEnemy returns the active enemy closest to pos, or nil.
func (a *Arena) nearestEnemy(pos Vec) *Enemy {
	var nearest *Enemy
	best := math.MaxFloat64
	for i := range a.enemies {
		enemy := &a.enemies[i]
		if !enemy.Active {
			continue
		}
		if d2 := distanceSquared(pos, enemy.Pos); d2 < best {
			best = d2
			nearest = enemy
		}
	}
	return nearest
}
