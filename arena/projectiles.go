package arena

// stepProjectiles advances every active projectile by its kind-specific
// position rule. Lifetime always decrements; expiry deactivates regardless
// of kind.
func (a *Arena) stepProjectiles(deltaMs, dt float64) {
	orbitalCfg := a.cfg.Weapons.Orbital
	ringCfg := a.cfg.Weapons.Ring
	homingCfg := a.cfg.Weapons.Homing
	spin := a.life.ElapsedMs() / 1000 * orbitalCfg.AngularSpeed

	for i := range a.projectiles {
		p := &a.projectiles[i]
		if !p.Active {
			continue
		}
		p.LifetimeMs -= deltaMs
		if p.LifetimeMs <= 0 {
			p.Active = false
			continue
		}

		switch p.Kind {
		case WeaponDirectional:
			p.Pos = p.Pos.Add(p.Vel.Scale(dt))
			if a.outOfBounds(p.Pos) {
				p.Active = false
			}
		case WeaponOrbital:
			// Position is a function of elapsed time and the orb's angle
			// offset, not integrated velocity.
			p.Pos = a.player.Pos.Add(vecFromAngle(p.Phase + spin).Scale(orbitalCfg.OrbitRadius))
		case WeaponRing:
			p.RingRadius += ringCfg.ExpandSpeed * dt
			if p.RingRadius >= ringCfg.MaxRadius {
				p.Active = false
			}
		case WeaponHoming:
			a.steerHoming(p, homingCfg, dt)
			p.Pos = p.Pos.Add(p.Vel.Scale(dt))
			if a.outOfBounds(p.Pos) {
				p.Active = false
			}
		}
	}
}

// steerHoming retargets the nearest active enemy each tick and turns the
// projectile's heading toward it, clamped to the configured turn rate. The
// speed never changes, only the heading.
func (a *Arena) steerHoming(p *Projectile, cfg HomingConfig, dt float64) {
	target := a.nearestEnemy(p.Pos)
	if target == nil {
		return
	}
	toTarget := target.Pos.Sub(p.Pos)
	if toTarget.X == 0 && toTarget.Y == 0 {
		return
	}
	heading := p.Vel.Heading()
	turn := angleDiff(heading, toTarget.Heading())
	maxTurn := cfg.TurnRate * dt
	turn = clamp(turn, -maxTurn, maxTurn)
	p.Vel = vecFromAngle(heading + turn).Scale(cfg.ProjectileSpeed)
}

func (a *Arena) outOfBounds(pos Vec) bool {
	return pos.X < -despawnMargin || pos.X > a.cfg.ArenaWidth+despawnMargin ||
		pos.Y < -despawnMargin || pos.Y > a.cfg.ArenaHeight+despawnMargin
}
