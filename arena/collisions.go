package arena

import (
	"context"

	loggingcombat "grind-and-gain/server/logging/combat"
)

// stepProjectileHits resolves projectile-enemy collisions. Non-piercing
// kinds are consumed by their first hit and exit the enemy scan; piercing
// kinds damage every overlapping enemy in the same tick. The ring uses an
// annulus test instead of circle overlap.
func (a *Arena) stepProjectileHits() {
	for i := range a.projectiles {
		p := &a.projectiles[i]
		if !p.Active {
			continue
		}
		switch {
		case p.Kind == WeaponRing:
			a.resolveRingHits(p)
		case p.Kind.pierces():
			a.resolvePiercingHits(p)
		default:
			a.resolveSingleHit(p)
		}
	}
}

func (a *Arena) resolveSingleHit(p *Projectile) {
	for i := range a.enemies {
		enemy := &a.enemies[i]
		if !enemy.Active {
			continue
		}
		if !circlesOverlap(p.Pos, p.Radius, enemy.Pos, enemy.Radius) {
			continue
		}
		a.damageEnemy(enemy, p)
		p.Active = false
		return
	}
}

func (a *Arena) resolvePiercingHits(p *Projectile) {
	for i := range a.enemies {
		enemy := &a.enemies[i]
		if !enemy.Active {
			continue
		}
		if circlesOverlap(p.Pos, p.Radius, enemy.Pos, enemy.Radius) {
			a.damageEnemy(enemy, p)
		}
	}
}

// resolveRingHits damages enemies whose center falls inside the annulus
// [ringRadius - width, ringRadius] around the ring's origin.
func (a *Arena) resolveRingHits(p *Projectile) {
	outer := p.RingRadius
	inner := outer - p.Radius
	if inner < 0 {
		inner = 0
	}
	outer2 := outer * outer
	inner2 := inner * inner
	for i := range a.enemies {
		enemy := &a.enemies[i]
		if !enemy.Active {
			continue
		}
		d2 := distanceSquared(p.Pos, enemy.Pos)
		if d2 >= inner2 && d2 <= outer2 {
			a.damageEnemy(enemy, p)
		}
	}
}

// damageEnemy applies projectile damage and handles death: the enemy is
// deactivated, counted as a kill, drops an XP gem subject to the cap, and a
// kill notification is emitted.
func (a *Arena) damageEnemy(enemy *Enemy, p *Projectile) {
	enemy.HP -= p.Damage
	if enemy.HP > 0 {
		return
	}
	enemy.HP = 0
	enemy.Active = false
	a.kills++
	a.spawnGem(enemy.Pos, enemy.XPValue)
	a.pushEvent(Event{
		Kind:      EventEnemyKilled,
		Pos:       enemy.Pos,
		Weapon:    p.Kind,
		Archetype: enemy.Archetype,
		XPValue:   enemy.XPValue,
	})
	loggingcombat.EnemyKilled(context.Background(), a.pub, a.tick, a.actorRef(), enemy.loggingRef(), loggingcombat.EnemyKilledPayload{
		Archetype: string(enemy.Archetype),
		Weapon:    p.Kind.String(),
		X:         enemy.Pos.X,
		Y:         enemy.Pos.Y,
		XPValue:   enemy.XPValue,
	})
}
