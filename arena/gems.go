package arena

// spawnGem drops an XP gem, silently skipped once the active-gem cap is
// reached.
func (a *Arena) spawnGem(pos Vec, value int) {
	if a.activeGemCount() >= a.cfg.Gems.Cap {
		return
	}
	a.gems = append(a.gems, XPGem{
		ID:     a.allocID(),
		Pos:    pos,
		Radius: a.cfg.Gems.Radius,
		Value:  value,
		Active: true,
	})
}

func (a *Arena) activeGemCount() int {
	count := 0
	for i := range a.gems {
		if a.gems[i].Active {
			count++
		}
	}
	return count
}

// stepGems pulls gems inside the player's pickup radius toward the player,
// faster the closer they get, and consumes gems inside the fixed collection
// radius.
func (a *Arena) stepGems(dt float64) {
	for i := range a.gems {
		gem := &a.gems[i]
		if !gem.Active {
			continue
		}
		toPlayer := a.player.Pos.Sub(gem.Pos)
		dist := toPlayer.Length()

		if dist <= a.cfg.Gems.CollectRadius {
			gem.Active = false
			a.grantXP(gem.Value)
			continue
		}
		if dist > a.player.PickupRadius {
			continue
		}

		speed := a.cfg.Gems.PullBase + a.cfg.Gems.PullGain*(1-dist/a.player.PickupRadius)
		step := speed * dt
		if step > dist {
			step = dist
		}
		gem.Pos = gem.Pos.Add(toPlayer.Normalized().Scale(step))
	}
}
