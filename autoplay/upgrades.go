package autoplay

import "grind-and-gain/server/arena"

// Hardcoded priority orders used by the scoring strategies. Higher is
// better.
var weaponPriority = map[arena.WeaponKind]int{
	arena.WeaponOrbital:     4,
	arena.WeaponHoming:      3,
	arena.WeaponRing:        2,
	arena.WeaponDirectional: 1,
}

var statPriority = map[arena.StatKind]int{
	arena.StatDamage:       4,
	arena.StatMoveSpeed:    3,
	arena.StatMaxHP:        2,
	arena.StatPickupRadius: 1,
}

// chooseUpgrade picks a pending choice index using the strategy tier for
// the controller's skill level.
func (c *Controller) chooseUpgrade(choices []arena.UpgradeChoice) int {
	switch c.skill {
	case 1:
		return c.rng.Intn(len(choices))
	case 2:
		return c.chooseFirstOfKind(choices, arena.UpgradeNewWeapon)
	case 3:
		return c.chooseFirstOfKind(choices, arena.UpgradeWeaponLevel)
	case 4:
		return c.chooseScored(choices, true)
	default:
		return c.chooseScored(choices, false)
	}
}

// chooseFirstOfKind prefers choices of the given kind, then any weapon
// choice, then falls back to a uniform pick.
func (c *Controller) chooseFirstOfKind(choices []arena.UpgradeChoice, preferred arena.UpgradeKind) int {
	for i, choice := range choices {
		if choice.Kind == preferred {
			return i
		}
	}
	for i, choice := range choices {
		if choice.Kind != arena.UpgradeStatBoost {
			return i
		}
	}
	return c.rng.Intn(len(choices))
}

// chooseScored ranks every choice with the priority tables and returns the
// best index. jitter adds a random tiebreaker so skill 4 is not perfectly
// deterministic.
func (c *Controller) chooseScored(choices []arena.UpgradeChoice, jitter bool) int {
	bestIndex := 0
	bestScore := -1.0
	for i, choice := range choices {
		score := c.scoreChoice(choice)
		if jitter {
			score += c.rng.Float64() * 2
		}
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	return bestIndex
}

func (c *Controller) scoreChoice(choice arena.UpgradeChoice) float64 {
	switch choice.Kind {
	case arena.UpgradeNewWeapon:
		return 10 + float64(weaponPriority[choice.Weapon])
	case arena.UpgradeWeaponLevel:
		return 6 + float64(weaponPriority[choice.Weapon])
	default:
		return float64(statPriority[choice.Stat])
	}
}
