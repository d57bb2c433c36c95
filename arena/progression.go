package arena

import (
	"context"
	"fmt"
	"math"

	logginglifecycle "grind-and-gain/server/logging/lifecycle"
)

// UpgradeKind tags a pending level-up choice.
type UpgradeKind uint8

const (
	// UpgradeNewWeapon grants an unowned weapon at level 1.
	UpgradeNewWeapon UpgradeKind = iota
	// UpgradeWeaponLevel raises an owned weapon by one level.
	UpgradeWeaponLevel
	// UpgradeStatBoost improves one player stat.
	UpgradeStatBoost
)

func (k UpgradeKind) String() string {
	switch k {
	case UpgradeNewWeapon:
		return "new-weapon"
	case UpgradeWeaponLevel:
		return "upgrade-weapon"
	case UpgradeStatBoost:
		return "stat-boost"
	default:
		return fmt.Sprintf("upgrade(%d)", uint8(k))
	}
}

// MarshalText renders the kind as its wire name.
func (k UpgradeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// StatKind is the fixed set of boostable player stats.
type StatKind uint8

const (
	StatMaxHP StatKind = iota
	StatMoveSpeed
	StatDamage
	StatPickupRadius

	statKindCount
)

func (s StatKind) String() string {
	switch s {
	case StatMaxHP:
		return "max-hp"
	case StatMoveSpeed:
		return "move-speed"
	case StatDamage:
		return "damage"
	case StatPickupRadius:
		return "pickup-radius"
	default:
		return fmt.Sprintf("stat(%d)", uint8(s))
	}
}

// MarshalText renders the stat as its wire name.
func (s StatKind) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s StatKind) displayName() string {
	switch s {
	case StatMaxHP:
		return "Hardened Shell"
	case StatMoveSpeed:
		return "Overclock"
	case StatDamage:
		return "Root Access"
	case StatPickupRadius:
		return "Magnet Protocol"
	default:
		return s.String()
	}
}

// UpgradeChoice is one selectable level-up option. Choices are generated
// transiently at level-up and consumed on selection.
type UpgradeChoice struct {
	Kind        UpgradeKind `json:"kind"`
	Weapon      WeaponKind  `json:"weapon,omitempty"`
	Stat        StatKind    `json:"stat,omitempty"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
}

// xpThreshold computes the XP needed for the next level-up.
func (a *Arena) xpThreshold() int {
	base := float64(a.cfg.Progression.BaseXP)
	threshold := base * math.Pow(a.cfg.Progression.ScalingFactor, float64(a.level-1))
	if threshold < 1 {
		return 1
	}
	return int(math.Round(threshold))
}

// grantXP banks collected XP and triggers a level-up when the threshold is
// reached. Excess XP carries over.
func (a *Arena) grantXP(value int) {
	if value <= 0 {
		return
	}
	a.xp += value
	a.maybeLevelUp()
}

func (a *Arena) maybeLevelUp() {
	if a.levelingUp || a.xp < a.xpToNext {
		return
	}
	a.xp -= a.xpToNext
	a.level++
	a.xpToNext = a.xpThreshold()
	a.choices = a.generateChoices()
	a.levelingUp = true
	a.life.Pause()
	logginglifecycle.LevelUp(context.Background(), a.pub, a.tick, a.actorRef(), logginglifecycle.LevelUpPayload{
		Level:   a.level,
		Choices: len(a.choices),
	})
}

// generateChoices builds the upgrade menu: every unowned weapon, every
// owned weapon below max level, and the fixed stat boosts, shuffled and
// truncated to the configured count. Stat boosts backfill when the pool
// runs short.
func (a *Arena) generateChoices() []UpgradeChoice {
	owned := make(map[WeaponKind]int, len(a.weapons))
	for _, w := range a.weapons {
		owned[w.Kind] = w.Level
	}

	candidates := make([]UpgradeChoice, 0, int(weaponKindCount)+int(statKindCount))
	for kind := WeaponKind(0); kind < weaponKindCount; kind++ {
		level, has := owned[kind]
		switch {
		case !has:
			candidates = append(candidates, UpgradeChoice{
				Kind:        UpgradeNewWeapon,
				Weapon:      kind,
				Label:       kind.displayName(),
				Description: fmt.Sprintf("Deploy the %s", kind.displayName()),
			})
		case level < a.cfg.Progression.MaxWeaponLevel:
			candidates = append(candidates, UpgradeChoice{
				Kind:        UpgradeWeaponLevel,
				Weapon:      kind,
				Label:       fmt.Sprintf("%s Lv.%d", kind.displayName(), level+1),
				Description: fmt.Sprintf("Upgrade the %s to level %d", kind.displayName(), level+1),
			})
		}
	}
	for stat := StatKind(0); stat < statKindCount; stat++ {
		candidates = append(candidates, a.statChoice(stat))
	}

	a.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	count := a.cfg.Progression.ChoiceCount
	if count < 1 {
		count = 1
	}
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	for len(candidates) < count {
		candidates = append(candidates, a.statChoice(StatKind(a.rng.Intn(int(statKindCount)))))
	}
	return candidates
}

func (a *Arena) statChoice(stat StatKind) UpgradeChoice {
	return UpgradeChoice{
		Kind:        UpgradeStatBoost,
		Stat:        stat,
		Label:       stat.displayName(),
		Description: fmt.Sprintf("Boost %s", stat),
	}
}

// ApplyUpgrade consumes the pending choice at index and resumes the run.
// Out-of-range indices, or calls outside the leveling-up sub-state, are
// no-ops.
func (a *Arena) ApplyUpgrade(index int) {
	if !a.levelingUp || index < 0 || index >= len(a.choices) {
		return
	}
	choice := a.choices[index]
	switch choice.Kind {
	case UpgradeNewWeapon:
		a.addWeapon(choice.Weapon)
	case UpgradeWeaponLevel:
		a.upgradeWeapon(choice.Weapon)
	case UpgradeStatBoost:
		a.applyStatBoost(choice.Stat)
	}
	a.choices = nil
	a.levelingUp = false
	a.life.Resume()
	a.maybeLevelUp()
}

func (a *Arena) addWeapon(kind WeaponKind) {
	for _, w := range a.weapons {
		if w.Kind == kind {
			return
		}
	}
	a.weapons = append(a.weapons, WeaponState{Kind: kind, Level: 1})
}

func (a *Arena) upgradeWeapon(kind WeaponKind) {
	for i := range a.weapons {
		if a.weapons[i].Kind != kind {
			continue
		}
		if a.weapons[i].Level < a.cfg.Progression.MaxWeaponLevel {
			a.weapons[i].Level++
		}
		return
	}
}

func (a *Arena) applyStatBoost(stat StatKind) {
	p := &a.player
	cfg := a.cfg.Progression
	switch stat {
	case StatMaxHP:
		p.MaxHP += cfg.StatMaxHPBonus
		p.HP += cfg.StatMaxHPBonus
		if p.HP > p.MaxHP {
			p.HP = p.MaxHP
		}
	case StatMoveSpeed:
		p.MoveSpeed *= cfg.StatSpeedMult
	case StatDamage:
		p.DamageMult *= cfg.StatDamageMult
	case StatPickupRadius:
		p.PickupRadius *= cfg.StatPickupMult
	}
}
