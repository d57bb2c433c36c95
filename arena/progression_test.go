package arena

import (
	"math"
	"testing"

	"grind-and-gain/server/minigame"
)

func TestXPThresholdScalesGeometrically(t *testing.T) {
	a := newTestArena(t, quietConfig())
	base := a.cfg.Progression.BaseXP
	scale := a.cfg.Progression.ScalingFactor

	if got := a.xpThreshold(); got != base {
		t.Fatalf("level 1 threshold = %d, want %d", got, base)
	}
	a.level = 3
	want := int(math.Round(float64(base) * scale * scale))
	if got := a.xpThreshold(); got != want {
		t.Fatalf("level 3 threshold = %d, want %d", got, want)
	}
}

func TestExcessXPCarriesOver(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.grantXP(a.xpToNext + 3)

	if a.level != 2 {
		t.Fatalf("level = %d, want 2", a.level)
	}
	if a.xp != 3 {
		t.Fatalf("carried xp = %d, want 3", a.xp)
	}
	if !a.levelingUp {
		t.Fatalf("arena not in the leveling-up sub-state")
	}
}

func TestChoicePoolContents(t *testing.T) {
	a := newTestArena(t, quietConfig())
	// Exactly the candidate pool size: 3 unowned weapons, 1 upgrade, 4 stats.
	a.cfg.Progression.ChoiceCount = 8
	choices := a.generateChoices()

	var newWeapons, upgrades, stats int
	for _, c := range choices {
		switch c.Kind {
		case UpgradeNewWeapon:
			if c.Weapon == WeaponDirectional {
				t.Fatalf("owned weapon offered as new")
			}
			newWeapons++
		case UpgradeWeaponLevel:
			if c.Weapon != WeaponDirectional {
				t.Fatalf("unowned weapon %s offered as upgrade", c.Weapon)
			}
			upgrades++
		case UpgradeStatBoost:
			stats++
		}
	}
	if newWeapons != 3 {
		t.Fatalf("new-weapon choices = %d, want 3", newWeapons)
	}
	if upgrades != 1 {
		t.Fatalf("weapon-upgrade choices = %d, want 1", upgrades)
	}
	if stats != 4 {
		t.Fatalf("stat-boost choices = %d, want 4", stats)
	}
}

func TestMaxLevelWeaponLeavesChoicePool(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.cfg.Progression.ChoiceCount = 100
	a.weapons[0].Level = a.cfg.Progression.MaxWeaponLevel

	for _, c := range a.generateChoices() {
		if c.Kind == UpgradeWeaponLevel && c.Weapon == WeaponDirectional {
			t.Fatalf("maxed weapon still offered for upgrade")
		}
	}
}

func TestStatBoostsBackfillShortPools(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.cfg.Progression.ChoiceCount = 100
	// Own everything at max so only the 4 stat boosts remain.
	a.weapons = a.weapons[:0]
	for kind := WeaponKind(0); kind < weaponKindCount; kind++ {
		a.weapons = append(a.weapons, WeaponState{Kind: kind, Level: a.cfg.Progression.MaxWeaponLevel})
	}

	choices := a.generateChoices()
	if len(choices) != 100 {
		t.Fatalf("choices = %d, want the full configured count", len(choices))
	}
	for _, c := range choices {
		if c.Kind != UpgradeStatBoost {
			t.Fatalf("non-stat choice %s in an exhausted pool", c.Kind)
		}
	}
}

func TestApplyUpgradeResumesRun(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.grantXP(a.xpToNext)
	if a.Status() != minigame.StatusPaused {
		t.Fatalf("status during level-up = %q, want paused", a.Status())
	}

	a.ApplyUpgrade(0)

	if a.levelingUp {
		t.Fatalf("still leveling up after applying a choice")
	}
	if a.choices != nil {
		t.Fatalf("choices not cleared after selection")
	}
	if a.Status() != minigame.StatusPlaying {
		t.Fatalf("status after upgrade = %q, want playing", a.Status())
	}
}

func TestApplyUpgradeGuards(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.ApplyUpgrade(0) // not leveling up
	if a.level != 1 || len(a.weapons) != 1 {
		t.Fatalf("upgrade applied outside the leveling-up sub-state")
	}

	a.grantXP(a.xpToNext)
	a.ApplyUpgrade(-1)
	a.ApplyUpgrade(len(a.choices))
	if !a.levelingUp {
		t.Fatalf("out-of-range index consumed the pending level-up")
	}
}

func TestResumeIgnoredWhileChoosing(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.grantXP(a.xpToNext)

	a.Resume()
	if a.Status() != minigame.StatusPaused {
		t.Fatalf("resume bypassed the upgrade overlay: status %q", a.Status())
	}
}

func TestNewWeaponJoinsArsenalAtLevelOne(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.addWeapon(WeaponHoming)

	if len(a.weapons) != 2 {
		t.Fatalf("weapons = %d, want 2", len(a.weapons))
	}
	if a.weapons[1].Kind != WeaponHoming || a.weapons[1].Level != 1 {
		t.Fatalf("new weapon %s at level %d, want homing at 1", a.weapons[1].Kind, a.weapons[1].Level)
	}

	a.addWeapon(WeaponHoming)
	if len(a.weapons) != 2 {
		t.Fatalf("duplicate weapon grant expanded the arsenal")
	}
}

func TestWeaponLevelCapped(t *testing.T) {
	a := newTestArena(t, quietConfig())
	max := a.cfg.Progression.MaxWeaponLevel
	for i := 0; i < max+3; i++ {
		a.upgradeWeapon(WeaponDirectional)
	}
	if a.weapons[0].Level != max {
		t.Fatalf("weapon level = %d, want cap %d", a.weapons[0].Level, max)
	}
}

func TestStatBoostsApply(t *testing.T) {
	a := newTestArena(t, quietConfig())
	cfg := a.cfg.Progression

	hp := a.player.MaxHP
	a.applyStatBoost(StatMaxHP)
	if a.player.MaxHP != hp+cfg.StatMaxHPBonus {
		t.Fatalf("max hp = %d, want %d", a.player.MaxHP, hp+cfg.StatMaxHPBonus)
	}
	if a.player.HP != a.player.MaxHP {
		t.Fatalf("current hp %d did not gain the bonus", a.player.HP)
	}

	speed := a.player.MoveSpeed
	a.applyStatBoost(StatMoveSpeed)
	if a.player.MoveSpeed != speed*cfg.StatSpeedMult {
		t.Fatalf("move speed = %f, want %f", a.player.MoveSpeed, speed*cfg.StatSpeedMult)
	}

	a.applyStatBoost(StatDamage)
	if a.player.DamageMult != cfg.StatDamageMult {
		t.Fatalf("damage mult = %f, want %f", a.player.DamageMult, cfg.StatDamageMult)
	}

	pickup := a.player.PickupRadius
	a.applyStatBoost(StatPickupRadius)
	if a.player.PickupRadius != pickup*cfg.StatPickupMult {
		t.Fatalf("pickup radius = %f, want %f", a.player.PickupRadius, pickup*cfg.StatPickupMult)
	}
}

func TestChainedLevelUpsPauseAgain(t *testing.T) {
	a := newTestArena(t, quietConfig())
	// Bank enough XP for two levels in one grant.
	a.grantXP(a.xpToNext + a.xpThresholdAt(2))

	if a.level != 2 {
		t.Fatalf("level after grant = %d, want 2 (second level pending)", a.level)
	}
	a.ApplyUpgrade(0)
	if a.level != 3 {
		t.Fatalf("level after first choice = %d, want 3", a.level)
	}
	if !a.levelingUp {
		t.Fatalf("banked XP did not trigger the next level-up")
	}
}

// xpThresholdAt evaluates the threshold formula for an arbitrary level
// without mutating arena state.
func (a *Arena) xpThresholdAt(level int) int {
	saved := a.level
	a.level = level
	defer func() { a.level = saved }()
	return a.xpThreshold()
}
