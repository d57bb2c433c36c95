package arena

import "grind-and-gain/server/minigame"

// Snapshot is an immutable projection of the run for the host's rendering
// layer. Every slice is freshly allocated, so readers can hold a snapshot
// across ticks without racing live state.
type Snapshot struct {
	Tick        uint64          `json:"tick"`
	Status      minigame.Status `json:"status"`
	ElapsedMs   float64         `json:"elapsedMs"`
	ArenaWidth  float64         `json:"arenaWidth"`
	ArenaHeight float64         `json:"arenaHeight"`
	Player      Player          `json:"player"`
	Weapons     []WeaponState   `json:"weapons"`
	Enemies     []Enemy         `json:"enemies"`
	Projectiles []Projectile    `json:"projectiles"`
	Gems        []XPGem         `json:"gems"`
	XP          int             `json:"xp"`
	XPToNext    int             `json:"xpToNext"`
	Level       int             `json:"level"`
	Kills       int             `json:"kills"`
	Score       int             `json:"score"`
	LevelingUp  bool            `json:"levelingUp"`
	Choices     []UpgradeChoice `json:"choices,omitempty"`
	MoneyEarned int             `json:"moneyEarned"`
}

// Snapshot captures the current run state.
func (a *Arena) Snapshot() Snapshot {
	snapshot := Snapshot{
		Tick:        a.tick,
		Status:      a.life.Status(),
		ElapsedMs:   a.life.ElapsedMs(),
		ArenaWidth:  a.cfg.ArenaWidth,
		ArenaHeight: a.cfg.ArenaHeight,
		Player:      a.player,
		Weapons:     append([]WeaponState(nil), a.weapons...),
		XP:          a.xp,
		XPToNext:    a.xpToNext,
		Level:       a.level,
		Kills:       a.kills,
		Score:       a.life.Score(),
		LevelingUp:  a.levelingUp,
		MoneyEarned: a.moneyEarned,
	}
	if len(a.enemies) > 0 {
		snapshot.Enemies = make([]Enemy, 0, len(a.enemies))
		for _, enemy := range a.enemies {
			if enemy.Active {
				snapshot.Enemies = append(snapshot.Enemies, enemy)
			}
		}
	}
	if len(a.projectiles) > 0 {
		snapshot.Projectiles = make([]Projectile, 0, len(a.projectiles))
		for _, p := range a.projectiles {
			if p.Active {
				snapshot.Projectiles = append(snapshot.Projectiles, p)
			}
		}
	}
	if len(a.gems) > 0 {
		snapshot.Gems = make([]XPGem, 0, len(a.gems))
		for _, gem := range a.gems {
			if gem.Active {
				snapshot.Gems = append(snapshot.Gems, gem)
			}
		}
	}
	if len(a.choices) > 0 {
		snapshot.Choices = append([]UpgradeChoice(nil), a.choices...)
	}
	return snapshot
}
