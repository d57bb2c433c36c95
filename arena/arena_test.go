package arena

import (
	"math"
	"testing"
)

const tickMs = 100.0

// quietConfig disables enemy spawning so tests control the population.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Spawning.Brackets = []SpawnBracket{
		{StartMs: 0, EndMs: 0, Archetypes: []ArchetypeID{ArchetypeScript}, IntervalMs: 1e12, HPMult: 1},
	}
	return cfg
}

func newTestArena(t *testing.T, cfg Config) *Arena {
	t.Helper()
	a := New("test", cfg, nil)
	a.Start()
	return a
}

func injectEnemy(a *Arena, pos Vec, hp int) *Enemy {
	a.enemies = append(a.enemies, Enemy{
		ID:        a.allocID(),
		Archetype: ArchetypeScript,
		Pos:       pos,
		Radius:    10,
		HP:        hp,
		MaxHP:     hp,
		XPValue:   2,
		Active:    true,
	})
	return &a.enemies[len(a.enemies)-1]
}

func injectProjectile(a *Arena, kind WeaponKind, pos Vec, damage int) *Projectile {
	a.projectiles = append(a.projectiles, Projectile{
		ID:         a.allocID(),
		Kind:       kind,
		Pos:        pos,
		Radius:     6,
		Damage:     damage,
		LifetimeMs: 10_000,
		Active:     true,
	})
	return &a.projectiles[len(a.projectiles)-1]
}

func TestIdleRunScoresTimePointsOnly(t *testing.T) {
	cfg := quietConfig()
	a := newTestArena(t, cfg)
	start := a.player.Pos

	for i := 0; i < 30; i++ {
		a.Update(tickMs)
	}

	if a.player.Pos != start {
		t.Fatalf("player moved without input: %+v -> %+v", start, a.player.Pos)
	}
	wantScore := 3 * cfg.Score.TimePoints
	if got := a.life.Score(); got != wantScore {
		t.Fatalf("score after 3s idle = %d, want %d", got, wantScore)
	}
	if a.kills != 0 {
		t.Fatalf("kills after idle run = %d, want 0", a.kills)
	}
}

func TestMovementDiagonalMatchesCardinalSpeed(t *testing.T) {
	a := newTestArena(t, quietConfig())
	start := a.player.Pos

	a.SetInput(Input{Right: true})
	a.Update(tickMs)
	cardinal := a.player.Pos.Sub(start).Length()

	a = newTestArena(t, quietConfig())
	start = a.player.Pos
	a.SetInput(Input{Right: true, Down: true})
	a.Update(tickMs)
	diagonal := a.player.Pos.Sub(start).Length()

	if math.Abs(cardinal-diagonal) > 1e-9 {
		t.Fatalf("diagonal distance %f != cardinal distance %f", diagonal, cardinal)
	}
}

func TestMovementClampsToArenaBounds(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.SetInput(Input{Left: true, Up: true})
	for i := 0; i < 200; i++ {
		a.Update(tickMs)
	}
	if a.player.Pos.X != a.player.Radius || a.player.Pos.Y != a.player.Radius {
		t.Fatalf("player escaped bounds: %+v", a.player.Pos)
	}
}

func TestFacingPersistsWhenIdle(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.SetInput(Input{Up: true})
	a.Update(tickMs)
	want := a.player.Facing

	a.SetInput(Input{})
	a.Update(tickMs)
	if a.player.Facing != want {
		t.Fatalf("facing changed while idle: %+v -> %+v", want, a.player.Facing)
	}
}

func TestSingleHitKillDropsOneGem(t *testing.T) {
	a := newTestArena(t, quietConfig())
	enemyPos := Vec{X: 100, Y: 100}
	injectEnemy(a, enemyPos, 1)
	injectProjectile(a, WeaponDirectional, enemyPos, 1)
	a.DrainEvents()

	a.Update(tickMs)

	for _, enemy := range a.enemies {
		if enemy.Active {
			t.Fatalf("enemy survived a lethal hit: %+v", enemy)
		}
	}
	if a.kills != 1 {
		t.Fatalf("kills = %d, want 1", a.kills)
	}
	gems := 0
	for _, gem := range a.gems {
		if gem.Active {
			gems++
		}
	}
	if gems != 1 {
		t.Fatalf("active gems = %d, want 1", gems)
	}

	var killed bool
	for _, event := range a.DrainEvents() {
		if event.Kind == EventEnemyKilled {
			killed = true
		}
	}
	if !killed {
		t.Fatalf("no enemy-killed event emitted")
	}
}

func TestContactDamageOncePerTickWithIFrames(t *testing.T) {
	a := newTestArena(t, quietConfig())
	center := a.player.Pos
	injectEnemy(a, center, 100)
	injectEnemy(a, center, 100)

	hpBefore := a.player.HP
	a.Update(tickMs)
	if got := hpBefore - a.player.HP; got != 1 {
		t.Fatalf("player lost %d hp with two overlapping enemies, want 1", got)
	}
	if a.player.IFrameMs <= 0 {
		t.Fatalf("no i-frames granted after hit")
	}

	hpAfterHit := a.player.HP
	a.Update(tickMs)
	if a.player.HP != hpAfterHit {
		t.Fatalf("player took damage during i-frames: %d -> %d", hpAfterHit, a.player.HP)
	}
}

func TestPlayerHPClampedAndDeathEndsRun(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.player.HP = 1
	injectEnemy(a, a.player.Pos, 100)
	a.DrainEvents()

	a.Update(tickMs)

	if a.player.HP != 0 {
		t.Fatalf("player hp = %d, want 0", a.player.HP)
	}
	if got := a.Status(); got != "ended" {
		t.Fatalf("status after death = %s, want ended", got)
	}

	var ended int
	for _, event := range a.DrainEvents() {
		if event.Kind == EventRunEnded {
			ended++
		}
	}
	if ended != 1 {
		t.Fatalf("run-ended events = %d, want 1", ended)
	}

	a.End()
	if events := a.DrainEvents(); len(events) != 0 {
		t.Fatalf("second End emitted %d events, want 0", len(events))
	}
}

func TestGemCollectionTriggersExactThresholdLevelUp(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.gems = append(a.gems, XPGem{
		ID:     a.allocID(),
		Pos:    a.player.Pos,
		Radius: 5,
		Value:  a.xpToNext,
		Active: true,
	})

	a.Update(tickMs)

	if a.xp != 0 {
		t.Fatalf("xp after exact-threshold level up = %d, want 0", a.xp)
	}
	if a.level != 2 {
		t.Fatalf("level = %d, want 2", a.level)
	}
	if !a.levelingUp {
		t.Fatalf("leveling-up sub-state not entered")
	}
	if got := a.Status(); got != "paused" {
		t.Fatalf("status during level up = %s, want paused", got)
	}
	if len(a.choices) == 0 {
		t.Fatalf("no upgrade choices generated")
	}
}

func TestGemMagnetismPullsWithinPickupRadius(t *testing.T) {
	a := newTestArena(t, quietConfig())
	gemPos := a.player.Pos.Add(Vec{X: a.player.PickupRadius - 5})
	a.gems = append(a.gems, XPGem{ID: a.allocID(), Pos: gemPos, Radius: 5, Value: 1, Active: true})

	a.Update(tickMs)

	moved := a.gems[0].Pos
	if distanceSquared(moved, a.player.Pos) >= distanceSquared(gemPos, a.player.Pos) {
		t.Fatalf("gem did not move toward player: %+v -> %+v", gemPos, moved)
	}

	// Outside the pickup radius nothing moves.
	a = newTestArena(t, quietConfig())
	farPos := a.player.Pos.Add(Vec{X: a.player.PickupRadius + 50})
	a.gems = append(a.gems, XPGem{ID: a.allocID(), Pos: farPos, Radius: 5, Value: 1, Active: true})
	a.Update(tickMs)
	if a.gems[0].Pos != farPos {
		t.Fatalf("gem outside pickup radius moved: %+v -> %+v", farPos, a.gems[0].Pos)
	}
}

func TestGemCapSilentlySkipsSpawns(t *testing.T) {
	cfg := quietConfig()
	cfg.Gems.Cap = 2
	a := newTestArena(t, cfg)

	for i := 0; i < 5; i++ {
		a.spawnGem(Vec{X: float64(10 * i), Y: 10}, 1)
	}
	if got := a.activeGemCount(); got != 2 {
		t.Fatalf("active gems = %d, want cap of 2", got)
	}
}

func TestScoreRecomputationIsIdempotent(t *testing.T) {
	a := newTestArena(t, quietConfig())
	a.kills = 7
	for i := 0; i < 12; i++ {
		a.Update(tickMs)
	}

	a.recomputeScore()
	first := a.life.Score()
	a.recomputeScore()
	if second := a.life.Score(); second != first {
		t.Fatalf("score changed on recomputation: %d -> %d", first, second)
	}
	want := 7*a.cfg.Score.KillPoints + 1*a.cfg.Score.TimePoints
	if first != want {
		t.Fatalf("score = %d, want %d", first, want)
	}
}

func TestMoneyRewardUsesLinearRatio(t *testing.T) {
	cfg := quietConfig()
	cfg.Score.MoneyPerScore = 0.5
	a := newTestArena(t, cfg)
	a.life.SetScore(101)
	if got := a.MoneyReward(); got != 50 {
		t.Fatalf("money reward = %d, want 50", got)
	}
}

func TestEntityIDsNeverReused(t *testing.T) {
	a := newTestArena(t, quietConfig())
	first := injectEnemy(a, Vec{X: 50, Y: 50}, 1).ID
	injectProjectile(a, WeaponDirectional, Vec{X: 50, Y: 50}, 1)
	a.Update(tickMs)

	second := injectEnemy(a, Vec{X: 60, Y: 60}, 1).ID
	if second <= first {
		t.Fatalf("id reused after cleanup: first=%d second=%d", first, second)
	}
}

func TestSnapshotIsDetachedFromLiveState(t *testing.T) {
	a := newTestArena(t, quietConfig())
	injectEnemy(a, Vec{X: 50, Y: 50}, 5)

	snapshot := a.Snapshot()
	if len(snapshot.Enemies) != 1 {
		t.Fatalf("snapshot enemies = %d, want 1", len(snapshot.Enemies))
	}
	snapshot.Enemies[0].HP = 999
	snapshot.Weapons[0].Level = 99

	if a.enemies[0].HP != 5 {
		t.Fatalf("mutating snapshot changed live enemy hp to %d", a.enemies[0].HP)
	}
	if a.weapons[0].Level != 1 {
		t.Fatalf("mutating snapshot changed live weapon level to %d", a.weapons[0].Level)
	}
}

func TestSpawnerProducesEnemiesOnSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spawning.Brackets = []SpawnBracket{
		{StartMs: 0, EndMs: 0, Archetypes: []ArchetypeID{ArchetypeScript}, IntervalMs: 500, HPMult: 1},
	}
	// Expire shots immediately so the starting weapon cannot cull spawns.
	cfg.Weapons.Directional.LifetimeMs = 1
	a := newTestArena(t, cfg)

	for i := 0; i < 10; i++ {
		a.Update(tickMs)
	}
	if len(a.enemies) < 2 {
		t.Fatalf("spawner produced %d enemies after 1s at 500ms interval, want >= 2", len(a.enemies))
	}
	for _, enemy := range a.enemies {
		if enemy.HP < 1 {
			t.Fatalf("spawned enemy has hp %d", enemy.HP)
		}
	}
}

func TestEnemiesSeekPlayer(t *testing.T) {
	a := newTestArena(t, quietConfig())
	start := Vec{X: 0, Y: 0}
	injectEnemy(a, start, 100)
	a.enemies[0].Speed = 60

	a.Update(tickMs)

	before := distanceSquared(start, a.player.Pos)
	after := distanceSquared(a.enemies[0].Pos, a.player.Pos)
	if after >= before {
		t.Fatalf("enemy did not close distance: %f -> %f", before, after)
	}
}

func TestRestartResetsRunState(t *testing.T) {
	a := newTestArena(t, quietConfig())
	injectEnemy(a, Vec{X: 10, Y: 10}, 5)
	a.kills = 4
	a.Update(tickMs)

	a.Start()

	if len(a.enemies) != 0 || len(a.projectiles) != 0 || len(a.gems) != 0 {
		t.Fatalf("restart kept entities: %d enemies %d projectiles %d gems",
			len(a.enemies), len(a.projectiles), len(a.gems))
	}
	if a.kills != 0 || a.level != 1 || a.xp != 0 {
		t.Fatalf("restart kept progression: kills=%d level=%d xp=%d", a.kills, a.level, a.xp)
	}
	if a.player.HP != a.cfg.Player.MaxHP {
		t.Fatalf("restart kept player hp %d", a.player.HP)
	}
}
