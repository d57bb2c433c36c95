package arena

import "math/rand"

// ArchetypeID identifies an enemy archetype in the spawn table.
type ArchetypeID string

const (
	// ArchetypeScript is the baseline walker.
	ArchetypeScript ArchetypeID = "script"
	// ArchetypeWorm is the fast low-HP swarm type; it spawns in clusters.
	ArchetypeWorm ArchetypeID = "worm"
	// ArchetypeTrojan is the slow tank.
	ArchetypeTrojan ArchetypeID = "trojan"
	// ArchetypeRootkit is the late-run fast bruiser.
	ArchetypeRootkit ArchetypeID = "rootkit"
)

// ArchetypeStats is static per-archetype tuning, read-only at runtime.
type ArchetypeStats struct {
	Speed       float64 `json:"speed"`
	HPMin       int     `json:"hpMin"`
	HPMax       int     `json:"hpMax"`
	XPValue     int     `json:"xpValue"`
	Radius      float64 `json:"radius"`
	GroupMin    int     `json:"groupMin"`
	GroupMax    int     `json:"groupMax"`
	GroupJitter float64 `json:"groupJitter" jsonschema:"description=Maximum offset of extra group members from the spawn point"`
}

// SpawnBracket is one window of the run's spawn schedule. Brackets are
// ordered and non-overlapping; EndMs of zero marks the final open-ended
// bracket.
type SpawnBracket struct {
	StartMs    float64       `json:"startMs"`
	EndMs      float64       `json:"endMs" jsonschema:"description=Exclusive end of the window; zero means unbounded"`
	Archetypes []ArchetypeID `json:"archetypes"`
	IntervalMs float64       `json:"intervalMs"`
	HPMult     float64       `json:"hpMult"`
}

// SpawnConfig is the full spawn table: archetype stats plus the bracket
// schedule.
type SpawnConfig struct {
	Archetypes map[ArchetypeID]ArchetypeStats `json:"archetypes"`
	Brackets   []SpawnBracket                 `json:"brackets"`
}

// BracketFor returns the first bracket whose window contains elapsedMs. Time
// beyond every configured window lands in the last bracket, which models
// endless scaling instead of erroring.
func (s SpawnConfig) BracketFor(elapsedMs float64) SpawnBracket {
	if len(s.Brackets) == 0 {
		return SpawnBracket{IntervalMs: 1000, HPMult: 1}
	}
	for _, bracket := range s.Brackets {
		if elapsedMs < bracket.StartMs {
			continue
		}
		if bracket.EndMs <= 0 || elapsedMs < bracket.EndMs {
			return bracket
		}
	}
	return s.Brackets[len(s.Brackets)-1]
}

// Stats resolves archetype stats, falling back to the baseline archetype for
// unknown ids.
func (s SpawnConfig) Stats(id ArchetypeID) ArchetypeStats {
	if stats, ok := s.Archetypes[id]; ok {
		return stats
	}
	if stats, ok := s.Archetypes[ArchetypeScript]; ok {
		return stats
	}
	return ArchetypeStats{Speed: 60, HPMin: 1, HPMax: 1, XPValue: 1, Radius: 10, GroupMin: 1, GroupMax: 1}
}

// RollHP draws a uniform HP value in the archetype's range and applies the
// bracket multiplier, floored at 1.
func (s SpawnConfig) RollHP(rng *rand.Rand, id ArchetypeID, mult float64) int {
	stats := s.Stats(id)
	min, max := stats.HPMin, stats.HPMax
	if max < min {
		max = min
	}
	hp := min
	if span := max - min; span > 0 {
		hp += rng.Intn(span + 1)
	}
	if mult > 0 {
		hp = int(float64(hp) * mult)
	}
	if hp < 1 {
		hp = 1
	}
	return hp
}

// RollGroupSize draws a uniform group count in the archetype's range,
// floored at 1.
func (s SpawnConfig) RollGroupSize(rng *rand.Rand, id ArchetypeID) int {
	stats := s.Stats(id)
	min, max := stats.GroupMin, stats.GroupMax
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	size := min
	if span := max - min; span > 0 {
		size += rng.Intn(span + 1)
	}
	return size
}

// PickArchetype selects uniformly from the bracket's eligible set, falling
// back to the baseline archetype for empty brackets.
func (s SpawnConfig) PickArchetype(rng *rand.Rand, bracket SpawnBracket) ArchetypeID {
	if len(bracket.Archetypes) == 0 {
		return ArchetypeScript
	}
	return bracket.Archetypes[rng.Intn(len(bracket.Archetypes))]
}

func defaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Archetypes: map[ArchetypeID]ArchetypeStats{
			ArchetypeScript: {
				Speed:    60,
				HPMin:    2,
				HPMax:    4,
				XPValue:  2,
				Radius:   11,
				GroupMin: 1,
				GroupMax: 1,
			},
			ArchetypeWorm: {
				Speed:       110,
				HPMin:       1,
				HPMax:       1,
				XPValue:     1,
				Radius:      7,
				GroupMin:    3,
				GroupMax:    6,
				GroupJitter: 46,
			},
			ArchetypeTrojan: {
				Speed:    38,
				HPMin:    10,
				HPMax:    16,
				XPValue:  6,
				Radius:   18,
				GroupMin: 1,
				GroupMax: 1,
			},
			ArchetypeRootkit: {
				Speed:       88,
				HPMin:       8,
				HPMax:       12,
				XPValue:     8,
				Radius:      13,
				GroupMin:    1,
				GroupMax:    2,
				GroupJitter: 30,
			},
		},
		Brackets: []SpawnBracket{
			{StartMs: 0, EndMs: 30_000, Archetypes: []ArchetypeID{ArchetypeScript}, IntervalMs: 1200, HPMult: 1},
			{StartMs: 30_000, EndMs: 60_000, Archetypes: []ArchetypeID{ArchetypeScript, ArchetypeWorm}, IntervalMs: 900, HPMult: 1},
			{StartMs: 60_000, EndMs: 120_000, Archetypes: []ArchetypeID{ArchetypeScript, ArchetypeWorm, ArchetypeTrojan}, IntervalMs: 700, HPMult: 1.5},
			{StartMs: 120_000, EndMs: 180_000, Archetypes: []ArchetypeID{ArchetypeWorm, ArchetypeTrojan}, IntervalMs: 550, HPMult: 2},
			{StartMs: 180_000, EndMs: 0, Archetypes: []ArchetypeID{ArchetypeWorm, ArchetypeTrojan, ArchetypeRootkit}, IntervalMs: 400, HPMult: 3},
		},
	}
}
