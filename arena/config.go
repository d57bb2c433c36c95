package arena

const defaultRunSeed = "botnet"

// Config supplies every numeric tunable the simulation reads. It is
// injected at construction and never mutated afterwards. The schema
// exporter reflects over this type, so designer-facing fields carry
// jsonschema descriptions.
type Config struct {
	Seed        string            `json:"seed" jsonschema:"description=Seed for the run RNG; empty selects the default seed"`
	ArenaWidth  float64           `json:"arenaWidth" jsonschema:"description=Arena width in world units"`
	ArenaHeight float64           `json:"arenaHeight" jsonschema:"description=Arena height in world units"`
	Player      PlayerConfig      `json:"player"`
	Weapons     WeaponsConfig     `json:"weapons"`
	Progression ProgressionConfig `json:"progression"`
	Gems        GemConfig         `json:"gems"`
	Score       ScoreConfig       `json:"score"`
	Spawning    SpawnConfig       `json:"spawning"`
}

// PlayerConfig holds the player's starting stats.
type PlayerConfig struct {
	MaxHP        int     `json:"maxHp"`
	MoveSpeed    float64 `json:"moveSpeed" jsonschema:"description=World units per second"`
	Radius       float64 `json:"radius"`
	PickupRadius float64 `json:"pickupRadius" jsonschema:"description=Gem magnetism radius"`
	IFrameMs     float64 `json:"iframeMs" jsonschema:"description=Invincibility window after contact damage"`
}

// WeaponsConfig groups the per-weapon tuning blocks.
type WeaponsConfig struct {
	Directional DirectionalConfig `json:"directional"`
	Orbital     OrbitalConfig     `json:"orbital"`
	Ring        RingConfig        `json:"ring"`
	Homing      HomingConfig      `json:"homing"`
}

// DirectionalConfig tunes the baseline straight-shot weapon.
type DirectionalConfig struct {
	Damage          int     `json:"damage"`
	DamagePerLevel  int     `json:"damagePerLevel"`
	CooldownMs      float64 `json:"cooldownMs"`
	CooldownScale   float64 `json:"cooldownScale" jsonschema:"description=Cooldown multiplier applied per level above 1"`
	ProjectileSpeed float64 `json:"projectileSpeed"`
	LifetimeMs      float64 `json:"lifetimeMs"`
	Radius          float64 `json:"radius"`
}

// OrbitalConfig tunes the orbiting weapon. The projectile set is replaced on
// every interval; positions are recomputed analytically each tick.
type OrbitalConfig struct {
	Damage        int     `json:"damage"`
	BaseCount     int     `json:"baseCount"`
	CountPerLevel int     `json:"countPerLevel"`
	IntervalMs    float64 `json:"intervalMs" jsonschema:"description=Replacement cadence for the orbiting set"`
	OrbitRadius   float64 `json:"orbitRadius"`
	AngularSpeed  float64 `json:"angularSpeed" jsonschema:"description=Radians per second"`
	Radius        float64 `json:"radius"`
}

// RingConfig tunes the expanding-ring weapon.
type RingConfig struct {
	Damage         int     `json:"damage"`
	DamagePerLevel int     `json:"damagePerLevel"`
	CooldownMs     float64 `json:"cooldownMs"`
	ExpandSpeed    float64 `json:"expandSpeed" jsonschema:"description=Radius growth in world units per second"`
	MaxRadius      float64 `json:"maxRadius"`
	Width          float64 `json:"width" jsonschema:"description=Annulus thickness for the hit test"`
}

// HomingConfig tunes the target-seeking weapon.
type HomingConfig struct {
	Damage          int     `json:"damage"`
	DamagePerLevel  int     `json:"damagePerLevel"`
	CooldownMs      float64 `json:"cooldownMs"`
	ProjectileSpeed float64 `json:"projectileSpeed"`
	TurnRate        float64 `json:"turnRate" jsonschema:"description=Maximum heading change in radians per second"`
	LifetimeMs      float64 `json:"lifetimeMs"`
	Radius          float64 `json:"radius"`
}

// ProgressionConfig tunes the XP curve and upgrade generation.
type ProgressionConfig struct {
	BaseXP         int     `json:"baseXp"`
	ScalingFactor  float64 `json:"scalingFactor" jsonschema:"description=Threshold multiplier per level"`
	ChoiceCount    int     `json:"choiceCount"`
	MaxWeaponLevel int     `json:"maxWeaponLevel"`
	StatMaxHPBonus int     `json:"statMaxHpBonus"`
	StatSpeedMult  float64 `json:"statSpeedMult"`
	StatDamageMult float64 `json:"statDamageMult"`
	StatPickupMult float64 `json:"statPickupMult"`
}

// GemConfig tunes XP gem magnetism and the active-gem cap.
type GemConfig struct {
	Cap           int     `json:"cap" jsonschema:"description=Maximum simultaneously active gems"`
	Radius        float64 `json:"radius"`
	CollectRadius float64 `json:"collectRadius"`
	PullBase      float64 `json:"pullBase" jsonschema:"description=Pull speed at the pickup radius edge"`
	PullGain      float64 `json:"pullGain" jsonschema:"description=Extra pull speed as distance closes"`
}

// ScoreConfig tunes the per-tick score recomputation and the money payout.
type ScoreConfig struct {
	KillPoints    int     `json:"killPoints"`
	TimePoints    int     `json:"timePoints" jsonschema:"description=Points per whole survived second"`
	MoneyPerScore float64 `json:"moneyPerScore" jsonschema:"description=Linear score-to-money ratio"`
}

// normalized returns a config with defaults applied to zero values. Malformed
// sections fall back wholesale to their defaults so the simulation never has
// to guard against zero divisors.
func (cfg Config) normalized() Config {
	defaults := DefaultConfig()
	normalized := cfg
	if normalized.Seed == "" {
		normalized.Seed = defaultRunSeed
	}
	if normalized.ArenaWidth <= 0 {
		normalized.ArenaWidth = defaults.ArenaWidth
	}
	if normalized.ArenaHeight <= 0 {
		normalized.ArenaHeight = defaults.ArenaHeight
	}
	if normalized.Player.MaxHP <= 0 {
		normalized.Player = defaults.Player
	}
	if normalized.Weapons.Directional.CooldownMs <= 0 {
		normalized.Weapons.Directional = defaults.Weapons.Directional
	}
	if normalized.Weapons.Orbital.IntervalMs <= 0 {
		normalized.Weapons.Orbital = defaults.Weapons.Orbital
	}
	if normalized.Weapons.Ring.CooldownMs <= 0 {
		normalized.Weapons.Ring = defaults.Weapons.Ring
	}
	if normalized.Weapons.Homing.CooldownMs <= 0 {
		normalized.Weapons.Homing = defaults.Weapons.Homing
	}
	if normalized.Progression.BaseXP <= 0 {
		normalized.Progression = defaults.Progression
	}
	if normalized.Gems.Cap <= 0 {
		normalized.Gems = defaults.Gems
	}
	if normalized.Score.KillPoints <= 0 && normalized.Score.TimePoints <= 0 {
		normalized.Score = defaults.Score
	}
	if len(normalized.Spawning.Archetypes) == 0 || len(normalized.Spawning.Brackets) == 0 {
		normalized.Spawning = defaults.Spawning
	}
	return normalized
}

// DefaultConfig returns the shipped tuning for the Botnet Defense arena.
func DefaultConfig() Config {
	return Config{
		Seed:        defaultRunSeed,
		ArenaWidth:  800,
		ArenaHeight: 600,
		Player: PlayerConfig{
			MaxHP:        10,
			MoveSpeed:    220,
			Radius:       12,
			PickupRadius: 80,
			IFrameMs:     800,
		},
		Weapons: WeaponsConfig{
			Directional: DirectionalConfig{
				Damage:          1,
				DamagePerLevel:  1,
				CooldownMs:      900,
				CooldownScale:   0.9,
				ProjectileSpeed: 420,
				LifetimeMs:      1200,
				Radius:          6,
			},
			Orbital: OrbitalConfig{
				Damage:        1,
				BaseCount:     2,
				CountPerLevel: 1,
				IntervalMs:    400,
				OrbitRadius:   70,
				AngularSpeed:  2.4,
				Radius:        9,
			},
			Ring: RingConfig{
				Damage:         2,
				DamagePerLevel: 1,
				CooldownMs:     3000,
				ExpandSpeed:    240,
				MaxRadius:      180,
				Width:          18,
			},
			Homing: HomingConfig{
				Damage:          2,
				DamagePerLevel:  1,
				CooldownMs:      1500,
				ProjectileSpeed: 320,
				TurnRate:        6,
				LifetimeMs:      2500,
				Radius:          6,
			},
		},
		Progression: ProgressionConfig{
			BaseXP:         10,
			ScalingFactor:  1.4,
			ChoiceCount:    3,
			MaxWeaponLevel: 5,
			StatMaxHPBonus: 2,
			StatSpeedMult:  1.1,
			StatDamageMult: 1.1,
			StatPickupMult: 1.15,
		},
		Gems: GemConfig{
			Cap:           150,
			Radius:        5,
			CollectRadius: 14,
			PullBase:      60,
			PullGain:      260,
		},
		Score: ScoreConfig{
			KillPoints:    10,
			TimePoints:    5,
			MoneyPerScore: 0.1,
		},
		Spawning: defaultSpawnConfig(),
	}
}
