// Package minigame provides the run lifecycle shared by every minigame:
// a start/pause/resume/end state machine with elapsed-time tracking and
// generic score bookkeeping. Concrete minigames plug their per-tick logic
// in through Hooks.
package minigame

// Status enumerates the lifecycle states of a run.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
	StatusEnded   Status = "ended"
)

// Hooks holds the callbacks a minigame registers with its lifecycle.
type Hooks struct {
	// Reset clears the minigame's run-scoped state. Invoked by Start.
	Reset func()
	// Tick advances the minigame by deltaMs. Invoked by Update while playing.
	Tick func(deltaMs float64)
	// Finish runs exactly once when the run ends.
	Finish func()
}

// Lifecycle is the generic run state machine. It is not safe for concurrent
// use; the owning minigame serializes access.
type Lifecycle struct {
	status      Status
	elapsedMs   float64
	timeLimitMs float64
	score       int
	combo       int
	bestCombo   int
	hooks       Hooks
	finished    bool
}

// NewLifecycle constructs an idle lifecycle. A timeLimitMs of zero disables
// the time-limit termination check.
func NewLifecycle(timeLimitMs float64, hooks Hooks) *Lifecycle {
	if timeLimitMs < 0 {
		timeLimitMs = 0
	}
	return &Lifecycle{
		status:      StatusIdle,
		timeLimitMs: timeLimitMs,
		hooks:       hooks,
	}
}

// Status returns the current lifecycle state.
func (l *Lifecycle) Status() Status {
	return l.status
}

// ElapsedMs returns the accumulated play time, excluding paused stretches.
func (l *Lifecycle) ElapsedMs() float64 {
	return l.elapsedMs
}

// Start resets run-scoped state and begins playing. Calling Start mid-run
// restarts the run.
func (l *Lifecycle) Start() {
	l.elapsedMs = 0
	l.score = 0
	l.combo = 0
	l.bestCombo = 0
	l.finished = false
	if l.hooks.Reset != nil {
		l.hooks.Reset()
	}
	l.status = StatusPlaying
}

// Pause suspends the run. No-op unless playing.
func (l *Lifecycle) Pause() {
	if l.status == StatusPlaying {
		l.status = StatusPaused
	}
}

// Resume continues a paused run. No-op unless paused.
func (l *Lifecycle) Resume() {
	if l.status == StatusPaused {
		l.status = StatusPlaying
	}
}

// Update advances the run by deltaMs. No-op unless playing. Negative deltas
// are clamped to zero so a misbehaving host clock cannot rewind a run.
func (l *Lifecycle) Update(deltaMs float64) {
	if l.status != StatusPlaying {
		return
	}
	if deltaMs < 0 {
		deltaMs = 0
	}
	l.elapsedMs += deltaMs
	if l.hooks.Tick != nil {
		l.hooks.Tick(deltaMs)
	}
	if l.timeLimitMs > 0 && l.elapsedMs >= l.timeLimitMs && l.status == StatusPlaying {
		l.End()
	}
}

// End moves the run to its terminal state. The Finish hook fires exactly
// once no matter how many times End is called.
func (l *Lifecycle) End() {
	if l.status == StatusEnded {
		return
	}
	l.status = StatusEnded
	if l.finished {
		return
	}
	l.finished = true
	if l.hooks.Finish != nil {
		l.hooks.Finish()
	}
}

// Score returns the generic score counter.
func (l *Lifecycle) Score() int {
	return l.score
}

// SetScore overwrites the generic score counter. Minigames that recompute
// score from first principles each tick use this instead of AddScore.
func (l *Lifecycle) SetScore(score int) {
	if score < 0 {
		score = 0
	}
	l.score = score
}

// AddScore increments the generic score counter.
func (l *Lifecycle) AddScore(points int) {
	if points <= 0 {
		return
	}
	l.score += points
}

// Combo returns the current combo streak.
func (l *Lifecycle) Combo() int {
	return l.combo
}

// BestCombo returns the longest streak seen this run.
func (l *Lifecycle) BestCombo() int {
	return l.bestCombo
}

// ExtendCombo increments the streak and tracks the best streak.
func (l *Lifecycle) ExtendCombo() {
	l.combo++
	if l.combo > l.bestCombo {
		l.bestCombo = l.combo
	}
}

// BreakCombo resets the streak to zero.
func (l *Lifecycle) BreakCombo() {
	l.combo = 0
}
