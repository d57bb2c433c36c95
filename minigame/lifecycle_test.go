package minigame

import "testing"

func TestLifecycleStartResetsState(t *testing.T) {
	resets := 0
	l := NewLifecycle(0, Hooks{Reset: func() { resets++ }})
	if got := l.Status(); got != StatusIdle {
		t.Fatalf("initial status = %s, want %s", got, StatusIdle)
	}

	l.Start()
	if got := l.Status(); got != StatusPlaying {
		t.Fatalf("status after Start = %s, want %s", got, StatusPlaying)
	}
	if resets != 1 {
		t.Fatalf("reset hook ran %d times, want 1", resets)
	}

	l.Update(500)
	l.AddScore(10)
	l.ExtendCombo()

	l.Start()
	if l.ElapsedMs() != 0 {
		t.Fatalf("elapsed after restart = %f, want 0", l.ElapsedMs())
	}
	if l.Score() != 0 {
		t.Fatalf("score after restart = %d, want 0", l.Score())
	}
	if l.Combo() != 0 || l.BestCombo() != 0 {
		t.Fatalf("combo after restart = %d/%d, want 0/0", l.Combo(), l.BestCombo())
	}
	if resets != 2 {
		t.Fatalf("reset hook ran %d times, want 2", resets)
	}
}

func TestLifecyclePauseResumeIdempotent(t *testing.T) {
	l := NewLifecycle(0, Hooks{})

	l.Resume()
	if got := l.Status(); got != StatusIdle {
		t.Fatalf("Resume while idle moved status to %s", got)
	}

	l.Start()
	l.Pause()
	l.Pause()
	if got := l.Status(); got != StatusPaused {
		t.Fatalf("status after double Pause = %s, want %s", got, StatusPaused)
	}

	l.Update(100)
	if l.ElapsedMs() != 0 {
		t.Fatalf("elapsed advanced while paused: %f", l.ElapsedMs())
	}

	l.Resume()
	l.Resume()
	if got := l.Status(); got != StatusPlaying {
		t.Fatalf("status after double Resume = %s, want %s", got, StatusPlaying)
	}
}

func TestLifecycleUpdateAccumulatesElapsed(t *testing.T) {
	ticked := 0.0
	l := NewLifecycle(0, Hooks{Tick: func(deltaMs float64) { ticked += deltaMs }})
	l.Start()

	for i := 0; i < 3; i++ {
		l.Update(100)
	}
	if l.ElapsedMs() != 300 {
		t.Fatalf("elapsed = %f, want 300", l.ElapsedMs())
	}
	if ticked != 300 {
		t.Fatalf("tick hook saw %f ms, want 300", ticked)
	}

	l.Update(-50)
	if l.ElapsedMs() != 300 {
		t.Fatalf("negative delta changed elapsed to %f", l.ElapsedMs())
	}
}

func TestLifecycleTimeLimitEndsRun(t *testing.T) {
	finishes := 0
	l := NewLifecycle(1000, Hooks{Finish: func() { finishes++ }})
	l.Start()

	l.Update(999)
	if got := l.Status(); got != StatusPlaying {
		t.Fatalf("status before limit = %s, want %s", got, StatusPlaying)
	}

	l.Update(1)
	if got := l.Status(); got != StatusEnded {
		t.Fatalf("status at limit = %s, want %s", got, StatusEnded)
	}
	if finishes != 1 {
		t.Fatalf("finish hook ran %d times, want 1", finishes)
	}
}

func TestLifecycleZeroLimitNeverExpires(t *testing.T) {
	l := NewLifecycle(0, Hooks{})
	l.Start()
	l.Update(1e9)
	if got := l.Status(); got != StatusPlaying {
		t.Fatalf("unbounded run ended: status = %s", got)
	}
}

func TestLifecycleEndFiresFinishOnce(t *testing.T) {
	finishes := 0
	l := NewLifecycle(0, Hooks{Finish: func() { finishes++ }})
	l.Start()

	l.End()
	l.End()
	if got := l.Status(); got != StatusEnded {
		t.Fatalf("status after End = %s, want %s", got, StatusEnded)
	}
	if finishes != 1 {
		t.Fatalf("finish hook ran %d times, want 1", finishes)
	}

	l.Update(100)
	if l.ElapsedMs() != 0 {
		t.Fatalf("Update advanced elapsed after End: %f", l.ElapsedMs())
	}
}

func TestLifecycleComboTracking(t *testing.T) {
	l := NewLifecycle(0, Hooks{})
	l.Start()

	for i := 0; i < 4; i++ {
		l.ExtendCombo()
	}
	l.BreakCombo()
	l.ExtendCombo()

	if l.Combo() != 1 {
		t.Fatalf("combo = %d, want 1", l.Combo())
	}
	if l.BestCombo() != 4 {
		t.Fatalf("best combo = %d, want 4", l.BestCombo())
	}
}
