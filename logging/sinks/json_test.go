package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"grind-and-gain/server/logging"
)

func TestJSONWritesNewlineDelimitedEvents(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSON(&buf, 0)

	events := []logging.Event{
		{Type: "lifecycle.run_started", Tick: 1, Severity: logging.SeverityInfo},
		{Type: "combat.enemy_killed", Tick: 9, Severity: logging.SeverityInfo, Category: logging.CategoryCombat},
	}
	for _, event := range events {
		if err := sink.Write(event); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(events) {
		t.Fatalf("output lines = %d, want %d", len(lines), len(events))
	}
	for i, line := range lines {
		var decoded logging.Event
		if err := json.Unmarshal([]byte(line), &decoded); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if decoded.Type != events[i].Type || decoded.Tick != events[i].Tick {
			t.Fatalf("line %d decoded as %+v, want type %s tick %d", i, decoded, events[i].Type, events[i].Tick)
		}
	}
}

func TestJSONCloseFlushesBufferedOutput(t *testing.T) {
	var buf bytes.Buffer
	// A long flush interval keeps the write buffered until Close.
	sink := NewJSON(&buf, time.Hour)

	if err := sink.Write(logging.Event{Type: "lifecycle.run_ended", Tick: 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.Contains(buf.String(), "lifecycle.run_ended") {
		t.Fatalf("close did not flush the buffered event: %q", buf.String())
	}

	// Double close is a no-op.
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestConsoleColorToggle(t *testing.T) {
	event := logging.Event{Type: "combat.player_hit", Tick: 4, Severity: logging.SeverityWarn}

	var plain bytes.Buffer
	if err := NewConsole(&plain, logging.ConsoleConfig{}).Write(event); err != nil {
		t.Fatalf("plain write: %v", err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("color escapes emitted with color disabled: %q", plain.String())
	}
	if !strings.Contains(plain.String(), "severity=warn") {
		t.Fatalf("severity label missing: %q", plain.String())
	}

	var colored bytes.Buffer
	if err := NewConsole(&colored, logging.ConsoleConfig{UseColor: true}).Write(event); err != nil {
		t.Fatalf("colored write: %v", err)
	}
	if !strings.Contains(colored.String(), "\x1b[33mwarn\x1b[0m") {
		t.Fatalf("warn severity not colorized: %q", colored.String())
	}
}
