package plugin

import (
	"log/slog"
	"testing"
	"time"
)

func TestLogBuffer(t *testing.T) {
	t.Run("Add and All", func(t *testing.T) {
		buf := NewLogBuffer(10)

		buf.Log("kanban", "info", "test message 1", nil)
		buf.Log("kanban", "error", "test message 2", map[string]any{"key": "value"})

		entries := buf.All()
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}

		// Newest first
		if entries[0].Message != "test message 2" {
			t.Errorf("expected newest first, got %s", entries[0].Message)
		}
		if entries[0].Level != slog.LevelError {
			t.Errorf("expected error level, got %s", entries[0].Level)
		}
	})

	t.Run("Ring buffer overflow", func(t *testing.T) {
		buf := NewLogBuffer(3)

		buf.Log("p1", "info", "msg1", nil)
		buf.Log("p1", "info", "msg2", nil)
		buf.Log("p1", "info", "msg3", nil)
		buf.Log("p1", "info", "msg4", nil) // overwrites msg1

		entries := buf.All()
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0].Message != "msg4" || entries[2].Message != "msg2" {
			t.Errorf("unexpected order: %v", entries)
		}
	})

	t.Run("ByPlugin", func(t *testing.T) {
		buf := NewLogBuffer(10)

		buf.Log("plugin-a", "info", "msg from a", nil)
		buf.Log("plugin-b", "info", "msg from b", nil)
		buf.Log("plugin-a", "error", "error from a", nil)

		entries := buf.ByPlugin("plugin-a")
		if len(entries) != 2 {
			t.Errorf("expected 2 entries for plugin-a, got %d", len(entries))
		}
		for _, e := range entries {
			if e.PluginID != "plugin-a" {
				t.Errorf("expected plugin-a, got %s", e.PluginID)
			}
		}
	})

	t.Run("MinLevel", func(t *testing.T) {
		buf := NewLogBuffer(10)

		buf.Log("p1", "debug", "debug msg", nil)
		buf.Log("p1", "info", "info msg", nil)
		buf.Log("p1", "warn", "warn msg", nil)
		buf.Log("p1", "error", "error msg", nil)

		if n := len(buf.MinLevel(slog.LevelWarn)); n != 2 {
			t.Errorf("expected 2 entries (warn+error), got %d", n)
		}
		if n := len(buf.MinLevel(slog.LevelError)); n != 1 {
			t.Errorf("expected 1 entry (error), got %d", n)
		}
	})

	t.Run("Recent", func(t *testing.T) {
		buf := NewLogBuffer(10)
		for i := 0; i < 5; i++ {
			buf.Log("p1", "info", "msg", nil)
		}

		if n := len(buf.Recent(3)); n != 3 {
			t.Errorf("expected 3 entries, got %d", n)
		}
		if n := len(buf.Recent(100)); n != 5 {
			t.Errorf("expected 5 entries, got %d", n)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		buf := NewLogBuffer(10)
		buf.Log("p1", "info", "msg", nil)
		buf.Log("p1", "info", "msg", nil)

		if buf.Len() != 2 {
			t.Errorf("expected 2, got %d", buf.Len())
		}
		buf.Clear()
		if buf.Len() != 0 {
			t.Errorf("expected 0 after clear, got %d", buf.Len())
		}
	})

	t.Run("Timestamp", func(t *testing.T) {
		buf := NewLogBuffer(10)

		before := time.Now()
		buf.Log("p1", "info", "msg", nil)
		after := time.Now()

		entries := buf.All()
		if entries[0].Timestamp.Before(before) || entries[0].Timestamp.After(after) {
			t.Error("timestamp out of range")
		}
	})
}

func TestNewLogBufferInvalidSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		buf := NewLogBuffer(size)
		if len(buf.entries) != 1000 {
			t.Errorf("NewLogBuffer(%d): expected default 1000, got %d", size, len(buf.entries))
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
