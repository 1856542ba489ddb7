package plugin

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogEntry is one message recorded by a plugin through its AppContext.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	PluginID  string         `json:"plugin_id"`
	Level     slog.Level     `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LogBuffer is a fixed-size ring buffer of plugin log entries.
type LogBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	head    int
	count   int
}

// NewLogBuffer creates a buffer holding at most size entries.
func NewLogBuffer(size int) *LogBuffer {
	if size <= 0 {
		size = 1000
	}
	return &LogBuffer{entries: make([]LogEntry, size)}
}

// Add appends an entry, overwriting the oldest one when full.
func (b *LogBuffer) Add(e LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.head] = e
	b.head = (b.head + 1) % len(b.entries)
	if b.count < len(b.entries) {
		b.count++
	}
}

// Log records a message for pluginID at the named level
// (debug, info, warn or error; anything else is info).
func (b *LogBuffer) Log(pluginID, level, message string, fields map[string]any) {
	b.Add(LogEntry{
		Timestamp: time.Now(),
		PluginID:  pluginID,
		Level:     ParseLevel(level),
		Message:   message,
		Fields:    fields,
	})
}

// All returns every entry, newest first.
func (b *LogBuffer) All() []LogEntry {
	return b.collect(nil, -1)
}

// ByPlugin returns the entries of one plugin, newest first.
func (b *LogBuffer) ByPlugin(pluginID string) []LogEntry {
	return b.collect(func(e LogEntry) bool { return e.PluginID == pluginID }, -1)
}

// MinLevel returns entries at or above level, newest first.
func (b *LogBuffer) MinLevel(level slog.Level) []LogEntry {
	return b.collect(func(e LogEntry) bool { return e.Level >= level }, -1)
}

// Recent returns at most n entries, newest first.
func (b *LogBuffer) Recent(n int) []LogEntry {
	return b.collect(nil, n)
}

// Clear drops all entries.
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head = 0
	b.count = 0
}

// Len returns the number of entries held.
func (b *LogBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

func (b *LogBuffer) collect(keep func(LogEntry) bool, limit int) []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]LogEntry, 0, b.count)
	for i := 0; i < b.count; i++ {
		if limit >= 0 && len(result) == limit {
			break
		}
		e := b.entries[(b.head-1-i+len(b.entries))%len(b.entries)]
		if keep == nil || keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// ParseLevel maps a level name onto slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
