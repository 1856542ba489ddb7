package plugins

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/goatkit/adminshell/pkg/plugin"
)

// AuditEntry is one recorded lifecycle change.
type AuditEntry struct {
	Time          time.Time
	Action        string // registered, activated, deactivated
	ActivePlugins []string
}

// AuditLog records its own lifecycle changes together with the set of
// plugins that were active at the time.
type AuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
	now     func() time.Time
}

// NewAuditLog creates an audit log module instance.
func NewAuditLog() *AuditLog {
	return &AuditLog{now: time.Now}
}

// Descriptor returns the module descriptor with its hooks attached.
func (a *AuditLog) Descriptor() (plugin.Descriptor, error) {
	d, err := loadManifest("audit-log")
	if err != nil {
		return d, err
	}
	d.OnRegister = a.record("registered")
	d.OnActivate = a.record("activated")
	d.OnDeactivate = a.record("deactivated")
	return d, nil
}

// Entries returns the recorded entries, oldest first.
func (a *AuditLog) Entries() []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.entries)
}

func (a *AuditLog) record(action string) plugin.Hook {
	return func(_ context.Context, app plugin.AppContext) error {
		view := app.Registry()
		var active []string
		for _, d := range view.List() {
			if ok, err := view.IsActive(d.ID); err == nil && ok {
				active = append(active, d.ID)
			}
		}

		a.mu.Lock()
		a.entries = append(a.entries, AuditEntry{Time: a.now(), Action: action, ActivePlugins: active})
		a.mu.Unlock()

		app.Log("info", "audit log "+action, map[string]any{"active_plugins": len(active)})
		return nil
	}
}
