package plugins

import (
	"context"
	"sync"
	"time"

	"github.com/goatkit/adminshell/pkg/plugin"
)

// Reports renders throughput and cycle-time reports from kanban data, so
// it only activates while kanban is active.
type Reports struct {
	mu        sync.Mutex
	startedAt time.Time
	now       func() time.Time
}

// NewReports creates a reports module instance.
func NewReports() *Reports {
	return &Reports{now: time.Now}
}

// Descriptor returns the module descriptor with its hooks attached.
func (r *Reports) Descriptor() (plugin.Descriptor, error) {
	d, err := loadManifest("reports")
	if err != nil {
		return d, err
	}
	d.OnActivate = r.onActivate
	d.OnDeactivate = r.onDeactivate
	return d, nil
}

// Running reports whether the module is active and since when.
func (r *Reports) Running() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startedAt, !r.startedAt.IsZero()
}

func (r *Reports) onActivate(_ context.Context, app plugin.AppContext) error {
	active, err := app.Registry().IsActive("kanban")
	if err != nil || !active {
		return plugin.Errorf("kanban_required", "reports need the kanban module to be active")
	}

	r.mu.Lock()
	r.startedAt = r.now()
	r.mu.Unlock()
	app.Log("info", "report collectors started", nil)
	return nil
}

func (r *Reports) onDeactivate(_ context.Context, app plugin.AppContext) error {
	r.mu.Lock()
	r.startedAt = time.Time{}
	r.mu.Unlock()
	app.Log("info", "report collectors stopped", nil)
	return nil
}
