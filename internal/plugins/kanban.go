package plugins

import (
	"context"
	"slices"
	"sync"

	"github.com/goatkit/adminshell/pkg/plugin"
)

// Kanban provides task boards. Boards are loaded when the module is
// activated and dropped when it is deactivated.
type Kanban struct {
	mu     sync.Mutex
	boards []string
	locked bool
}

// NewKanban creates a kanban module instance.
func NewKanban() *Kanban {
	return &Kanban{}
}

// Descriptor returns the module descriptor with its hooks attached.
func (k *Kanban) Descriptor() (plugin.Descriptor, error) {
	d, err := loadManifest("kanban")
	if err != nil {
		return d, err
	}
	d.OnRegister = k.onRegister
	d.OnActivate = k.onActivate
	d.OnDeactivate = k.onDeactivate
	return d, nil
}

// SetLocked makes the next activation fail with board_locked while set.
func (k *Kanban) SetLocked(locked bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.locked = locked
}

// Boards returns the loaded board titles.
func (k *Kanban) Boards() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return slices.Clone(k.boards)
}

func (k *Kanban) onRegister(_ context.Context, app plugin.AppContext) error {
	app.Log("debug", "kanban module registered", nil)
	return nil
}

func (k *Kanban) onActivate(_ context.Context, app plugin.AppContext) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.locked {
		return plugin.Errorf("board_locked", "boards are locked by another session")
	}
	k.boards = []string{
		app.T("board.default", "Team Board"),
		app.T("board.backlog", "Backlog"),
	}
	app.Log("info", "kanban boards loaded", map[string]any{"boards": len(k.boards)})
	return nil
}

func (k *Kanban) onDeactivate(_ context.Context, app plugin.AppContext) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	app.Log("info", "kanban boards unloaded", map[string]any{"boards": len(k.boards)})
	k.boards = nil
	return nil
}
