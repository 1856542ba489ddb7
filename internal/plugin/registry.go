package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/goatkit/adminshell/internal/apierrors"
)

// StateStore persists plugin activation flags as one id -> active map.
type StateStore interface {
	Load(ctx context.Context) (map[string]bool, error)
	Save(ctx context.Context, state map[string]bool) error
}

// Registry owns the registered plugin descriptors and their activation
// flags. Activation changes for one id are serialized; different ids
// proceed independently.
type Registry struct {
	mu      sync.RWMutex
	order   []string              // registration order
	plugins map[string]Descriptor // committed registrations
	pending map[string]Descriptor // OnRegister in flight
	state   map[string]bool       // activation flags, may hold ids not registered in this build
	transit map[string]State      // activating / deactivating

	locks     *keyLocks
	persistMu sync.Mutex
	syncMu    sync.Mutex

	store      StateStore
	i18n       Translator
	logger     *slog.Logger
	metrics    *Metrics
	logs       *LogBuffer
	batchLimit int

	subMu   sync.RWMutex
	subs    map[int]func(Event)
	nextSub int
}

// Option configures a Registry.
type Option func(*Registry)

// WithStore persists activation flags in s. Without a store flags live in
// memory only.
func WithStore(s StateStore) Option {
	return func(r *Registry) { r.store = s }
}

// WithTranslator merges plugin translations into t.
func WithTranslator(t Translator) Option {
	return func(r *Registry) { r.i18n = t }
}

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithMetrics records registry metrics in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithLogBuffer sets the buffer plugin hook logs are kept in.
func WithLogBuffer(b *LogBuffer) Option {
	return func(r *Registry) { r.logs = b }
}

// WithBatchConcurrency bounds how many ids a batch operation processes at once.
func WithBatchConcurrency(n int) Option {
	return func(r *Registry) { r.batchLimit = n }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		plugins:    make(map[string]Descriptor),
		pending:    make(map[string]Descriptor),
		state:      make(map[string]bool),
		transit:    make(map[string]State),
		locks:      newKeyLocks(),
		batchLimit: 4,
		subs:       make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.logs == nil {
		r.logs = NewLogBuffer(1000)
	}
	if r.batchLimit <= 0 {
		r.batchLimit = 1
	}
	return r
}

// Init loads the persisted activation flags. A load failure is returned as
// a *PersistenceError but leaves the registry usable with every plugin
// inactive.
func (r *Registry) Init(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	state, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Warn("plugin state unavailable, plugins start inactive", "error", err)
		return &PersistenceError{Op: "load", Err: err}
	}

	r.mu.Lock()
	r.state = make(map[string]bool, len(state))
	maps.Copy(r.state, state)
	r.updateCountsLocked()
	r.mu.Unlock()

	r.logger.Debug("plugin state loaded", "entries", len(state))
	return nil
}

// Register validates d, merges its translations and runs OnRegister. If the
// hook fails the registration is undone and the plugin never becomes
// visible. The translation namespace must be unused: core and namespaces
// the translator already holds are rejected with ErrNamespaceTaken.
//
// A persisted activation flag for d.ID applies immediately: a plugin saved
// as active is active once Register returns, and OnActivate is not called
// for it in this process. Hooks run on transitions only.
func (r *Registry) Register(ctx context.Context, d Descriptor) error {
	if err := d.Validate(); err != nil {
		return &invalidError{err: err}
	}
	d = d.Clone()

	r.mu.Lock()
	if _, exists := r.plugins[d.ID]; exists {
		r.mu.Unlock()
		return &DuplicateIDError{ID: d.ID}
	}
	if _, exists := r.pending[d.ID]; exists {
		r.mu.Unlock()
		return &DuplicateIDError{ID: d.ID}
	}
	if ns := d.Namespace(); ns != "" {
		if owner := r.namespaceOwnerLocked(ns); owner != "" {
			r.mu.Unlock()
			return &namespaceError{namespace: ns, owner: owner}
		}
		if ns == CoreNamespace || (r.i18n != nil && r.i18n.HasNamespace(ns)) {
			r.mu.Unlock()
			return &namespaceError{namespace: ns}
		}
	}
	r.pending[d.ID] = d
	r.mu.Unlock()

	r.mergeI18n(d)

	if d.OnRegister != nil {
		if err := r.runHook(ctx, HookRegister, d, d.OnRegister); err != nil {
			r.removeI18n(d)
			r.mu.Lock()
			delete(r.pending, d.ID)
			r.mu.Unlock()
			r.logger.Error("plugin registration rolled back", "plugin", d.ID, "error", err)
			return err
		}
	}

	r.mu.Lock()
	delete(r.pending, d.ID)
	r.plugins[d.ID] = d
	r.order = append(r.order, d.ID)
	active := r.state[d.ID]
	r.updateCountsLocked()
	r.mu.Unlock()

	if len(d.ErrorCodes) > 0 {
		codes := make([]apierrors.ErrorCode, 0, len(d.ErrorCodes))
		for _, c := range d.ErrorCodes {
			codes = append(codes, apierrors.ErrorCode{Code: c.Code, Message: c.Message})
		}
		apierrors.Registry.RegisterPlugin(d.ID, codes)
	}

	r.logger.Info("plugin registered", "plugin", d.ID, "version", d.Version, "active", active)
	r.emit(Event{Type: EventRegistered, PluginID: d.ID})
	return nil
}

func (r *Registry) namespaceOwnerLocked(ns string) string {
	for id, d := range r.plugins {
		if d.Namespace() == ns {
			return id
		}
	}
	for id, d := range r.pending {
		if d.Namespace() == ns {
			return id
		}
	}
	return ""
}

func (r *Registry) mergeI18n(d Descriptor) {
	if r.i18n == nil || d.I18n == nil {
		return
	}
	for lang, bundle := range d.I18n.Translations {
		r.i18n.MergeResources(lang, d.I18n.Namespace, bundle)
	}
}

func (r *Registry) removeI18n(d Descriptor) {
	if r.i18n == nil || d.I18n == nil {
		return
	}
	for lang := range d.I18n.Translations {
		r.i18n.RemoveResources(lang, d.I18n.Namespace)
	}
}

// List returns every registered descriptor in registration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.plugins[id].Clone())
	}
	return result
}

// Get returns the descriptor registered under id.
func (r *Registry) Get(id string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.plugins[id]
	if !ok {
		return Descriptor{}, &UnknownPluginError{ID: id}
	}
	return d.Clone(), nil
}

// IsActive reports the activation flag of a registered plugin.
func (r *Registry) IsActive(id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.plugins[id]; !ok {
		return false, &UnknownPluginError{ID: id}
	}
	return r.state[id], nil
}

// State reports the lifecycle state of id.
func (r *Registry) State(id string) State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.plugins[id]; !ok {
		return StateUnregistered
	}
	if s, ok := r.transit[id]; ok {
		return s
	}
	if r.state[id] {
		return StateActive
	}
	return StateInactive
}

// FilterActive returns the descriptors whose plugin is registered and
// active, keeping their order.
func (r *Registry) FilterActive(descs []Descriptor) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Descriptor, 0, len(descs))
	for _, d := range descs {
		if _, ok := r.plugins[d.ID]; ok && r.state[d.ID] {
			result = append(result, d)
		}
	}
	return result
}

// ActiveDescriptors returns the active plugins in registration order.
func (r *Registry) ActiveDescriptors() []Descriptor {
	return r.FilterActive(r.List())
}

// Route is a page of an active plugin, ready for the host router.
type Route struct {
	PluginID     string            `json:"plugin_id"`
	Path         string            `json:"path"`
	Component    string            `json:"component"`
	RequiresAuth bool              `json:"requires_auth"`
	Meta         map[string]string `json:"meta,omitempty"`
}

// Routes returns the routes of all active plugins, plugins in registration
// order and routes in declaration order.
func (r *Registry) Routes() []Route {
	var routes []Route
	for _, d := range r.ActiveDescriptors() {
		for _, rs := range d.Routes {
			routes = append(routes, Route{
				PluginID:     d.ID,
				Path:         rs.Path,
				Component:    rs.Component,
				RequiresAuth: rs.RequiresAuth,
				Meta:         rs.Meta,
			})
		}
	}
	return routes
}

// Activate marks id active, persists the flags and runs OnActivate.
// Activating an active plugin is a no-op. If saving fails the flag is
// reverted and the hook is not run; if the hook fails the flag is reverted
// and persisted again. Once started the call runs to completion even if
// ctx is cancelled.
func (r *Registry) Activate(ctx context.Context, id string) error {
	return r.transition(ctx, id, true)
}

// Deactivate is the mirror of Activate.
func (r *Registry) Deactivate(ctx context.Context, id string) error {
	return r.transition(ctx, id, false)
}

func (r *Registry) transition(ctx context.Context, id string, target bool) error {
	ctx = context.WithoutCancel(ctx)
	op, kind, moving, ev := "deactivate", HookDeactivate, StateDeactivating, EventDeactivated
	if target {
		op, kind, moving, ev = "activate", HookActivate, StateActivating, EventActivated
	}

	unlock := r.locks.lock(id)
	defer unlock()

	r.mu.Lock()
	d, ok := r.plugins[id]
	if !ok {
		r.mu.Unlock()
		return &UnknownPluginError{ID: id}
	}
	if r.state[id] == target {
		r.mu.Unlock()
		r.metrics.transition(op, resultNoop)
		return nil
	}
	r.state[id] = target
	r.transit[id] = moving
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.transit, id)
		r.updateCountsLocked()
		r.mu.Unlock()
	}()

	if err := r.persist(ctx); err != nil {
		r.setFlag(id, !target)
		r.metrics.transition(op, resultPersist)
		r.logger.Error("plugin state not saved, transition reverted", "plugin", id, "op", op, "error", err)
		r.emit(Event{Type: EventRolledBack, PluginID: id})
		return err
	}

	hook := d.OnDeactivate
	if target {
		hook = d.OnActivate
	}
	if hook != nil {
		if err := r.runHook(ctx, kind, d, hook); err != nil {
			r.setFlag(id, !target)
			if perr := r.persist(ctx); perr != nil {
				err = errors.Join(err, perr)
			}
			r.metrics.transition(op, resultHook)
			r.logger.Error("plugin hook failed, transition rolled back", "plugin", id, "hook", kind, "error", err)
			r.emit(Event{Type: EventRolledBack, PluginID: id})
			return err
		}
	}

	r.metrics.transition(op, resultOK)
	r.logger.Info("plugin state changed", "plugin", id, "event", ev)
	r.emit(Event{Type: ev, PluginID: id})
	return nil
}

func (r *Registry) setFlag(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[id] = active
}

// persist saves a snapshot of all flags. Saves are serialized so the last
// write carries the latest state.
func (r *Registry) persist(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.RLock()
	snapshot := maps.Clone(r.state)
	r.mu.RUnlock()

	if err := r.store.Save(ctx, snapshot); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// runHook invokes a lifecycle hook, turning errors and panics into
// *LifecycleHookError.
func (r *Registry) runHook(ctx context.Context, kind HookKind, d Descriptor, hook Hook) (err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
		r.metrics.hook(kind, time.Since(start))
		if err != nil {
			err = &LifecycleHookError{PluginID: d.ID, Hook: kind, Err: err}
		}
	}()
	return hook(ctx, r.appContext(ctx, d))
}

// Sync reloads the persisted flags and drives every registered plugin to
// its persisted state through Activate/Deactivate. Flags of ids not
// registered in this build are taken over as-is.
func (r *Registry) Sync(ctx context.Context) ([]BatchResult, error) {
	if r.store == nil {
		return nil, nil
	}
	r.syncMu.Lock()
	defer r.syncMu.Unlock()

	loaded, err := r.store.Load(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	r.mu.Lock()
	ids := append([]string(nil), r.order...)
	for id := range r.state {
		if _, ok := r.plugins[id]; !ok {
			delete(r.state, id)
		}
	}
	for id, v := range loaded {
		if _, ok := r.plugins[id]; !ok {
			r.state[id] = v
		}
	}
	r.mu.Unlock()

	results := r.runBatch(ctx, ids, func(ctx context.Context, id string) error {
		if loaded[id] {
			return r.Activate(ctx, id)
		}
		return r.Deactivate(ctx, id)
	})

	r.logger.Info("plugin state synced", "plugins", len(ids), "failed", len(Failed(results)))
	r.emit(Event{Type: EventSynced})
	return results, nil
}

// Logs returns the buffer holding plugin hook logs.
func (r *Registry) Logs() *LogBuffer {
	return r.logs
}

func (r *Registry) updateCountsLocked() {
	active := 0
	for id := range r.plugins {
		if r.state[id] {
			active++
		}
	}
	r.metrics.counts(len(r.plugins), active)
}
