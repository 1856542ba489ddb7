package plugin

// EventType identifies a registry change.
type EventType string

// Registry events.
const (
	EventRegistered  EventType = "registered"
	EventActivated   EventType = "activated"
	EventDeactivated EventType = "deactivated"
	EventSynced      EventType = "synced"
	EventRolledBack  EventType = "rolled_back"
)

// Event is delivered to subscribers after a registry change has settled.
// A transition is visible to readers while its hook runs; when it fails and
// the flag is reverted, EventRolledBack is emitted.
type Event struct {
	Type     EventType
	PluginID string // empty for EventSynced
}

// Subscribe registers fn for registry events. Listeners run synchronously
// on the goroutine that made the change and must not block.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	return func() {
		r.subMu.Lock()
		defer r.subMu.Unlock()
		delete(r.subs, id)
	}
}

func (r *Registry) emit(ev Event) {
	r.subMu.RLock()
	fns := make([]func(Event), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.subMu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
