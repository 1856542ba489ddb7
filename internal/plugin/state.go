package plugin

// State is the lifecycle state of a plugin in a registry.
type State int

// Plugin states.
const (
	// StateUnregistered - the id is not known to the registry.
	StateUnregistered State = iota

	// StateInactive - registered, not active.
	StateInactive

	// StateActivating - OnActivate is running.
	StateActivating

	// StateActive - registered and active.
	StateActive

	// StateDeactivating - OnDeactivate is running.
	StateDeactivating
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateInactive:
		return "inactive"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	case StateDeactivating:
		return "deactivating"
	default:
		return "unknown"
	}
}

// HookKind names a lifecycle hook.
type HookKind string

// Lifecycle hooks.
const (
	HookRegister   HookKind = "onRegister"
	HookActivate   HookKind = "onActivate"
	HookDeactivate HookKind = "onDeactivate"
)
