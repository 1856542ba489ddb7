package apierrors

import (
	"sort"
	"strings"
	"sync"
)

// ErrorCode represents a registered error code
type ErrorCode struct {
	Code    string `json:"code"`    // Full namespaced code (e.g., "core:unknown_plugin")
	Message string `json:"message"` // Default English message
}

// registry holds all registered error codes
type registry struct {
	mu    sync.RWMutex
	codes map[string]ErrorCode // code -> ErrorCode
	byNS  map[string][]string  // namespace -> []code
}

// Registry is the process-wide error code catalog
var Registry = &registry{
	codes: make(map[string]ErrorCode),
	byNS:  make(map[string][]string),
}

// Register adds an error code to the registry. Re-registering a code
// replaces its message.
func (r *registry) Register(e ErrorCode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns := namespaceOf(e.Code)
	if _, exists := r.codes[e.Code]; !exists {
		r.byNS[ns] = append(r.byNS[ns], e.Code)
	}
	r.codes[e.Code] = e
}

// RegisterPlugin registers the error codes a plugin declares.
// Codes without a namespace are prefixed with the plugin id.
func (r *registry) RegisterPlugin(pluginID string, codes []ErrorCode) {
	for _, e := range codes {
		if !strings.Contains(e.Code, ":") {
			e.Code = pluginID + ":" + e.Code
		}
		r.Register(e)
	}
}

// Get returns an error code by its full code string
func (r *registry) Get(code string) (ErrorCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.codes[code]
	return e, ok
}

// ByNamespace returns all error codes for a given namespace, in registration order
func (r *registry) ByNamespace(ns string) []ErrorCode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := r.byNS[ns]
	result := make([]ErrorCode, 0, len(codes))
	for _, code := range codes {
		result = append(result, r.codes[code])
	}
	return result
}

// Namespaces returns all registered namespaces, sorted
func (r *registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byNS))
	for ns := range r.byNS {
		result = append(result, ns)
	}
	sort.Strings(result)
	return result
}

// Message returns the default message for a code, or the code itself if unknown
func (r *registry) Message(code string) string {
	if e, ok := r.Get(code); ok {
		return e.Message
	}
	return code
}

func namespaceOf(code string) string {
	if idx := strings.Index(code, ":"); idx > 0 {
		return code[:idx]
	}
	return "core"
}
