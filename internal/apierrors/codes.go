// Package apierrors provides namespaced error codes for plugin operations.
// All codes are namespaced (e.g., "core:duplicate_plugin", "kanban:board_locked").
package apierrors

import "errors"

// Core error codes - registered automatically at init
const (
	// Registry contract violations
	CodeDuplicatePlugin   = "core:duplicate_plugin"
	CodeUnknownPlugin     = "core:unknown_plugin"
	CodeInvalidDescriptor = "core:invalid_descriptor"
	CodeNamespaceTaken    = "core:namespace_taken"

	// Lifecycle
	CodeHookFailed = "core:hook_failed"

	// Persistence
	CodePersistenceFailed = "core:persistence_failed"

	// Fallback
	CodeInternalError = "core:internal_error"
)

// coreErrors defines all core error codes with their default messages
var coreErrors = []ErrorCode{
	{Code: CodeDuplicatePlugin, Message: "A plugin with this id is already registered"},
	{Code: CodeUnknownPlugin, Message: "Plugin is not registered"},
	{Code: CodeInvalidDescriptor, Message: "Plugin descriptor is invalid"},
	{Code: CodeNamespaceTaken, Message: "Translation namespace is already used by another plugin"},
	{Code: CodeHookFailed, Message: "Plugin lifecycle hook failed"},
	{Code: CodePersistenceFailed, Message: "Plugin state could not be saved or loaded"},
	{Code: CodeInternalError, Message: "Internal error"},
}

func init() {
	for _, e := range coreErrors {
		Registry.Register(e)
	}
}

// Coder is implemented by errors that carry a namespaced code.
type Coder interface {
	Code() string
}

// CodeFor returns the namespaced code of err: the first Coder found in the
// chain, CodeInternalError otherwise. A nil error has no code.
func CodeFor(err error) string {
	if err == nil {
		return ""
	}
	var c Coder
	if errors.As(err, &c) && c.Code() != "" {
		return c.Code()
	}
	return CodeInternalError
}

// APIError is the serializable form of a coded error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromError builds an APIError for err, keeping the error text as message.
func FromError(err error) APIError {
	return APIError{Code: CodeFor(err), Message: err.Error()}
}

// New creates an APIError carrying the registered default message.
func New(code string) APIError {
	return APIError{Code: code, Message: Registry.Message(code)}
}
