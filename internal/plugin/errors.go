package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goatkit/adminshell/internal/apierrors"
	pkgplugin "github.com/goatkit/adminshell/pkg/plugin"
)

// Registry errors, matched with errors.Is.
var (
	ErrDuplicateID       = errors.New("plugin already registered")
	ErrUnknownPlugin     = errors.New("plugin not registered")
	ErrLifecycleHook     = errors.New("plugin lifecycle hook failed")
	ErrPersistence       = errors.New("plugin state persistence failed")
	ErrNamespaceTaken    = errors.New("i18n namespace already in use")
	ErrInvalidDescriptor = pkgplugin.ErrInvalidDescriptor
)

// DuplicateIDError is returned by Register when the id is taken.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("plugin %q is already registered", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

// Code implements apierrors.Coder.
func (e *DuplicateIDError) Code() string { return apierrors.CodeDuplicatePlugin }

// UnknownPluginError is returned when an operation names an unregistered id.
type UnknownPluginError struct {
	ID string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("plugin %q is not registered", e.ID)
}

func (e *UnknownPluginError) Is(target error) bool { return target == ErrUnknownPlugin }

// Code implements apierrors.Coder.
func (e *UnknownPluginError) Code() string { return apierrors.CodeUnknownPlugin }

// LifecycleHookError wraps a failure (or panic) of a plugin lifecycle hook.
// By the time it reaches the caller the triggering transition has been
// rolled back.
type LifecycleHookError struct {
	PluginID string
	Hook     HookKind
	Err      error
}

func (e *LifecycleHookError) Error() string {
	return fmt.Sprintf("plugin %q %s failed: %v", e.PluginID, e.Hook, e.Err)
}

func (e *LifecycleHookError) Unwrap() error { return e.Err }

func (e *LifecycleHookError) Is(target error) bool { return target == ErrLifecycleHook }

// Code returns the plugin's own code when the hook reported one,
// qualified with the plugin id, and CodeHookFailed otherwise.
func (e *LifecycleHookError) Code() string {
	var c apierrors.Coder
	if errors.As(e.Err, &c) && c.Code() != "" {
		if strings.Contains(c.Code(), ":") {
			return c.Code()
		}
		return e.PluginID + ":" + c.Code()
	}
	return apierrors.CodeHookFailed
}

// PersistenceError wraps a StateStore failure.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("plugin state %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Code implements apierrors.Coder.
func (e *PersistenceError) Code() string { return apierrors.CodePersistenceFailed }

// namespaceError reports a translation namespace collision.
type namespaceError struct {
	namespace string
	owner     string
}

func (e *namespaceError) Error() string {
	if e.owner == "" {
		return fmt.Sprintf("i18n namespace %q is reserved or already provided", e.namespace)
	}
	return fmt.Sprintf("i18n namespace %q is already used by plugin %q", e.namespace, e.owner)
}

func (e *namespaceError) Is(target error) bool { return target == ErrNamespaceTaken }

func (e *namespaceError) Code() string { return apierrors.CodeNamespaceTaken }

// invalidError attaches the invalid-descriptor code to a validation error.
type invalidError struct{ err error }

func (e *invalidError) Error() string { return e.err.Error() }
func (e *invalidError) Unwrap() error { return e.err }
func (e *invalidError) Code() string  { return apierrors.CodeInvalidDescriptor }
