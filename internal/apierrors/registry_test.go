package apierrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestRegistry_CoreCodesRegistered(t *testing.T) {
	// Core codes should be registered via init()
	mustExist := []string{
		CodeDuplicatePlugin,
		CodeUnknownPlugin,
		CodeInvalidDescriptor,
		CodeHookFailed,
		CodePersistenceFailed,
		CodeInternalError,
	}

	for _, code := range mustExist {
		if _, ok := Registry.Get(code); !ok {
			t.Errorf("Core code %q not registered", code)
		}
	}
}

func TestRegistry_Namespacing(t *testing.T) {
	coreCodes := Registry.ByNamespace("core")
	if len(coreCodes) == 0 {
		t.Fatal("No codes in 'core' namespace")
	}

	for _, code := range coreCodes {
		if len(code.Code) < 5 || code.Code[:5] != "core:" {
			t.Errorf("Code %q should have 'core:' prefix", code.Code)
		}
	}
}

func TestRegistry_UnknownCode(t *testing.T) {
	msg := Registry.Message("unknown:code")
	if msg != "unknown:code" {
		t.Errorf("Message for unknown code = %q, want %q", msg, "unknown:code")
	}
}

func TestRegistry_RegisterPlugin(t *testing.T) {
	Registry.RegisterPlugin("testplugin", []ErrorCode{
		{Code: "test_error", Message: "Test error"},
		{Code: "other:kept_prefix", Message: "Kept"},
	})

	code, ok := Registry.Get("testplugin:test_error")
	if !ok {
		t.Fatal("Plugin code not registered")
	}
	if code.Message != "Test error" {
		t.Errorf("Message = %q, want %q", code.Message, "Test error")
	}
	if _, ok := Registry.Get("other:kept_prefix"); !ok {
		t.Error("namespaced plugin code should keep its prefix")
	}

	// Re-registering must not duplicate namespace entries
	Registry.RegisterPlugin("testplugin", []ErrorCode{{Code: "test_error", Message: "Changed"}})
	if n := len(Registry.ByNamespace("testplugin")); n != 1 {
		t.Errorf("ByNamespace(testplugin) returned %d codes, want 1", n)
	}
	if got := Registry.Message("testplugin:test_error"); got != "Changed" {
		t.Errorf("Message = %q, want Changed", got)
	}
}

type codedErr struct{ code string }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) Code() string  { return e.code }

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), CodeInternalError},
		{"coded", codedErr{CodeUnknownPlugin}, CodeUnknownPlugin},
		{"wrapped", fmt.Errorf("ctx: %w", codedErr{"kanban:locked"}), "kanban:locked"},
		{"empty code", codedErr{""}, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeFor(tt.err); got != tt.want {
				t.Errorf("CodeFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	e := New(CodeUnknownPlugin)
	if e.Message != "Plugin is not registered" {
		t.Errorf("unexpected message %q", e.Message)
	}
	fe := FromError(codedErr{CodeHookFailed})
	if fe.Code != CodeHookFailed || fe.Message != "coded" {
		t.Errorf("unexpected APIError %+v", fe)
	}
}
