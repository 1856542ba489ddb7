// Package plugin defines the descriptor contract for admin shell feature modules.
//
// A feature module is statically bundled with the shell. It describes itself
// with a Descriptor: display metadata, the pages it routes to, the menu
// entries it contributes, its translation bundle and optional lifecycle hooks.
// The host registry owns descriptors once they are registered; plugins never
// mutate each other's state directly.
package plugin

import (
	"context"
)

// Descriptor describes one feature module. It is treated as immutable once
// handed to a registry.
type Descriptor struct {
	// Identity
	ID          string `yaml:"id"                    json:"id"`          // unique, stable key, e.g. "kanban"
	Name        string `yaml:"name"                  json:"name"`        // display name
	Version     string `yaml:"version"               json:"version"`     // semver, e.g. "1.0.0"
	Description string `yaml:"description,omitempty" json:"description"` // human-readable summary

	// Capabilities
	I18n       *I18nBundle     `yaml:"i18n,omitempty"        json:"i18n,omitempty"`        // translations merged at registration
	Routes     []RouteSpec     `yaml:"routes,omitempty"      json:"routes,omitempty"`      // pages handed to the host router
	MenuItems  []MenuItemSpec  `yaml:"menu_items,omitempty"  json:"menu_items,omitempty"`  // navigation contributions
	ErrorCodes []ErrorCodeSpec `yaml:"error_codes,omitempty" json:"error_codes,omitempty"` // codes the plugin's hooks may report

	// Lifecycle hooks. Each may block; the registry waits for it to return.
	OnRegister   Hook `yaml:"-" json:"-"`
	OnActivate   Hook `yaml:"-" json:"-"`
	OnDeactivate Hook `yaml:"-" json:"-"`
}

// I18nBundle holds the translations a plugin ships with.
type I18nBundle struct {
	// Namespace the keys are merged under, e.g. "kanban" -> t("kanban", "menu.board").
	Namespace string `yaml:"namespace" json:"namespace"`
	// Translations maps language -> key -> value.
	Translations map[string]map[string]string `yaml:"translations,omitempty" json:"translations,omitempty"`
}

// RouteSpec is a page the plugin wants the host router to serve.
type RouteSpec struct {
	Path         string            `yaml:"path"                    json:"path"`
	Component    string            `yaml:"component"               json:"component"` // opaque reference, resolved by the router
	RequiresAuth bool              `yaml:"requires_auth,omitempty" json:"requires_auth,omitempty"`
	Meta         map[string]string `yaml:"meta,omitempty"          json:"meta,omitempty"`
}

// MenuItemSpec is a navigation entry contributed by a plugin.
type MenuItemSpec struct {
	ID         string         `yaml:"id"                     json:"id"`
	Label      string         `yaml:"label"                  json:"label"` // i18n key in the plugin namespace, or literal text
	Icon       string         `yaml:"icon,omitempty"         json:"icon,omitempty"`
	Path       string         `yaml:"path,omitempty"         json:"path,omitempty"`
	Permission string         `yaml:"permission,omitempty"   json:"permission,omitempty"`
	Group      MenuGroup      `yaml:"menu_group,omitempty"   json:"menu_group,omitempty"` // defaults to GroupPlugins
	ShowInMenu *bool          `yaml:"show_in_menu,omitempty" json:"show_in_menu,omitempty"` // nil means shown
	Children   []MenuItemSpec `yaml:"children,omitempty"     json:"children,omitempty"`
}

// Visible reports whether the item should appear in the navigation.
func (m MenuItemSpec) Visible() bool {
	return m.ShowInMenu == nil || *m.ShowInMenu
}

// ErrorCodeSpec declares an error code a plugin may report.
// The plugin id is prefixed to codes without a namespace
// (code "board_locked" in plugin "kanban" becomes "kanban:board_locked").
type ErrorCodeSpec struct {
	Code    string `yaml:"code"    json:"code"`
	Message string `yaml:"message" json:"message"` // default English message
}

// Hook is a lifecycle callback. Returning an error (or panicking) makes the
// registry roll back the transition that triggered it.
type Hook func(ctx context.Context, app AppContext) error

// AppContext is the restricted application handle passed to lifecycle hooks.
type AppContext interface {
	// PluginID returns the id of the plugin the hook belongs to.
	PluginID() string
	// T translates key within the plugin's own namespace.
	T(key, defaultValue string) string
	// I18n gives access to the shared translation provider.
	I18n() Translator
	// Registry gives read access to the plugin registry.
	Registry() RegistryView
	// Log records a plugin log entry; level is debug, info, warn or error.
	Log(level, message string, fields map[string]any)
}

// RegistryView is the read-only registry surface visible to plugins.
type RegistryView interface {
	List() []Descriptor
	IsActive(id string) (bool, error)
}

// Translator is the translation provider contract the registry and the menu
// composer depend on.
type Translator interface {
	T(namespace, key, defaultValue string) string
	CurrentLanguage() string
	OnLanguageChange(fn func(language string)) (unsubscribe func())
	MergeResources(language, namespace string, bundle map[string]string)
	RemoveResources(language, namespace string)
	HasNamespace(namespace string) bool
}

// CoreNamespace holds the shell's own strings. Plugins cannot claim it.
const CoreNamespace = "core"

// TranslateFunc resolves a key in a namespace, returning defaultValue when
// no translation exists.
type TranslateFunc func(namespace, key, defaultValue string) string
