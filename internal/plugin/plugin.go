// Package plugin is the admin shell's plugin registry.
//
// It owns the registered descriptors from pkg/plugin together with their
// activation flags, persists the flags through a StateStore and runs the
// plugins' lifecycle hooks. The descriptor types are re-exported here so
// host code only needs this import.
package plugin

import (
	pkgplugin "github.com/goatkit/adminshell/pkg/plugin"
)

// Aliases of the pkg/plugin types.

type Descriptor = pkgplugin.Descriptor
type I18nBundle = pkgplugin.I18nBundle
type RouteSpec = pkgplugin.RouteSpec
type MenuItemSpec = pkgplugin.MenuItemSpec
type MenuGroup = pkgplugin.MenuGroup
type ErrorCodeSpec = pkgplugin.ErrorCodeSpec
type Hook = pkgplugin.Hook
type AppContext = pkgplugin.AppContext
type RegistryView = pkgplugin.RegistryView
type Translator = pkgplugin.Translator
type TranslateFunc = pkgplugin.TranslateFunc

// CoreNamespace is the translation namespace reserved for the shell.
const CoreNamespace = pkgplugin.CoreNamespace
