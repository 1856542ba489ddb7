package plugin

import (
	"context"
)

// appContext is the AppContext handed to a plugin's lifecycle hooks.
type appContext struct {
	ctx      context.Context
	registry *Registry
	desc     Descriptor
}

func (r *Registry) appContext(ctx context.Context, d Descriptor) *appContext {
	return &appContext{ctx: ctx, registry: r, desc: d}
}

// PluginID returns the id of the plugin that owns the hook.
func (a *appContext) PluginID() string {
	return a.desc.ID
}

// T translates key in the plugin's namespace.
func (a *appContext) T(key, defaultValue string) string {
	ns := a.desc.Namespace()
	if a.registry.i18n == nil || ns == "" {
		return defaultValue
	}
	return a.registry.i18n.T(ns, key, defaultValue)
}

// I18n returns the shared translator, which may be nil.
func (a *appContext) I18n() Translator {
	return a.registry.i18n
}

// Registry returns the read-only registry view.
func (a *appContext) Registry() RegistryView {
	return a.registry
}

// Log writes to the registry logger and the plugin log buffer.
func (a *appContext) Log(level, message string, fields map[string]any) {
	a.registry.logs.Log(a.desc.ID, level, message, fields)

	attrs := make([]any, 0, 2+2*len(fields))
	attrs = append(attrs, "plugin", a.desc.ID)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	a.registry.logger.Log(a.ctx, ParseLevel(level), message, attrs...)
}
