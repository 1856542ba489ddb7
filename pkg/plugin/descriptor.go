package plugin

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// ErrInvalidDescriptor is returned when a descriptor fails validation.
var ErrInvalidDescriptor = errors.New("invalid plugin descriptor")

// Validate checks the structural rules a descriptor must satisfy before it
// can be registered.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidDescriptor)
	}
	if strings.ContainsAny(d.ID, " \t\r\n") {
		return fmt.Errorf("%w: id %q contains whitespace", ErrInvalidDescriptor, d.ID)
	}
	if d.I18n != nil && d.I18n.Namespace == "" {
		return fmt.Errorf("%w: plugin %q has translations without a namespace", ErrInvalidDescriptor, d.ID)
	}
	for _, r := range d.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("%w: plugin %q route %q must start with /", ErrInvalidDescriptor, d.ID, r.Path)
		}
	}
	seen := make(map[string]bool)
	var walk func(items []MenuItemSpec) error
	walk = func(items []MenuItemSpec) error {
		for _, mi := range items {
			if mi.ID == "" {
				return fmt.Errorf("%w: plugin %q has a menu item without id", ErrInvalidDescriptor, d.ID)
			}
			if seen[mi.ID] {
				return fmt.Errorf("%w: plugin %q menu item %q declared twice", ErrInvalidDescriptor, d.ID, mi.ID)
			}
			seen[mi.ID] = true
			if err := walk(mi.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(d.MenuItems)
}

// Namespace returns the i18n namespace of the plugin, or "" when it ships no
// translations.
func (d Descriptor) Namespace() string {
	if d.I18n == nil {
		return ""
	}
	return d.I18n.Namespace
}

// Clone returns a deep copy so that callers cannot mutate registry state
// through shared slices or maps. Hooks are shared.
func (d Descriptor) Clone() Descriptor {
	c := d
	if d.I18n != nil {
		b := I18nBundle{Namespace: d.I18n.Namespace}
		if d.I18n.Translations != nil {
			b.Translations = make(map[string]map[string]string, len(d.I18n.Translations))
			for lang, kv := range d.I18n.Translations {
				b.Translations[lang] = maps.Clone(kv)
			}
		}
		c.I18n = &b
	}
	if d.Routes != nil {
		c.Routes = make([]RouteSpec, len(d.Routes))
		for i, r := range d.Routes {
			r.Meta = maps.Clone(r.Meta)
			c.Routes[i] = r
		}
	}
	c.MenuItems = cloneItems(d.MenuItems)
	if d.ErrorCodes != nil {
		c.ErrorCodes = append([]ErrorCodeSpec(nil), d.ErrorCodes...)
	}
	return c
}

func cloneItems(items []MenuItemSpec) []MenuItemSpec {
	if items == nil {
		return nil
	}
	out := make([]MenuItemSpec, len(items))
	for i, mi := range items {
		if mi.ShowInMenu != nil {
			v := *mi.ShowInMenu
			mi.ShowInMenu = &v
		}
		mi.Children = cloneItems(mi.Children)
		out[i] = mi
	}
	return out
}

// Info is the display metadata of a plugin in the current language.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Localized resolves name and description through the plugin namespace
// (keys "name" and "description"), defaulting to the declared values.
func (d Descriptor) Localized(t TranslateFunc) Info {
	info := Info{ID: d.ID, Name: d.Name, Version: d.Version, Description: d.Description}
	ns := d.Namespace()
	if t == nil || ns == "" {
		return info
	}
	info.Name = t(ns, "name", d.Name)
	info.Description = t(ns, "description", d.Description)
	return info
}
