// Package menu builds the shell navigation tree from the built-in entries
// and the menu contributions of active plugins.
package menu

import (
	"strings"

	"github.com/goatkit/adminshell/internal/i18n"
	"github.com/goatkit/adminshell/pkg/plugin"
)

// ManagementItemID is the id of the synthetic entry that always heads the
// Plugins group.
const ManagementItemID = "plugin-management"

// Item is one rendered navigation entry. An item with Items is a submenu.
type Item struct {
	ID       string `json:"id"                  yaml:"id"`
	Title    string `json:"title"               yaml:"title"`
	Icon     string `json:"icon,omitempty"      yaml:"icon,omitempty"`
	Path     string `json:"path,omitempty"      yaml:"path,omitempty"`
	PluginID string `json:"plugin_id,omitempty" yaml:"plugin_id,omitempty"` // empty for built-ins
	Items    []Item `json:"items,omitempty"     yaml:"items,omitempty"`
}

// Group is a titled section of the navigation.
type Group struct {
	ID    plugin.MenuGroup `json:"id"    yaml:"id"`
	Title string           `json:"title" yaml:"title"`
	Items []Item           `json:"items" yaml:"items"`
}

// Tree is the composed navigation.
type Tree struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

// Group returns the group with id g.
func (t Tree) Group(g plugin.MenuGroup) (Group, bool) {
	for _, grp := range t.Groups {
		if grp.ID == g {
			return grp, true
		}
	}
	return Group{}, false
}

// Builtins are the shell's own menu entries per group. Their labels are
// translation keys in the core namespace.
type Builtins map[plugin.MenuGroup][]plugin.MenuItemSpec

// Options tune composition.
type Options struct {
	// Allow decides whether an item guarded by a permission is shown. Nil
	// shows everything.
	Allow func(permission string) bool
}

// Compose builds the navigation tree. It is a pure function of its inputs:
// equal inputs yield equal trees.
//
// Group order is General, Pages, Plugins, Settings. General lists built-ins
// before plugin items; Pages and Settings list plugin items first. The
// Plugins group always starts with the management entry. Plugin items keep
// the order of active, and items with an unknown group go to Plugins.
func Compose(builtins Builtins, active []plugin.Descriptor, t plugin.TranslateFunc, opts Options) Tree {
	if t == nil {
		t = func(_, _, def string) string { return def }
	}

	contributed := make(map[plugin.MenuGroup][]Item)
	for _, d := range active {
		ns := d.Namespace()
		for _, spec := range d.MenuItems {
			item, ok := buildItem(spec, d.ID, ns, t, opts)
			if !ok {
				continue
			}
			g := spec.Group.Normalize()
			contributed[g] = append(contributed[g], item)
		}
	}

	core := func(g plugin.MenuGroup) []Item {
		var items []Item
		for _, spec := range builtins[g] {
			if item, ok := buildItem(spec, "", i18n.CoreNamespace, t, opts); ok {
				items = append(items, item)
			}
		}
		return items
	}

	var tree Tree
	for _, g := range plugin.Groups() {
		var items []Item
		switch g {
		case plugin.GroupGeneral:
			items = append(core(g), contributed[g]...)
		case plugin.GroupPlugins:
			items = append(items, managementItem(t))
			items = append(items, core(g)...)
			items = append(items, contributed[g]...)
		default:
			items = append(contributed[g], core(g)...)
		}
		if len(items) == 0 {
			continue
		}
		tree.Groups = append(tree.Groups, Group{
			ID:    g,
			Title: t(i18n.CoreNamespace, g.TitleKey(), titleCase(string(g))),
			Items: items,
		})
	}
	return tree
}

func buildItem(spec plugin.MenuItemSpec, pluginID, ns string, t plugin.TranslateFunc, opts Options) (Item, bool) {
	if !spec.Visible() {
		return Item{}, false
	}
	if spec.Permission != "" && opts.Allow != nil && !opts.Allow(spec.Permission) {
		return Item{}, false
	}
	title := spec.Label
	if ns != "" && spec.Label != "" {
		title = t(ns, spec.Label, spec.Label)
	}
	item := Item{
		ID:       spec.ID,
		Title:    title,
		Icon:     spec.Icon,
		Path:     spec.Path,
		PluginID: pluginID,
	}
	for _, child := range spec.Children {
		if c, ok := buildItem(child, pluginID, ns, t, opts); ok {
			item.Items = append(item.Items, c)
		}
	}
	// A submenu whose children were all filtered out has nothing to open.
	if len(spec.Children) > 0 && len(item.Items) == 0 && spec.Path == "" {
		return Item{}, false
	}
	return item, true
}

func managementItem(t plugin.TranslateFunc) Item {
	return Item{
		ID:    ManagementItemID,
		Title: t(i18n.CoreNamespace, "nav.plugin_management", "Plugin Management"),
		Icon:  "puzzle",
		Path:  "/plugins",
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
