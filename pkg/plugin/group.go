package plugin

import "strings"

// MenuGroup is the navigation category a menu item is listed under.
type MenuGroup string

// Menu groups, in display order.
const (
	GroupGeneral  MenuGroup = "general"
	GroupPages    MenuGroup = "pages"
	GroupPlugins  MenuGroup = "plugins"
	GroupSettings MenuGroup = "settings"
)

// Groups returns every menu group in display order.
func Groups() []MenuGroup {
	return []MenuGroup{GroupGeneral, GroupPages, GroupPlugins, GroupSettings}
}

// Known reports whether g is one of the fixed groups.
func (g MenuGroup) Known() bool {
	switch g {
	case GroupGeneral, GroupPages, GroupPlugins, GroupSettings:
		return true
	}
	return false
}

// Normalize maps g onto a known group. Matching is case-insensitive; empty
// and unrecognized values fall back to GroupPlugins.
func (g MenuGroup) Normalize() MenuGroup {
	n := MenuGroup(strings.ToLower(strings.TrimSpace(string(g))))
	if n.Known() {
		return n
	}
	return GroupPlugins
}

// TitleKey is the translation key of the group heading.
func (g MenuGroup) TitleKey() string {
	return "nav.group." + string(g)
}
