package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		desc    Descriptor
		wantErr bool
	}{
		{"minimal", Descriptor{ID: "kanban"}, false},
		{"missing id", Descriptor{Name: "Kanban"}, true},
		{"whitespace id", Descriptor{ID: "kan ban"}, true},
		{"i18n without namespace", Descriptor{ID: "kanban", I18n: &I18nBundle{}}, true},
		{"relative route", Descriptor{ID: "kanban", Routes: []RouteSpec{{Path: "board"}}}, true},
		{"menu item without id", Descriptor{ID: "kanban", MenuItems: []MenuItemSpec{{Label: "x"}}}, true},
		{
			"duplicate nested menu id",
			Descriptor{ID: "kanban", MenuItems: []MenuItemSpec{
				{ID: "a", Children: []MenuItemSpec{{ID: "a"}}},
			}},
			true,
		},
		{
			"full",
			Descriptor{
				ID:        "kanban",
				I18n:      &I18nBundle{Namespace: "kanban"},
				Routes:    []RouteSpec{{Path: "/kanban", Component: "KanbanBoard"}},
				MenuItems: []MenuItemSpec{{ID: "board", Children: []MenuItemSpec{{ID: "archive"}}}},
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDescriptor))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDescriptorClone(t *testing.T) {
	orig := Descriptor{
		ID: "kanban",
		I18n: &I18nBundle{
			Namespace:    "kanban",
			Translations: map[string]map[string]string{"en": {"name": "Kanban"}},
		},
		Routes:    []RouteSpec{{Path: "/kanban", Meta: map[string]string{"title": "Board"}}},
		MenuItems: []MenuItemSpec{{ID: "board", ShowInMenu: boolPtr(true)}},
	}

	c := orig.Clone()
	c.I18n.Translations["en"]["name"] = "changed"
	c.Routes[0].Meta["title"] = "changed"
	*c.MenuItems[0].ShowInMenu = false
	c.MenuItems[0].ID = "changed"

	assert.Equal(t, "Kanban", orig.I18n.Translations["en"]["name"])
	assert.Equal(t, "Board", orig.Routes[0].Meta["title"])
	assert.True(t, *orig.MenuItems[0].ShowInMenu)
	assert.Equal(t, "board", orig.MenuItems[0].ID)
}

func TestMenuGroupNormalize(t *testing.T) {
	tests := map[MenuGroup]MenuGroup{
		"":          GroupPlugins,
		"general":   GroupGeneral,
		"General":   GroupGeneral,
		" pages ":   GroupPages,
		"SETTINGS":  GroupSettings,
		"plugins":   GroupPlugins,
		"marketing": GroupPlugins,
	}
	for in, want := range tests {
		assert.Equal(t, want, in.Normalize(), "Normalize(%q)", in)
	}
	assert.False(t, MenuGroup("General").Known())
	assert.Equal(t, "nav.group.pages", GroupPages.TitleKey())
}

func TestMenuItemVisible(t *testing.T) {
	assert.True(t, MenuItemSpec{}.Visible())
	assert.True(t, MenuItemSpec{ShowInMenu: boolPtr(true)}.Visible())
	assert.False(t, MenuItemSpec{ShowInMenu: boolPtr(false)}.Visible())
}

func TestDescriptorLocalized(t *testing.T) {
	d := Descriptor{ID: "kanban", Name: "Kanban", Version: "1.0.0", Description: "Boards", I18n: &I18nBundle{Namespace: "kanban"}}
	tr := func(ns, key, def string) string {
		if ns == "kanban" && key == "name" {
			return "看板"
		}
		return def
	}

	info := d.Localized(tr)
	assert.Equal(t, "看板", info.Name)
	assert.Equal(t, "Boards", info.Description)
	assert.Equal(t, "1.0.0", info.Version)

	d.I18n = nil
	assert.Equal(t, "Kanban", d.Localized(tr).Name)
}

func TestErrorf(t *testing.T) {
	err := Errorf("board_locked", "board %s is locked", "b1")
	assert.Equal(t, "board b1 is locked", err.Error())
	assert.Equal(t, "board_locked", err.Code())
}
