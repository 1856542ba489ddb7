package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatkit/adminshell/internal/i18n"
	"github.com/goatkit/adminshell/internal/plugin"
	pkgplugin "github.com/goatkit/adminshell/pkg/plugin"
)

// countingSource wraps a registry and counts ActiveDescriptors calls.
type countingSource struct {
	*plugin.Registry
	calls int
}

func (c *countingSource) ActiveDescriptors() []pkgplugin.Descriptor {
	c.calls++
	return c.Registry.ActiveDescriptors()
}

func TestNavigator(t *testing.T) {
	ctx := context.Background()
	tr, err := i18n.New()
	require.NoError(t, err)
	reg := plugin.NewRegistry(plugin.WithTranslator(tr))

	require.NoError(t, reg.Register(ctx, pkgplugin.Descriptor{
		ID: "kanban",
		I18n: &pkgplugin.I18nBundle{
			Namespace:    "kanban",
			Translations: map[string]map[string]string{"en": {"menu.board": "Board"}, "zh": {"menu.board": "看板"}},
		},
		MenuItems: []pkgplugin.MenuItemSpec{{ID: "board", Label: "menu.board", Group: pkgplugin.GroupGeneral}},
	}))

	src := &countingSource{Registry: reg}
	nav := NewNavigator(src, tr, DefaultBuiltins(), Options{}, nil)
	defer nav.Close()

	general := func() Group {
		g, ok := nav.Tree().Group(pkgplugin.GroupGeneral)
		require.True(t, ok)
		return g
	}

	assert.NotContains(t, ids(general().Items), "board")
	nav.Tree()
	assert.Equal(t, 1, src.calls, "tree is cached")

	t.Run("activation recomposes", func(t *testing.T) {
		require.NoError(t, reg.Activate(ctx, "kanban"))
		g := general()
		assert.Contains(t, ids(g.Items), "board")
		assert.Equal(t, "Board", g.Items[len(g.Items)-1].Title)
	})

	t.Run("language change recomposes", func(t *testing.T) {
		require.NoError(t, tr.SetLanguage("zh"))
		g := general()
		assert.Equal(t, "通用", g.Title)
		assert.Equal(t, "看板", g.Items[len(g.Items)-1].Title)
	})

	t.Run("deactivation recomposes", func(t *testing.T) {
		require.NoError(t, reg.Deactivate(ctx, "kanban"))
		assert.NotContains(t, ids(general().Items), "board")
	})

	t.Run("closed navigator stops listening", func(t *testing.T) {
		nav.Tree()
		calls := src.calls
		nav.Close()
		require.NoError(t, reg.Activate(ctx, "kanban"))
		nav.Tree()
		assert.Equal(t, calls, src.calls)
	})
}

func TestNavigatorDropsItemsOfFailedActivation(t *testing.T) {
	ctx := context.Background()
	tr, err := i18n.New()
	require.NoError(t, err)
	reg := plugin.NewRegistry(plugin.WithTranslator(tr))

	var nav *Navigator
	var during []string
	onActivate := func(context.Context, pkgplugin.AppContext) error {
		g, _ := nav.Tree().Group(pkgplugin.GroupPlugins)
		during = ids(g.Items)
		return errors.New("backend unreachable")
	}
	require.NoError(t, reg.Register(ctx, pkgplugin.Descriptor{
		ID:         "flaky",
		MenuItems:  []pkgplugin.MenuItemSpec{{ID: "flaky-item", Label: "Flaky"}},
		OnActivate: onActivate,
	}))

	nav = NewNavigator(reg, tr, DefaultBuiltins(), Options{}, nil)
	defer nav.Close()

	require.Error(t, reg.Activate(ctx, "flaky"))
	assert.Contains(t, during, "flaky-item")

	active, err := reg.IsActive("flaky")
	require.NoError(t, err)
	assert.False(t, active)

	g, ok := nav.Tree().Group(pkgplugin.GroupPlugins)
	require.True(t, ok)
	assert.Equal(t, []string{ManagementItemID}, ids(g.Items))
}
