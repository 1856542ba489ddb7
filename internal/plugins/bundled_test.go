package plugins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatkit/adminshell/internal/apierrors"
	"github.com/goatkit/adminshell/internal/i18n"
	internalplugin "github.com/goatkit/adminshell/internal/plugin"
	"github.com/goatkit/adminshell/internal/menu"
	"github.com/goatkit/adminshell/pkg/plugin"
)

func setup(t *testing.T) (*Bundle, *internalplugin.Registry, *i18n.Provider) {
	t.Helper()
	tr, err := i18n.New()
	require.NoError(t, err)
	reg := internalplugin.NewRegistry(internalplugin.WithTranslator(tr))

	b := NewBundle()
	descs, err := b.Descriptors()
	require.NoError(t, err)
	for _, d := range descs {
		require.NoError(t, reg.Register(context.Background(), d))
	}
	return b, reg, tr
}

func TestBundled(t *testing.T) {
	descs, err := Bundled()
	require.NoError(t, err)

	var ids []string
	for _, d := range descs {
		ids = append(ids, d.ID)
		assert.NoError(t, d.Validate())
		assert.NotEmpty(t, d.Namespace())
	}
	assert.Equal(t, []string{"kanban", "reports", "audit-log"}, ids)
	assert.NotNil(t, descs[0].OnActivate)
}

func TestKanban(t *testing.T) {
	ctx := context.Background()
	b, reg, tr := setup(t)

	require.NoError(t, tr.SetLanguage("zh"))
	require.NoError(t, reg.Activate(ctx, "kanban"))
	assert.Equal(t, []string{"团队看板", "待办"}, b.Kanban.Boards())

	require.NoError(t, reg.Deactivate(ctx, "kanban"))
	assert.Empty(t, b.Kanban.Boards())

	t.Run("locked board", func(t *testing.T) {
		b.Kanban.SetLocked(true)
		err := reg.Activate(ctx, "kanban")
		require.Error(t, err)
		assert.Equal(t, "kanban:board_locked", apierrors.CodeFor(err))
		assert.Equal(t, "The board is locked by another session", apierrors.Registry.Message("kanban:board_locked"))

		active, _ := reg.IsActive("kanban")
		assert.False(t, active)
		b.Kanban.SetLocked(false)
	})
}

func TestReportsNeedKanban(t *testing.T) {
	ctx := context.Background()
	b, reg, _ := setup(t)

	results := reg.ActivateMany(ctx, []string{"reports", "audit-log"})
	require.Len(t, results, 2)
	assert.Equal(t, "reports:kanban_required", results[0].Code)
	assert.True(t, results[1].OK())
	_, running := b.Reports.Running()
	assert.False(t, running)

	require.NoError(t, reg.Activate(ctx, "kanban"))
	require.NoError(t, reg.Activate(ctx, "reports"))
	_, running = b.Reports.Running()
	assert.True(t, running)
}

func TestAuditLog(t *testing.T) {
	ctx := context.Background()
	b, reg, _ := setup(t)

	require.NoError(t, reg.Activate(ctx, "kanban"))
	require.NoError(t, reg.Activate(ctx, "audit-log"))
	require.NoError(t, reg.Deactivate(ctx, "audit-log"))

	entries := b.AuditLog.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "registered", entries[0].Action)
	assert.Equal(t, "activated", entries[1].Action)
	assert.Equal(t, []string{"kanban", "audit-log"}, entries[1].ActivePlugins)
	assert.Equal(t, "deactivated", entries[2].Action)
	assert.Equal(t, []string{"kanban"}, entries[2].ActivePlugins)
}

func TestBundledMenu(t *testing.T) {
	ctx := context.Background()
	_, reg, tr := setup(t)
	require.NoError(t, reg.Activate(ctx, "kanban"))
	require.NoError(t, reg.Activate(ctx, "reports"))
	require.NoError(t, reg.Activate(ctx, "audit-log"))

	tree := menu.Compose(menu.DefaultBuiltins(), reg.ActiveDescriptors(), tr.Func(), menu.Options{})

	titles := func(g plugin.MenuGroup) []string {
		grp, ok := tree.Group(g)
		require.True(t, ok)
		var out []string
		for _, it := range grp.Items {
			out = append(out, it.Title)
		}
		return out
	}
	assert.Equal(t, []string{"Dashboard", "Tasks", "Apps", "Messages", "Users", "Board"}, titles(plugin.GroupGeneral))
	assert.Equal(t, []string{"Reports", "Auth", "Errors"}, titles(plugin.GroupPages))
	assert.Equal(t, []string{"Plugin Management", "Archived Boards", "Audit Log"}, titles(plugin.GroupPlugins))
	assert.Equal(t, []string{"Export Settings", "Settings", "Help Center"}, titles(plugin.GroupSettings))

	routes := reg.Routes()
	require.Len(t, routes, 5)
	assert.Equal(t, "/kanban", routes[0].Path)
	assert.Equal(t, "audit-log", routes[4].PluginID)
}

func TestLocalizedInfo(t *testing.T) {
	_, reg, tr := setup(t)
	require.NoError(t, tr.SetLanguage("zh"))

	d, err := reg.Get("reports")
	require.NoError(t, err)
	info := d.Localized(tr.Func())
	assert.Equal(t, "报表", info.Name)
	assert.Equal(t, "0.4.0", info.Version)
}
