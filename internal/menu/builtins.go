package menu

import "github.com/goatkit/adminshell/pkg/plugin"

// DefaultBuiltins returns the shell's built-in navigation.
func DefaultBuiltins() Builtins {
	return Builtins{
		plugin.GroupGeneral: {
			{ID: "dashboard", Label: "nav.dashboard", Icon: "layout-dashboard", Path: "/"},
			{ID: "tasks", Label: "nav.tasks", Icon: "checklist", Path: "/tasks"},
			{ID: "apps", Label: "nav.apps", Icon: "packages", Path: "/apps"},
			{ID: "messages", Label: "nav.messages", Icon: "messages", Path: "/chats"},
			{ID: "users", Label: "nav.users", Icon: "users", Path: "/users", Permission: "users:read"},
		},
		plugin.GroupPages: {
			{ID: "auth", Label: "nav.auth", Icon: "lock", Children: []plugin.MenuItemSpec{
				{ID: "sign-in", Label: "nav.sign_in", Path: "/sign-in"},
				{ID: "sign-up", Label: "nav.sign_up", Path: "/sign-up"},
				{ID: "forgot-password", Label: "nav.forgot_password", Path: "/forgot-password"},
				{ID: "otp", Label: "nav.otp", Path: "/otp"},
			}},
			{ID: "errors", Label: "nav.errors", Icon: "bug", Children: []plugin.MenuItemSpec{
				{ID: "unauthorized", Label: "nav.unauthorized", Path: "/401"},
				{ID: "forbidden", Label: "nav.forbidden", Path: "/403"},
				{ID: "not-found", Label: "nav.not_found", Path: "/404"},
				{ID: "internal-server-error", Label: "nav.internal_server_error", Path: "/500"},
				{ID: "maintenance-error", Label: "nav.maintenance_error", Path: "/503"},
			}},
		},
		plugin.GroupSettings: {
			{ID: "settings", Label: "nav.settings", Icon: "settings", Children: []plugin.MenuItemSpec{
				{ID: "profile", Label: "nav.profile", Path: "/settings"},
				{ID: "account", Label: "nav.account", Path: "/settings/account"},
				{ID: "appearance", Label: "nav.appearance", Path: "/settings/appearance"},
				{ID: "notifications", Label: "nav.notifications", Path: "/settings/notifications"},
				{ID: "display", Label: "nav.display", Path: "/settings/display"},
			}},
			{ID: "help-center", Label: "nav.help_center", Icon: "help", Path: "/help-center"},
		},
	}
}
