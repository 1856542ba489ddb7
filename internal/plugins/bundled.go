// Package plugins holds the feature modules bundled with the admin shell.
// Each module pairs an embedded manifest with its Go lifecycle hooks.
package plugins

import (
	"embed"
	"fmt"

	"github.com/goatkit/adminshell/internal/plugin/manifest"
	"github.com/goatkit/adminshell/pkg/plugin"
)

//go:embed manifests/*.yaml
var manifests embed.FS

func loadManifest(name string) (plugin.Descriptor, error) {
	data, err := manifests.ReadFile("manifests/" + name + ".yaml")
	if err != nil {
		return plugin.Descriptor{}, fmt.Errorf("bundled manifest %s: %w", name, err)
	}
	d, err := manifest.Parse(data)
	if err != nil {
		return plugin.Descriptor{}, fmt.Errorf("bundled manifest %s: %w", name, err)
	}
	return d, nil
}

// Bundle is one set of bundled module instances.
type Bundle struct {
	Kanban   *Kanban
	Reports  *Reports
	AuditLog *AuditLog
}

// NewBundle creates fresh module instances.
func NewBundle() *Bundle {
	return &Bundle{
		Kanban:   NewKanban(),
		Reports:  NewReports(),
		AuditLog: NewAuditLog(),
	}
}

// Descriptors returns the descriptors in registration order.
func (b *Bundle) Descriptors() ([]plugin.Descriptor, error) {
	var out []plugin.Descriptor
	for _, m := range []interface {
		Descriptor() (plugin.Descriptor, error)
	}{b.Kanban, b.Reports, b.AuditLog} {
		d, err := m.Descriptor()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Bundled returns the descriptors of a fresh Bundle.
func Bundled() ([]plugin.Descriptor, error) {
	return NewBundle().Descriptors()
}
