package menu

import (
	"log/slog"
	"sync"

	"github.com/goatkit/adminshell/internal/plugin"
	pkgplugin "github.com/goatkit/adminshell/pkg/plugin"
)

// Source supplies the active plugins and announces changes to them.
// *plugin.Registry satisfies it.
type Source interface {
	ActiveDescriptors() []pkgplugin.Descriptor
	Subscribe(fn func(plugin.Event)) (unsubscribe func())
}

// Navigator caches the composed tree and recomposes it after the active
// plugin set or the language changes.
type Navigator struct {
	source     Source
	translator pkgplugin.Translator
	builtins   Builtins
	opts       Options
	logger     *slog.Logger

	mu         sync.Mutex
	tree       *Tree
	generation uint64

	unsubscribe []func()
}

// NewNavigator wires a navigator to source and translator. Call Close to
// detach it.
func NewNavigator(source Source, translator pkgplugin.Translator, builtins Builtins, opts Options, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Navigator{
		source:     source,
		translator: translator,
		builtins:   builtins,
		opts:       opts,
		logger:     logger,
	}
	n.unsubscribe = append(n.unsubscribe, source.Subscribe(func(ev plugin.Event) {
		n.Invalidate()
	}))
	if translator != nil {
		n.unsubscribe = append(n.unsubscribe, translator.OnLanguageChange(func(string) {
			n.Invalidate()
		}))
	}
	return n
}

// Tree returns the current navigation tree. The result may be shared with
// other callers and must not be modified.
func (n *Navigator) Tree() Tree {
	n.mu.Lock()
	if n.tree != nil {
		t := *n.tree
		n.mu.Unlock()
		return t
	}
	gen := n.generation
	n.mu.Unlock()

	var t pkgplugin.TranslateFunc
	if n.translator != nil {
		t = n.translator.T
	}
	tree := Compose(n.builtins, n.source.ActiveDescriptors(), t, n.opts)

	n.mu.Lock()
	// Only cache if nothing changed while composing.
	if n.generation == gen {
		n.tree = &tree
	}
	n.mu.Unlock()

	n.logger.Debug("navigation composed", "groups", len(tree.Groups))
	return tree
}

// Invalidate drops the cached tree.
func (n *Navigator) Invalidate() {
	n.mu.Lock()
	n.tree = nil
	n.generation++
	n.mu.Unlock()
}

// Close detaches the navigator from its source and translator.
func (n *Navigator) Close() {
	for _, fn := range n.unsubscribe {
		fn()
	}
	n.unsubscribe = nil
}
