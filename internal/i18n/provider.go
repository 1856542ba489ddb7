// Package i18n is the translation provider of the admin shell. Resources are
// grouped by language and namespace; plugins merge their bundles under their
// own namespace and the shell's own strings live in CoreNamespace.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/goatkit/adminshell/pkg/plugin"
)

// CoreNamespace holds the shell's built-in strings (navigation, group titles).
const CoreNamespace = plugin.CoreNamespace

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var builtinLocales embed.FS

var _ plugin.Translator = (*Provider)(nil)

// Provider resolves translations. Lookups fall back from the current
// language to its base language, then to the fallback language, then to the
// caller's default value.
type Provider struct {
	mu        sync.RWMutex
	resources map[string]map[string]map[string]string // lang -> namespace -> key -> value
	lang      string
	fallback  string

	listenMu  sync.Mutex
	listeners map[int]func(string)
	nextID    int

	logger *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLanguage sets the initial language.
func WithLanguage(lang string) Option {
	return func(p *Provider) { p.lang = canonical(lang) }
}

// WithFallback sets the language consulted when the current one has no
// translation for a key.
func WithFallback(lang string) Option {
	return func(p *Provider) { p.fallback = canonical(lang) }
}

// WithLogger sets the provider logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// New creates a provider preloaded with the built-in locales.
func New(opts ...Option) (*Provider, error) {
	p := &Provider{
		resources: make(map[string]map[string]map[string]string),
		lang:      DefaultLanguage,
		fallback:  DefaultLanguage,
		listeners: make(map[int]func(string)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if err := p.loadFS(builtinLocales, "locales", CoreNamespace); err != nil {
		return nil, err
	}
	return p, nil
}

// loadFS merges every <lang>.yaml file of dir into namespace.
func (p *Provider) loadFS(fsys fs.FS, dir, namespace string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read locales: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read locale %s: %w", e.Name(), err)
		}
		bundle, err := ParseBundle(data)
		if err != nil {
			return fmt.Errorf("locale %s: %w", e.Name(), err)
		}
		p.MergeResources(strings.TrimSuffix(e.Name(), ".yaml"), namespace, bundle)
	}
	return nil
}

// ParseBundle decodes a YAML document into a flat key -> value bundle.
// Nested mappings are joined with dots: {nav: {tasks: Tasks}} becomes
// "nav.tasks".
func ParseBundle(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	out := make(map[string]string)
	flatten("", doc, out)
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// T translates key in namespace, returning defaultValue when no language in
// the fallback chain has it.
func (p *Provider) T(namespace, key, defaultValue string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, lang := range p.chainLocked() {
		if v, ok := p.resources[lang][namespace][key]; ok {
			return v
		}
	}
	return defaultValue
}

// Func returns T as a plugin.TranslateFunc.
func (p *Provider) Func() plugin.TranslateFunc {
	return p.T
}

func (p *Provider) chainLocked() []string {
	chain := []string{p.lang}
	if base := baseOf(p.lang); base != p.lang {
		chain = append(chain, base)
	}
	if !slices.Contains(chain, p.fallback) {
		chain = append(chain, p.fallback)
	}
	return chain
}

// CurrentLanguage returns the active language tag.
func (p *Provider) CurrentLanguage() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

// SetLanguage switches the active language and notifies listeners when it
// changed. The tag must be a valid BCP 47 tag; it does not need to have
// resources loaded.
func (p *Provider) SetLanguage(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}
	next := tag.String()

	p.mu.Lock()
	prev := p.lang
	p.lang = next
	p.mu.Unlock()

	if prev == next {
		return nil
	}
	p.logger.Debug("language changed", "from", prev, "to", next)

	p.listenMu.Lock()
	fns := make([]func(string), 0, len(p.listeners))
	for _, id := range slices.Sorted(maps.Keys(p.listeners)) {
		fns = append(fns, p.listeners[id])
	}
	p.listenMu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return nil
}

// Match picks the best supported language for the accepted ones, e.g. from
// an Accept-Language list. It returns the fallback when nothing matches.
func (p *Provider) Match(accepted ...string) string {
	langs := p.Languages()
	if len(langs) == 0 {
		return p.fallback
	}
	supported := make([]language.Tag, 0, len(langs)+1)
	// The first entry is the matcher's default.
	supported = append(supported, language.Make(p.fallback))
	for _, l := range langs {
		supported = append(supported, language.Make(l))
	}
	var wanted []language.Tag
	for _, a := range accepted {
		if tags, _, err := language.ParseAcceptLanguage(a); err == nil {
			wanted = append(wanted, tags...)
		}
	}
	_, idx, conf := language.NewMatcher(supported).Match(wanted...)
	if conf == language.No {
		return p.fallback
	}
	return canonical(supported[idx].String())
}

// OnLanguageChange registers fn to be called with the new language after
// every change. Listeners run in registration order.
func (p *Provider) OnLanguageChange(fn func(language string)) (unsubscribe func()) {
	p.listenMu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.listenMu.Unlock()

	return func() {
		p.listenMu.Lock()
		delete(p.listeners, id)
		p.listenMu.Unlock()
	}
}

// MergeResources adds bundle to namespace for language. Existing keys are
// overwritten.
func (p *Provider) MergeResources(lang, namespace string, bundle map[string]string) {
	lang = canonical(lang)

	p.mu.Lock()
	defer p.mu.Unlock()

	nss, ok := p.resources[lang]
	if !ok {
		nss = make(map[string]map[string]string)
		p.resources[lang] = nss
	}
	kv, ok := nss[namespace]
	if !ok {
		kv = make(map[string]string, len(bundle))
		nss[namespace] = kv
	}
	maps.Copy(kv, bundle)
}

// RemoveResources drops namespace for language.
func (p *Provider) RemoveResources(lang, namespace string) {
	lang = canonical(lang)

	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.resources[lang], namespace)
	if len(p.resources[lang]) == 0 {
		delete(p.resources, lang)
	}
}

// HasNamespace reports whether any language has resources in namespace.
func (p *Provider) HasNamespace(namespace string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, nss := range p.resources {
		if _, ok := nss[namespace]; ok {
			return true
		}
	}
	return false
}

// Languages returns the languages that have resources, sorted.
func (p *Provider) Languages() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	langs := make([]string, 0, len(p.resources))
	for l := range p.resources {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// canonical normalizes a language tag ("ZH-cn" -> "zh-CN"). Unparseable
// values are kept lower-cased so they still act as lookup keys.
func canonical(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(lang))
	}
	return tag.String()
}

func baseOf(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	base, _ := tag.Base()
	return base.String()
}
