// Package manifest reads and writes the declarative part of a plugin
// descriptor as YAML. Manifests are checked against an embedded JSON schema
// before they are decoded; hooks are never part of a manifest.
package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/goatkit/adminshell/pkg/plugin"
)

//go:embed schema.json
var schemaJSON []byte

var schema = mustSchema()

func mustSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("manifest schema: %v", err))
	}
	return s
}

// ErrInvalid is wrapped by every schema or descriptor validation failure.
var ErrInvalid = errors.New("invalid plugin manifest")

// ValidationError lists the schema violations of a manifest.
type ValidationError struct {
	Source string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, strings.Join(e.Issues, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// Parse decodes one manifest document.
func Parse(data []byte) (plugin.Descriptor, error) {
	return parse("manifest", data)
}

func parse(source string, data []byte) (plugin.Descriptor, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return plugin.Descriptor{}, fmt.Errorf("%s: parse yaml: %w", source, err)
	}
	if err := validate(source, doc); err != nil {
		return plugin.Descriptor{}, err
	}

	var d plugin.Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return plugin.Descriptor{}, fmt.Errorf("%s: decode: %w", source, err)
	}
	if err := d.Validate(); err != nil {
		return plugin.Descriptor{}, fmt.Errorf("%s: %w", source, err)
	}
	return d, nil
}

func validate(source string, doc any) error {
	if doc == nil {
		return &ValidationError{Source: source, Issues: []string{"empty document"}}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%s: validate: %w", source, err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, re.String())
	}
	return &ValidationError{Source: source, Issues: issues}
}

// ParseAll decodes every document of a multi-document YAML stream.
func ParseAll(r io.Reader) ([]plugin.Descriptor, error) {
	dec := yaml.NewDecoder(r)
	var out []plugin.Descriptor
	for i := 0; ; i++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: parse yaml: %w", i, err)
		}
		data, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		d, err := parse(fmt.Sprintf("document %d", i), data)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
}

// LoadFile reads a single manifest file.
func LoadFile(path string) (plugin.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return plugin.Descriptor{}, fmt.Errorf("read manifest: %w", err)
	}
	return parse(path, data)
}

// LoadDir reads every *.yaml and *.yml file directly inside dir, sorted by
// file name. A missing directory yields no manifests.
func LoadDir(dir string) ([]plugin.Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []plugin.Descriptor
	var errs []error
	for _, name := range names {
		d, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, d)
	}
	return out, errors.Join(errs...)
}

// Export writes descs as a multi-document YAML stream that ParseAll reads
// back.
func Export(w io.Writer, descs []plugin.Descriptor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, d := range descs {
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("export %s: %w", d.ID, err)
		}
	}
	return enc.Close()
}

// Marshal returns the manifest of a single descriptor.
func Marshal(d plugin.Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, []plugin.Descriptor{d}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
