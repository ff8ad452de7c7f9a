// Package descriptor loads declarative type metadata from YAML documents
// and produces meta.Descriptor values for codec construction.
//
// A document describes any number of types:
//
//	types:
//	  User:
//	    hint:
//	      field: kind
//	      value: user
//	    fields:
//	      - name: name
//	      - name: retries
//	        default: 3
//	      - name: token
//	        ignored: true
//	        default: ""
//	      - embedded: true
//
// Every descriptor is validated through meta.Compile before it is returned,
// so misconfiguration (an ignored field without a default) fails at load
// time rather than at first use.
package descriptor

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/treecodec/meta"
)

type fileDoc struct {
	Types map[string]typeDoc `yaml:"types"`
}

type typeDoc struct {
	Hint   hintDoc    `yaml:"hint"`
	Fields []fieldDoc `yaml:"fields"`
}

type hintDoc struct {
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}

type fieldDoc struct {
	Name     string    `yaml:"name"`
	Default  yaml.Node `yaml:"default"`
	Embedded bool      `yaml:"embedded"`
	Ignored  bool      `yaml:"ignored"`
}

// File holds the descriptors parsed from one YAML document, keyed by type
// name.
type File struct {
	Types map[string]meta.Descriptor
}

// TypeNames returns the declared type names in sorted order.
func (f *File) TypeNames() []string {
	names := make([]string, 0, len(f.Types))
	for n := range f.Types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parse reads a YAML descriptor document and validates every type it
// declares.
func Parse(data []byte) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	if len(doc.Types) == 0 {
		return nil, fmt.Errorf("descriptor: document declares no types")
	}

	out := &File{Types: make(map[string]meta.Descriptor, len(doc.Types))}
	for name, td := range doc.Types {
		desc, err := convert(td)
		if err != nil {
			return nil, fmt.Errorf("descriptor: type %s: %w", name, err)
		}
		if _, err := meta.Compile(name, desc); err != nil {
			return nil, err
		}
		out.Types[name] = desc
	}
	return out, nil
}

// Load reads and parses the YAML descriptor document at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	return Parse(data)
}

func convert(td typeDoc) (meta.Descriptor, error) {
	desc := meta.Descriptor{
		Hint: meta.HintDescriptor{Field: td.Hint.Field, Value: td.Hint.Value},
	}
	for i, fd := range td.Fields {
		fm := meta.FieldDescriptor{
			Name:     fd.Name,
			Embedded: fd.Embedded,
			Ignored:  fd.Ignored,
		}
		// A present "default" key, including an explicit null, configures a
		// default value.
		if !fd.Default.IsZero() {
			var v any
			if err := fd.Default.Decode(&v); err != nil {
				return meta.Descriptor{}, fmt.Errorf("field %d: %w", i, err)
			}
			fm.Default = normalizeDefault(v)
			fm.HasDefault = true
		}
		desc.Fields = append(desc.Fields, fm)
	}
	return desc, nil
}

// normalizeDefault aligns YAML scalar types with what the primitive codecs
// produce, so defaults assign cleanly onto struct fields.
func normalizeDefault(v any) any {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int64(n)) {
			return int(n)
		}
		return n
	default:
		return v
	}
}
