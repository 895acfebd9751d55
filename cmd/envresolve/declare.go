package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ab0utbla-k/envresolver/convert"
	"github.com/ab0utbla-k/envresolver/resolver"
)

// declarationFile is the YAML layout accepted by --file.
type declarationFile struct {
	Separator      string            `yaml:"separator"`
	DateTimeFormat string            `yaml:"datetime_format"`
	Silent         bool              `yaml:"silent"`
	Variables      []fileDeclaration `yaml:"variables"`
}

type fileDeclaration struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default any    `yaml:"default"`
}

type declaration struct {
	Name    string
	Type    string
	Default *string
}

func loadDeclarationFile(path string) (*declarationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read declaration file: %w", err)
	}

	var file declarationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse declaration file %s: %w", path, err)
	}
	return &file, nil
}

// declarations flattens file entries into declarations. Non-string defaults are
// written back as text; sequences are joined with sep.
func (f *declarationFile) declarations(sep string) []declaration {
	decls := make([]declaration, 0, len(f.Variables))
	for _, v := range f.Variables {
		d := declaration{Name: v.Name, Type: v.Type}
		if v.Default != nil {
			text := defaultText(v.Default, sep)
			d.Default = &text
		}
		decls = append(decls, d)
	}
	return decls
}

func defaultText(v any, sep string) string {
	switch v := v.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, sep)
	default:
		return fmt.Sprint(v)
	}
}

// parseDeclaration parses NAME[:TYPE][=DEFAULT]. The type defaults to string.
func parseDeclaration(arg string) (declaration, error) {
	head, def, hasDefault := strings.Cut(arg, "=")
	name, typ, hasType := strings.Cut(head, ":")

	d := declaration{Name: strings.TrimSpace(name), Type: string(convert.String)}
	if hasType {
		d.Type = typ
	}
	if hasDefault {
		d.Default = &def
	}

	if d.Name == "" {
		return declaration{}, fmt.Errorf("invalid declaration %q: missing name", arg)
	}
	return d, nil
}

// declareAll declares every variable on r. Textual defaults are converted with
// the declared type; a default that does not convert is an error.
func declareAll(r *resolver.Resolver, decls []declaration) error {
	for _, d := range decls {
		typ := d.Type
		if strings.TrimSpace(typ) == "" {
			typ = string(convert.String)
		}

		tag, err := convert.ParseTag(typ)
		if err != nil {
			return fmt.Errorf("variable %s: %w", d.Name, err)
		}

		if err := r.Declare(d.Name, tag, nil); err != nil {
			return err
		}
		if d.Default == nil {
			continue
		}

		def, err := r.Registry().Convert(tag, *d.Default)
		if err != nil {
			return fmt.Errorf("variable %s: invalid default: %w", d.Name, err)
		}
		if err := r.Declare(d.Name, tag, def); err != nil {
			return err
		}
	}
	return nil
}
