package catalog

import (
	"strings"

	"github.com/arthur-debert/gpm/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Index is the on-disk package index
type Index struct {
	Platform *PlatformInfo `yaml:"platform,omitempty"`
	Packages []IndexEntry  `yaml:"packages"`
}

// PlatformInfo is informational metadata about the indexed platform
type PlatformInfo struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// IndexEntry describes one package in the index
type IndexEntry struct {
	Slug         string           `yaml:"slug"`
	Name         string           `yaml:"name"`
	Type         string           `yaml:"type"`
	Version      string           `yaml:"version"`
	ZipballURL   string           `yaml:"zipball_url"`
	Repository   string           `yaml:"repository"`
	InstallPath  string           `yaml:"install_path"`
	Dependencies []DependencySpec `yaml:"dependencies"`
}

// DependencySpec is a declared dependency. In YAML it is either a bare
// name or a mapping with name and version keys.
type DependencySpec struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// UnmarshalYAML accepts both the scalar and mapping forms
func (d *DependencySpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Name = node.Value
		return nil
	}
	type plain DependencySpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = DependencySpec(p)
	return nil
}

// ParseIndex decodes and validates an index document
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, errors.Wrap(err, errors.ErrIndexLoad, "failed to parse package index")
	}

	seen := make(map[string]bool, len(idx.Packages))
	for i := range idx.Packages {
		e := &idx.Packages[i]
		e.Slug = strings.ToLower(strings.TrimSpace(e.Slug))
		if e.Slug == "" {
			return nil, errors.Newf(errors.ErrIndexLoad, "package #%d has no slug", i+1)
		}
		if seen[e.Slug] {
			return nil, errors.Newf(errors.ErrIndexLoad, "duplicate package %q in index", e.Slug)
		}
		seen[e.Slug] = true
		for j := range e.Dependencies {
			e.Dependencies[j].Name = strings.ToLower(strings.TrimSpace(e.Dependencies[j].Name))
		}
	}
	return &idx, nil
}
