package config

import (
	"os"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/paths"
	"gopkg.in/yaml.v3"
)

// LoadDevRoots reads an ordered list of development roots from a YAML file.
// A missing file yields no roots. Three shapes are accepted, all keeping
// document order: a plain sequence of paths, a sequence under a "paths" or
// "dev_roots" key, or a mapping of name to path:
//
//	github: ~/src/github
//	bitbucket: ~/src/bb
func LoadDevRoots(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	roots, err := rootsFromNode(doc.Content[0])
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "unexpected layout in %s", path)
	}

	for i, r := range roots {
		roots[i] = paths.ExpandHome(r)
	}
	return roots, nil
}

func rootsFromNode(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var roots []string
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, errors.Newf(errors.ErrConfigParse, "line %d: expected a path", item.Line)
			}
			roots = append(roots, item.Value)
		}
		return roots, nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if (key.Value == "paths" || key.Value == "dev_roots") && value.Kind == yaml.SequenceNode {
				return rootsFromNode(value)
			}
		}
		var roots []string
		for i := 0; i+1 < len(node.Content); i += 2 {
			value := node.Content[i+1]
			if value.Kind == yaml.ScalarNode && value.Value != "" {
				roots = append(roots, value.Value)
			}
		}
		return roots, nil

	case yaml.ScalarNode:
		if node.Value == "" {
			return nil, nil
		}
		return []string{node.Value}, nil
	}

	return nil, errors.Newf(errors.ErrConfigParse, "line %d: unsupported node", node.Line)
}
