package catalog

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/types"
)

// requirement accumulates the constraints declared for one dependency
type requirement struct {
	name        string
	constraints []string
	requiredBy  []string
}

// GetDependencies resolves the dependencies of names transitively. The
// requested names themselves never appear in the result. Dependencies that
// are installed, satisfy every constraint and have no newer version are
// omitted. Result order is first-declaration order of a breadth-first walk.
func (c *Catalog) GetDependencies(names []string) (types.Resolution, error) {
	logger := logging.GetLogger("catalog.resolve")

	requested := make(map[string]bool, len(names))
	var queue []string
	for _, n := range names {
		key := strings.ToLower(n)
		if !requested[key] {
			requested[key] = true
			queue = append(queue, key)
		}
	}

	reqs := map[string]*requirement{}
	var order []string
	var platform *types.PlatformRequirement
	visited := map[string]bool{}

	for len(queue) > 0 {
		slug := queue[0]
		queue = queue[1:]
		if visited[slug] {
			continue
		}
		visited[slug] = true

		entry, ok := c.entries[slug]
		if !ok {
			continue
		}

		for _, dep := range entry.Dependencies {
			if dep.Name == c.platformName {
				if platform == nil {
					platform = &types.PlatformRequirement{Name: c.platformName}
				}
				if dep.Version != "" {
					platform.Constraints = append(platform.Constraints, dep.Version)
				}
				continue
			}
			if requested[dep.Name] {
				continue
			}
			if _, known := c.entries[dep.Name]; !known {
				return types.Resolution{}, errors.Newf(errors.ErrResolution,
					"package %s depends on %s, which is not in the index", slug, dep.Name).
					WithDetail("package", slug).
					WithDetail("dependency", dep.Name)
			}

			r, seen := reqs[dep.Name]
			if !seen {
				r = &requirement{name: dep.Name}
				reqs[dep.Name] = r
				order = append(order, dep.Name)
				queue = append(queue, dep.Name)
			}
			if dep.Version != "" {
				r.constraints = append(r.constraints, dep.Version)
			}
			r.requiredBy = append(r.requiredBy, slug)
		}
	}

	var res types.Resolution
	for _, name := range order {
		action, needed, err := c.classify(reqs[name])
		if err != nil {
			return types.Resolution{}, err
		}
		if needed {
			res.Dependencies = append(res.Dependencies, types.Dependency{Name: name, Action: action})
		}
	}

	if platform != nil {
		min, err := minimumVersion(platform.Constraints)
		if err != nil {
			return types.Resolution{}, err
		}
		platform.MinVersion = min
		res.Platform = platform
	}

	logger.Debug().
		Strs("requested", names).
		Strs("dependencies", res.Dependencies.Names()).
		Bool("platform", res.Platform != nil).
		Msg("Dependencies resolved")

	return res, nil
}

func (c *Catalog) classify(r *requirement) (types.DependencyAction, bool, error) {
	pkg := c.packages[r.name]

	constraints := make([]*semver.Constraints, 0, len(r.constraints))
	for _, raw := range r.constraints {
		cs, err := parseConstraint(raw)
		if err != nil {
			return "", false, errors.Wrapf(err, errors.ErrResolution,
				"invalid version requirement %q for %s", raw, r.name).
				WithDetail("dependency", r.name)
		}
		if cs != nil {
			constraints = append(constraints, cs)
		}
	}

	latestOK := satisfiesAll(pkg.Version, constraints)

	if pkg.InstalledVersion == "" {
		if pkg.HasInstallableVersion() && !latestOK {
			return "", false, incompatible(r, pkg.Version)
		}
		return types.ActionInstall, true, nil
	}

	if !satisfiesAll(pkg.InstalledVersion, constraints) {
		if !latestOK {
			return "", false, incompatible(r, pkg.Version)
		}
		return types.ActionUpdate, true, nil
	}

	if pkg.Available != "" {
		return types.ActionIgnore, true, nil
	}
	return "", false, nil
}

func incompatible(r *requirement, latest string) error {
	return errors.Newf(errors.ErrResolution,
		"no available version of %s satisfies %s (required by %s, latest is %s)",
		r.name, strings.Join(r.constraints, " and "), strings.Join(r.requiredBy, ", "), latest).
		WithDetail("dependency", r.name)
}

// parseConstraint returns nil for "any version" requirements
func parseConstraint(raw string) (*semver.Constraints, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return nil, nil
	}
	return semver.NewConstraint(raw)
}

func satisfiesAll(version string, constraints []*semver.Constraints) bool {
	if len(constraints) == 0 {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	for _, c := range constraints {
		if !c.Check(v) {
			return false
		}
	}
	return true
}

// minimumVersion returns the highest lower bound named across constraints
func minimumVersion(constraints []string) (string, error) {
	var best *semver.Version
	for _, raw := range constraints {
		if _, err := parseConstraint(raw); err != nil {
			return "", errors.Wrapf(err, errors.ErrResolution, "invalid platform requirement %q", raw)
		}
		for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' || r == '|' }) {
			if strings.HasPrefix(part, "<") || strings.HasPrefix(part, "!") {
				continue
			}
			v, err := semver.NewVersion(strings.TrimLeft(part, ">=~^v"))
			if err != nil {
				continue
			}
			if best == nil || v.GreaterThan(best) {
				best = v
			}
		}
	}
	if best == nil {
		return "", nil
	}
	return best.Original(), nil
}
