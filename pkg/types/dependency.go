package types

// DependencyAction tells the sequencer what a resolved dependency needs
type DependencyAction string

const (
	// ActionInstall is a mandatory install of a missing dependency
	ActionInstall DependencyAction = "install"
	// ActionUpdate is a mandatory update of an outdated dependency
	ActionUpdate DependencyAction = "update"
	// ActionIgnore is an optional update: a newer version exists but is not required
	ActionIgnore DependencyAction = "ignore"
)

// BucketOrder is the processing order of dependency buckets.
var BucketOrder = []DependencyAction{ActionInstall, ActionUpdate, ActionIgnore}

// Dependency is one resolved dependency and its required action
type Dependency struct {
	Name   string
	Action DependencyAction
}

// DependencyList is the ordered result of dependency resolution. Order is
// resolution order and is preserved by every filter.
type DependencyList []Dependency

// Has reports whether name appears in the list, whatever its action
func (l DependencyList) Has(name string) bool {
	for _, d := range l {
		if d.Name == name {
			return true
		}
	}
	return false
}

// Filter returns the entries with the given action, in list order
func (l DependencyList) Filter(action DependencyAction) DependencyList {
	var out DependencyList
	for _, d := range l {
		if d.Action == action {
			out = append(out, d)
		}
	}
	return out
}

// Names returns the dependency names in list order
func (l DependencyList) Names() []string {
	names := make([]string, 0, len(l))
	for _, d := range l {
		names = append(names, d.Name)
	}
	return names
}

// PlatformRequirement is the platform/core dependency collected during
// resolution. It is validated and stripped before bucketing.
type PlatformRequirement struct {
	// Name of the platform, e.g. "grav"
	Name string
	// Constraints as declared by each requiring package
	Constraints []string
	// MinVersion is the highest lower bound across Constraints
	MinVersion string
}

// Resolution is what the catalog computes for a set of requested packages
type Resolution struct {
	Platform     *PlatformRequirement
	Dependencies DependencyList
}
