package types

// FindResult is the outcome of a catalog lookup. Found keeps the order of
// the requested names.
type FindResult struct {
	Found    []*Package
	NotFound []string
}

// Get returns the found package with slug name
func (r FindResult) Get(name string) (*Package, bool) {
	for _, p := range r.Found {
		if p.Slug == name {
			return p, true
		}
	}
	return nil, false
}

// Catalog resolves names to packages and computes dependencies
type Catalog interface {
	FindPackages(names []string) FindResult
	FindPackage(name string) (*Package, bool)
	// GetDependencies fails with a RESOLUTION error for incompatible or
	// malformed version requirements.
	GetDependencies(names []string) (Resolution, error)
}
