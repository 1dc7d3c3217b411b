// Package catalog reads the package index and resolves dependencies.
//
// The index is a YAML document listing packages with their latest version,
// archive URL, source repository and declared dependencies. Installed
// versions are discovered from each package's blueprints.yaml under the
// destination root. Dependency resolution walks declarations transitively
// and classifies every dependency as install, update or ignore; the
// platform dependency is collected separately as a PlatformRequirement.
package catalog
