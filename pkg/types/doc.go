// Package types defines the core types and interfaces used throughout gpm.
// This includes the Package model handed out by the catalog, dependency
// actions and resolutions, destination states and install outcomes, and the
// narrow capability interfaces (FS, Confirmer, Reporter, Installer, Transfer)
// the orchestrator is built against.
package types
