// Package paths provides centralized path handling for gpm.
//
// It resolves the XDG config, cache and state directories (with GPM_*
// environment overrides) and knows the layout of a destination root:
// where user content, pages, the cache folder and temporary downloads live.
package paths
