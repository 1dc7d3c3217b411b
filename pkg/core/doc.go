// Package core is the top-level install driver.
//
// InstallAll runs one complete install: preflight of the destination,
// catalog lookup, the symlink preference, dependency resolution and
// sequencing, the requested packages themselves, demo content and finally
// the site cache. Fatal problems stop the run and are returned as errors
// alongside a RunResult marked Aborted; everything else is recorded per
// package and the run continues.
package core
