// Package installer extracts package archives into a destination root and
// validates destinations.
//
// Archives are zip, tar.gz or tar.xz. Extraction always happens in a
// staging directory next to the final location; the existing package is
// only replaced once the archive has been fully extracted, so a corrupt
// archive never leaves partial files at the install path.
package installer
