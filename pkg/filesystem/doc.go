// Package filesystem provides filesystem implementations for gpm.
//
// It contains the OS implementation of types.FS and the FileOps helpers
// (recursive copy, recursive delete, directory creation) used when placing
// packages and provisioning demo content.
package filesystem
