// Package install drives a single package from acquisition to placement.
//
// A package is acquired either by downloading its release archive or by
// symlinking a local development checkout. ChooseStrategy decides which,
// once, before the Transaction starts. Transaction.Run then walks
//
//	SourceCheck -> DestinationCheck -> Place | Abort
//
// and always returns an InstallOutcome. Downloads land in a run-unique
// temporary directory which Place removes whatever the installer reports.
package install
