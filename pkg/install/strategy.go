package install

import (
	"github.com/arthur-debert/gpm/pkg/types"
)

// SourceLocator finds a local checkout for a package
type SourceLocator interface {
	Locate(pkg *types.Package) (string, bool)
}

// ChooseStrategy picks symlink when symlinks are enabled and either a local
// source exists or the package has no installable version at all.
// Everything else is downloaded.
func ChooseStrategy(pkg *types.Package, useSymlinks bool, locator SourceLocator) types.Strategy {
	if !useSymlinks {
		return types.StrategyDownload
	}
	if !pkg.HasInstallableVersion() {
		return types.StrategySymlink
	}
	if locator != nil {
		if _, ok := locator.Locate(pkg); ok {
			return types.StrategySymlink
		}
	}
	return types.StrategyDownload
}
