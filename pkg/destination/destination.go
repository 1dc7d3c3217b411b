// Package destination classifies install target paths.
package destination

import (
	"os"

	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/types"
)

// Check inspects path without following a final symlink. It has no side
// effects and must be called again whenever the answer matters, since
// earlier steps of a run may have changed the path.
//
// Errors other than not-exist are reported as occupied so that callers
// never treat an unreadable path as free to write.
func Check(fsys types.FS, path string) types.DestinationState {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.DestAbsent
		}
		logger := logging.GetLogger("destination")
		logger.Warn().
			Err(err).
			Str("path", path).
			Msg("Could not inspect destination, treating as occupied")
		return types.DestOccupied
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return types.DestSymlinked
	}
	return types.DestOccupied
}
