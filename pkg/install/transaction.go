package install

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/gpm/pkg/destination"
	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/filesystem"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/rs/zerolog"
)

// Outcome reasons
const (
	ReasonSourceNotFound   = "source not found"
	ReasonSymlinkPresent   = "symlink present, skipped"
	ReasonNotOverwritten   = "not overwritten"
	ReasonSymlinkNotDelete = "symlink not deleted"
	ReasonSymlinkBlocked   = "cannot overwrite an existing package with a symlink"
)

const failedLine = "  '- Installation failed or aborted."

// Options configures a Transaction
type Options struct {
	// Root is the destination root
	Root string
	// CacheDir receives temporary downloads
	CacheDir string
	// AssumeYes answers destination prompts without asking
	AssumeYes bool

	FS        types.FS
	Installer types.Installer
	Transfer  types.Transfer
	Confirmer types.Confirmer
	Reporter  types.Reporter
	Locator   SourceLocator

	// NewToken returns the unique part of temporary directory names
	NewToken func() string
}

// Transaction runs the install state machine for one package at a time
type Transaction struct {
	root      string
	cacheDir  string
	assumeYes bool

	fs        types.FS
	ops       *filesystem.FileOps
	installer types.Installer
	transfer  types.Transfer
	confirmer types.Confirmer
	reporter  types.Reporter
	locator   SourceLocator
	newToken  func() string
	logger    zerolog.Logger
}

// NewTransaction creates a transaction runner
func NewTransaction(opts Options) *Transaction {
	t := &Transaction{
		root:      opts.Root,
		cacheDir:  opts.CacheDir,
		assumeYes: opts.AssumeYes,
		fs:        opts.FS,
		ops:       filesystem.NewFileOps(),
		installer: opts.Installer,
		transfer:  opts.Transfer,
		confirmer: opts.Confirmer,
		reporter:  opts.Reporter,
		locator:   opts.Locator,
		newToken:  opts.NewToken,
		logger:    logging.GetLogger("install.transaction"),
	}
	if t.fs == nil {
		t.fs = filesystem.NewOS()
	}
	if t.newToken == nil {
		t.newToken = newUUIDToken
	}
	return t
}

// destDecision is the result of DestinationCheck
type destDecision struct {
	proceed    bool
	deleteLink bool
	outcome    types.InstallOutcome
}

// Run executes one package with the given strategy. skipPrompt marks the
// overwrite as already confirmed by the caller.
func (t *Transaction) Run(ctx context.Context, pkg *types.Package, strategy types.Strategy, skipPrompt bool) types.InstallOutcome {
	logger := t.logger.With().Str("package", pkg.Slug).Str("strategy", string(strategy)).Logger()
	done := logging.LogOperationStart(logger, "install transaction")
	defer done()

	var outcome types.InstallOutcome
	if strategy == types.StrategySymlink {
		outcome = t.runSymlink(pkg, skipPrompt)
	} else {
		outcome = t.runDownload(ctx, pkg, skipPrompt)
	}

	logger.Info().Str("status", string(outcome.Status)).Str("reason", outcome.Reason).Msg("Transaction finished")
	return outcome
}

func (t *Transaction) runSymlink(pkg *types.Package, skipPrompt bool) types.InstallOutcome {
	t.reporter.Report(fmt.Sprintf("Preparing to symlink %s", pkg.DisplayName()))

	// SourceCheck
	var source string
	var found bool
	if t.locator != nil {
		source, found = t.locator.Locate(pkg)
	}
	if !found {
		t.reporter.Report("  |- Checking source...  not found!")
		t.reporter.Report(failedLine)
		return types.Failed(pkg.Slug, types.StrategySymlink, ReasonSourceNotFound)
	}
	t.reporter.Report("  |- Checking source...  ok")

	// DestinationCheck
	dest := pkg.Destination(t.root)
	if destination.Check(t.fs, dest) == types.DestSymlinked {
		t.reporter.Report("  |- Checking destination...  symbolic link")
		t.reporter.Report("  '- Symlink cannot overwrite an existing package, please remove first")
		return types.Failed(pkg.Slug, types.StrategySymlink, ReasonSymlinkBlocked)
	}
	decision := t.checkDestination(pkg, dest, skipPrompt)
	if !decision.proceed {
		return decision.outcome
	}

	// Place
	if destination.Check(t.fs, dest) != types.DestAbsent {
		t.reporter.Report("  '- Symlink cannot overwrite an existing package, please remove first")
		return types.Failed(pkg.Slug, types.StrategySymlink, ReasonSymlinkBlocked)
	}
	if err := t.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return t.placeFailed(pkg, types.StrategySymlink, "Symlinking", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dest)))
	}
	if err := t.fs.Symlink(source, dest); err != nil {
		return t.placeFailed(pkg, types.StrategySymlink, "Symlinking", errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", dest))
	}

	t.reporter.Report("  |- Symlinking package...    ok")
	t.reporter.Report("  '- Success!")
	return types.Succeeded(pkg.Slug, types.StrategySymlink)
}

func (t *Transaction) runDownload(ctx context.Context, pkg *types.Package, skipPrompt bool) types.InstallOutcome {
	t.reporter.Report(fmt.Sprintf("Preparing to install %s [v%s]", pkg.DisplayName(), pkg.TargetVersion()))

	dest := pkg.Destination(t.root)
	decision := t.checkDestination(pkg, dest, skipPrompt)
	if !decision.proceed {
		return decision.outcome
	}

	fetched, err := t.Fetch(ctx, pkg)
	if err != nil {
		t.reporter.Report(DownloadLabel + "    failed")
		t.reporter.Report("  |  '- " + errors.Message(err))
		t.reporter.Report(failedLine)
		return types.Failed(pkg.Slug, types.StrategyDownload, errors.Message(err))
	}

	return t.place(pkg, fetched, decision.deleteLink)
}

// place hands the archive to the installer and removes the temporary
// directory whatever happens.
func (t *Transaction) place(pkg *types.Package, fetched *Fetched, deleteLink bool) types.InstallOutcome {
	defer t.removeTemp(fetched.Dir)

	dest := pkg.Destination(t.root)
	if deleteLink && destination.Check(t.fs, dest) == types.DestSymlinked {
		if err := t.fs.Remove(dest); err != nil {
			return t.placeFailed(pkg, types.StrategyDownload, "Installing", errors.Wrapf(err, errors.ErrFileAccess, "failed to remove symlink %s", dest))
		}
		t.logger.Debug().Str("path", dest).Msg("Removed symlink before install")
	}

	err := t.installer.Install(fetched.Archive, t.root, types.InstallOptions{
		RelativePath: pkg.InstallPath,
		IsTheme:      pkg.IsTheme(),
		Slug:         pkg.Slug,
	})
	if err != nil {
		return t.placeFailed(pkg, types.StrategyDownload, "Installing", err)
	}

	t.reporter.Report("  |- Installing package...    ok")
	t.reporter.Report("  '- Success!")
	return types.Succeeded(pkg.Slug, types.StrategyDownload)
}

func (t *Transaction) placeFailed(pkg *types.Package, strategy types.Strategy, verb string, err error) types.InstallOutcome {
	t.logger.Error().Err(err).Str("package", pkg.Slug).Msg("Placement failed")
	t.reporter.Report(fmt.Sprintf("  |- %s package...    error", verb))
	t.reporter.Report("  |  '- " + errors.Message(err))
	t.reporter.Report(failedLine)
	return types.Failed(pkg.Slug, strategy, errors.Message(err))
}

// checkDestination applies the overwrite policy for dest. A symlinked
// destination is only reachable here for downloads.
func (t *Transaction) checkDestination(pkg *types.Package, dest string, skipPrompt bool) destDecision {
	skip := skipPrompt || t.assumeYes

	switch destination.Check(t.fs, dest) {
	case types.DestOccupied:
		t.reporter.Report("  |- Checking destination...  exists")
		if skip {
			return destDecision{proceed: true}
		}
		ok, err := t.confirmer.Confirm("  |  '- The package is already installed, do you want to overwrite it?")
		if err != nil || !ok {
			t.reporter.Report("  |     '- You decided to not overwrite the already installed package.")
			return destDecision{outcome: types.Skipped(pkg.Slug, types.OutcomeSkippedByUser, ReasonNotOverwritten)}
		}
		return destDecision{proceed: true}

	case types.DestSymlinked:
		t.reporter.Report("  |- Checking destination...  symbolic link")
		if skip {
			t.reporter.Report("  |     '- Skipped automatically.")
			return destDecision{outcome: types.Skipped(pkg.Slug, types.OutcomeSkippedAlreadyInstalled, ReasonSymlinkPresent)}
		}
		ok, err := t.confirmer.Confirm("  |  '- Destination has been detected as symlink, delete symbolic link first?")
		if err != nil || !ok {
			t.reporter.Report("  |     '- You decided to not delete the symlink automatically.")
			return destDecision{outcome: types.Skipped(pkg.Slug, types.OutcomeSkippedByUser, ReasonSymlinkNotDelete)}
		}
		return destDecision{proceed: true, deleteLink: true}
	}

	t.reporter.Report("  |- Checking destination...  ok")
	return destDecision{proceed: true}
}
