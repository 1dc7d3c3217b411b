package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/gpm/pkg/config"
	"github.com/arthur-debert/gpm/pkg/demo"
	"github.com/arthur-debert/gpm/pkg/dependencies"
	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/filesystem"
	"github.com/arthur-debert/gpm/pkg/install"
	"github.com/arthur-debert/gpm/pkg/linksource"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/arthur-debert/gpm/pkg/ui/confirmations"
)

// SymlinkQuestion is asked once when development roots are configured and
// the symlink preference is left to the user
const SymlinkQuestion = "Should gpm use the symlinks if available?"

// SiteInstaller is the installer plus the site-level checks the driver needs
type SiteInstaller interface {
	types.Installer
	IsPlatformInstance(root string) bool
	DetectPlatformVersion(root string) string
}

// Collaborators are the external capabilities a run uses
type Collaborators struct {
	Catalog   types.Catalog
	Installer SiteInstaller
	Transfer  types.Transfer
	Confirmer types.Confirmer
	Reporter  types.Reporter

	// FS defaults to the OS filesystem
	FS types.FS
	// NewToken names temporary download dirs; defaults to a UUID
	NewToken func() string
	// Now stamps demo backups; defaults to time.Now
	Now func() time.Time
}

// InstallAll installs names into cfg.Destination
func InstallAll(ctx context.Context, names []string, cfg config.Config, c Collaborators) (types.RunResult, error) {
	logger := logging.GetLogger("core.install")
	done := logging.LogOperationStart(logger, "install")
	defer done()

	var result types.RunResult
	fsys := c.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	confirmer := c.Confirmer
	if cfg.AssumeYes {
		confirmer = confirmations.AssumeYes{}
	}
	root := cfg.Destination

	abort := func(err error) (types.RunResult, error) {
		result.Aborted = true
		logger.Error().Err(err).Msg("Run aborted")
		return result, err
	}

	// Preflight
	if err := preflight(root, c.Installer); err != nil {
		c.Reporter.Report("ERROR: " + errors.Message(err))
		return abort(err)
	}

	// Lookup
	found := c.Catalog.FindPackages(names)
	for _, n := range found.NotFound {
		result.Record(types.Failed(n, types.StrategyDownload, install.ReasonPackageNotFound))
	}
	if len(found.Found) == 0 {
		c.Reporter.Report("Nothing to install.")
		c.Reporter.Report("")
		return result, nil
	}
	if len(found.NotFound) > 0 {
		c.Reporter.Report("These packages were not found: " + strings.Join(found.NotFound, ", "))
	}

	// Symlink preference
	useSymlinks, err := symlinkPreference(cfg, confirmer)
	if err != nil {
		return abort(err)
	}
	c.Reporter.Report("")

	// Resolution
	slugs := make([]string, 0, len(found.Found))
	for _, p := range found.Found {
		slugs = append(slugs, p.Slug)
	}
	res, err := c.Catalog.GetDependencies(slugs)
	if err != nil {
		c.Reporter.Report(errors.Message(err))
		return abort(err)
	}

	// Wiring
	locator := linksource.NewLocator(fsys, cfg.DevRoots)
	tx := install.NewTransaction(install.Options{
		Root:      root,
		CacheDir:  cfg.CacheDir,
		AssumeYes: cfg.AssumeYes,
		FS:        fsys,
		Installer: c.Installer,
		Transfer:  c.Transfer,
		Confirmer: confirmer,
		Reporter:  c.Reporter,
		Locator:   locator,
		NewToken:  c.NewToken,
	})
	provisioner := demo.New(demo.Options{
		Root:      root,
		FS:        fsys,
		Confirmer: confirmer,
		Reporter:  c.Reporter,
		Now:       c.Now,
	})
	processor := install.NewProcessor(tx, useSymlinks, func(p *types.Package) {
		provisioner.Queue(p)
	})
	sequencer := dependencies.NewSequencer(c.Catalog, processor, confirmer, c.Reporter)

	// Dependencies
	platformVersion := cfg.Platform.Version
	if platformVersion == "" {
		platformVersion = c.Installer.DetectPlatformVersion(root)
	}
	depOutcomes, err := sequencer.Run(ctx, res, platformVersion)
	for _, o := range depOutcomes {
		result.Record(o)
	}
	if err != nil {
		return abort(err)
	}

	// Requested packages
	for _, pkg := range found.Found {
		if err := ctx.Err(); err != nil {
			return abort(errors.Wrap(err, errors.ErrInternal, "install cancelled"))
		}
		if res.Dependencies.Has(pkg.Slug) {
			c.Reporter.Report(fmt.Sprintf("Package %s already installed as dependency", pkg.Slug))
			result.Record(types.Skipped(pkg.Slug, types.OutcomeSkippedAlreadyInstalled, "installed as dependency"))
			continue
		}
		result.Record(processor.Process(ctx, pkg, false))
	}

	// Demo content
	for _, r := range provisioner.Drain() {
		if r.Err != nil {
			logger.Warn().Err(r.Err).Str("package", r.Package).Msg("Demo content not installed")
		}
	}

	if len(result.Installed) > 0 {
		if err := ClearCache(fsys, root); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear site cache")
			c.Reporter.Report("Clearing cache...    failed")
		} else {
			c.Reporter.Report("Clearing cache...    ok")
		}
	}

	logger.Info().
		Strs("installed", result.Installed).
		Strs("skipped", result.Skipped).
		Strs("failed", result.Failed).
		Msg("Run complete")
	return result, nil
}

func preflight(root string, inst SiteInstaller) error {
	if !inst.IsPlatformInstance(root) {
		return errors.Newf(errors.ErrInvalidDestination, "%s does not look like a site root (no %s directory)", root, paths.UserDir).
			WithDetail("path", root)
	}
	return inst.ValidateDestination(root, types.DestOccupied, types.DestSymlinked)
}

func symlinkPreference(cfg config.Config, confirmer types.Confirmer) (bool, error) {
	switch cfg.Symlinks {
	case config.SymlinksAlways:
		return true, nil
	case config.SymlinksNever:
		return false, nil
	}
	// -y never opts into symlinks on its own
	if len(cfg.DevRoots) == 0 || cfg.AssumeYes {
		return false, nil
	}
	return confirmer.Confirm(SymlinkQuestion)
}

// ClearCache empties the site cache directory, keeping .gitkeep
func ClearCache(fsys types.FS, root string) error {
	dir := paths.SiteCachePath(root)
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}

	for _, e := range entries {
		if e.Name() == ".gitkeep" {
			continue
		}
		target := filepath.Join(dir, e.Name())
		if err := fsys.RemoveAll(target); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", target)
		}
	}
	return nil
}
