// Package dependencies sequences resolved dependencies ahead of the
// requested packages.
//
// Dependencies are processed in three buckets, strictly in this order:
// mandatory installs, mandatory updates, optional updates. Each non-empty
// bucket is listed and confirmed once; declining a mandatory bucket ends the
// run with ErrRequiredDependencyDeclined, declining the optional bucket only
// skips it. Members of an accepted bucket are installed without per-item
// prompts.
package dependencies

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/rs/zerolog"
)

// ErrRequiredDependencyDeclined is returned when the user declines a
// mandatory bucket. Match it with errors.Is.
var ErrRequiredDependencyDeclined = errors.New(errors.ErrDependencyDeclined, "required dependency declined")

// Bucket messages, listed before the members of each bucket
const (
	MessageInstall = "The following dependencies need to be installed..."
	MessageUpdate  = "The following dependencies need to be updated..."
	MessageIgnore  = "The following dependencies can be updated as there is a newer version, but it's not mandatory..."
)

// PackageProcessor installs one package
type PackageProcessor interface {
	Process(ctx context.Context, pkg *types.Package, skipPrompt bool) types.InstallOutcome
}

// Sequencer drives dependency buckets
type Sequencer struct {
	catalog   types.Catalog
	processor PackageProcessor
	confirmer types.Confirmer
	reporter  types.Reporter
	logger    zerolog.Logger
}

// NewSequencer creates a sequencer
func NewSequencer(catalog types.Catalog, processor PackageProcessor, confirmer types.Confirmer, reporter types.Reporter) *Sequencer {
	return &Sequencer{
		catalog:   catalog,
		processor: processor,
		confirmer: confirmer,
		reporter:  reporter,
		logger:    logging.GetLogger("dependencies.sequencer"),
	}
}

// bucket pairs an action with how it is presented
type bucket struct {
	action   types.DependencyAction
	message  string
	required bool
}

var buckets = []bucket{
	{types.ActionInstall, MessageInstall, true},
	{types.ActionUpdate, MessageUpdate, true},
	{types.ActionIgnore, MessageIgnore, false},
}

// Run checks the platform requirement and then processes every bucket in
// order. Outcomes of the dependency installs are returned even when a later
// bucket aborts the run.
func (s *Sequencer) Run(ctx context.Context, res types.Resolution, platformVersion string) ([]types.InstallOutcome, error) {
	if err := s.CheckPlatform(res.Platform, platformVersion); err != nil {
		return nil, err
	}
	if len(res.Dependencies) == 0 {
		return nil, nil
	}

	var outcomes []types.InstallOutcome
	for _, b := range buckets {
		got, err := s.InstallDependencies(ctx, res.Dependencies, b.action, b.message, b.required)
		outcomes = append(outcomes, got...)
		if err != nil {
			if stderrors.Is(err, ErrRequiredDependencyDeclined) {
				s.reporter.Report("Installation aborted")
			}
			return outcomes, err
		}
	}

	s.reporter.Report("Dependencies are OK")
	s.reporter.Report("")
	return outcomes, nil
}

// CheckPlatform fails when the highest minimum version required of the
// platform is above the running version. An unknown running version skips
// the check.
func (s *Sequencer) CheckPlatform(req *types.PlatformRequirement, running string) error {
	if req == nil || req.MinVersion == "" {
		return nil
	}
	if running == "" {
		s.logger.Warn().Str("platform", req.Name).Msg("Running platform version unknown, skipping platform check")
		return nil
	}

	min, err := semver.NewVersion(req.MinVersion)
	if err != nil {
		return errors.Wrapf(err, errors.ErrResolution, "invalid %s requirement %s", req.Name, req.MinVersion)
	}
	current, err := semver.NewVersion(running)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPlatformVersion, "cannot parse running %s version %q", req.Name, running)
	}

	if min.GreaterThan(current) {
		requirement := strings.Join(req.Constraints, ", ")
		msg := fmt.Sprintf("One of the package dependencies requires %s %s. Please update %s first", req.Name, requirement, req.Name)
		s.reporter.Report(msg)
		return errors.New(errors.ErrPlatformVersion, msg).
			WithDetail("required", req.MinVersion).
			WithDetail("running", running)
	}
	return nil
}

// Question returns the confirmation asked for a bucket of n packages
func Question(action types.DependencyAction, n int) string {
	verb := "Update"
	if action == types.ActionInstall {
		verb = "Install"
	}
	if n == 1 {
		return verb + " this package?"
	}
	return verb + " these packages?"
}

// InstallDependencies lists the members of deps with the given action,
// asks once, and installs each member with prompts pre-skipped. Declining a
// required bucket returns ErrRequiredDependencyDeclined.
func (s *Sequencer) InstallDependencies(ctx context.Context, deps types.DependencyList, action types.DependencyAction, message string, required bool) ([]types.InstallOutcome, error) {
	members := deps.Filter(action)
	if len(members) == 0 {
		return nil, nil
	}

	s.reporter.Report(message)
	for _, d := range members {
		s.reporter.Report("  |- Package " + d.Name)
	}
	s.reporter.Report("")

	ok, err := s.confirmer.Confirm(Question(action, len(members)))
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info().Str("bucket", string(action)).Bool("required", required).Msg("Bucket declined")
		if required {
			return nil, ErrRequiredDependencyDeclined
		}
		return nil, nil
	}

	outcomes := make([]types.InstallOutcome, 0, len(members))
	for _, d := range members {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		pkg, _ := s.catalog.FindPackage(d.Name)
		out := s.processor.Process(ctx, pkg, true)
		if out.Package == "" {
			out.Package = d.Name
		}
		outcomes = append(outcomes, out)
	}
	s.reporter.Report("")
	return outcomes, nil
}
