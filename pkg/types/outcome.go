package types

// OutcomeStatus is the per-package result of an install transaction
type OutcomeStatus string

const (
	OutcomeSucceeded               OutcomeStatus = "succeeded"
	OutcomeSkippedByUser           OutcomeStatus = "skipped_by_user"
	OutcomeSkippedAlreadyInstalled OutcomeStatus = "skipped_already_installed"
	OutcomeFailed                  OutcomeStatus = "failed"
)

// Strategy is how a package is acquired
type Strategy string

const (
	StrategyDownload Strategy = "download"
	StrategySymlink  Strategy = "symlink"
)

// InstallOutcome is used for reporting only and never feeds back into
// sequencing of other packages.
type InstallOutcome struct {
	Package  string
	Status   OutcomeStatus
	Strategy Strategy
	Reason   string
}

// Succeeded returns an outcome for a placed package
func Succeeded(pkg string, strategy Strategy) InstallOutcome {
	return InstallOutcome{Package: pkg, Status: OutcomeSucceeded, Strategy: strategy}
}

// Failed returns a failed outcome carrying reason
func Failed(pkg string, strategy Strategy, reason string) InstallOutcome {
	return InstallOutcome{Package: pkg, Status: OutcomeFailed, Strategy: strategy, Reason: reason}
}

// Skipped returns a skipped outcome of the given status
func Skipped(pkg string, status OutcomeStatus, reason string) InstallOutcome {
	return InstallOutcome{Package: pkg, Status: status, Reason: reason}
}

// Placed reports whether new content ended up at the destination
func (o InstallOutcome) Placed() bool {
	return o.Status == OutcomeSucceeded
}

// RunResult summarizes a full orchestrator run
type RunResult struct {
	Installed []string
	Skipped   []string
	Failed    []string
	// Aborted is set when a fatal error stopped the run
	Aborted bool
	// Outcomes holds every per-package outcome in processing order,
	// dependencies included
	Outcomes []InstallOutcome
}

// Record files an outcome under the matching summary list
func (r *RunResult) Record(o InstallOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case OutcomeSucceeded:
		r.Installed = append(r.Installed, o.Package)
	case OutcomeFailed:
		r.Failed = append(r.Failed, o.Package)
	default:
		r.Skipped = append(r.Skipped, o.Package)
	}
}
