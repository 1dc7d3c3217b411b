package install

import (
	"context"

	"github.com/arthur-debert/gpm/pkg/types"
)

// ReasonPackageNotFound is reported for names the catalog does not know
const ReasonPackageNotFound = "package not found"

// Processor chooses a strategy and runs the transaction for each package
type Processor struct {
	tx          *Transaction
	reporter    types.Reporter
	useSymlinks bool
	locator     SourceLocator
	onPlaced    func(*types.Package)
}

// NewProcessor creates a processor. onPlaced, when set, is called for
// every package whose transaction placed new content.
func NewProcessor(tx *Transaction, useSymlinks bool, onPlaced func(*types.Package)) *Processor {
	return &Processor{
		tx:          tx,
		reporter:    tx.reporter,
		useSymlinks: useSymlinks,
		locator:     tx.locator,
		onPlaced:    onPlaced,
	}
}

// Process installs pkg. A nil package is reported and fails.
func (p *Processor) Process(ctx context.Context, pkg *types.Package, skipPrompt bool) types.InstallOutcome {
	if pkg == nil {
		p.reporter.Report("Package not found")
		return types.Failed("", types.StrategyDownload, ReasonPackageNotFound)
	}

	strategy := ChooseStrategy(pkg, p.useSymlinks, p.locator)
	outcome := p.tx.Run(ctx, pkg, strategy, skipPrompt)
	p.reporter.Report("")

	if outcome.Placed() && p.onPlaced != nil {
		p.onPlaced(pkg)
	}
	return outcome
}
