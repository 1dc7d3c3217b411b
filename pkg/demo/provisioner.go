// Package demo installs the sample content some packages bundle.
//
// Packages are queued as they are placed and the queue is drained once
// every install of the run has finished, so demo copies never interleave
// with package placement.
package demo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/gpm/pkg/filesystem"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/rs/zerolog"
)

// BackupTimeLayout is month-day-year-hour-minute-second
const BackupTimeLayout = "01-02-2006-15-04-05"

// Status is the result of one drained entry
type Status string

const (
	StatusInstalled      Status = "installed"
	StatusDeclined       Status = "declined"
	StatusBackupDeclined Status = "backup_declined"
	StatusBackupFailed   Status = "backup_failed"
	StatusCopyFailed     Status = "copy_failed"
)

// Result describes what happened to one queued package
type Result struct {
	Package string
	Status  Status
	// Backup is the pages backup directory name, if one was made
	Backup string
	Err    error
}

// Options configures a Provisioner
type Options struct {
	Root      string
	FS        types.FS
	Ops       *filesystem.FileOps
	Confirmer types.Confirmer
	Reporter  types.Reporter
	// Now defaults to time.Now
	Now func() time.Time
}

// Provisioner queues and installs demo content
type Provisioner struct {
	root      string
	fs        types.FS
	ops       *filesystem.FileOps
	confirmer types.Confirmer
	reporter  types.Reporter
	now       func() time.Time
	queue     []*types.Package
	logger    zerolog.Logger
}

// New creates a provisioner for the destination root
func New(opts Options) *Provisioner {
	p := &Provisioner{
		root:      opts.Root,
		fs:        opts.FS,
		ops:       opts.Ops,
		confirmer: opts.Confirmer,
		reporter:  opts.Reporter,
		now:       opts.Now,
		logger:    logging.GetLogger("demo.provisioner"),
	}
	if p.fs == nil {
		p.fs = filesystem.NewOS()
	}
	if p.ops == nil {
		p.ops = filesystem.NewFileOps()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Queue adds pkg if its installed copy carries demo content. It reports
// whether the package was queued.
func (p *Provisioner) Queue(pkg *types.Package) bool {
	for _, q := range p.queue {
		if q.Slug == pkg.Slug {
			return false
		}
	}
	info, err := p.fs.Stat(pkg.DemoDir(p.root))
	if err != nil || !info.IsDir() {
		return false
	}
	p.queue = append(p.queue, pkg)
	p.logger.Debug().Str("package", pkg.Slug).Msg("Queued demo content")
	return true
}

// Pending returns the queued packages in queue order
func (p *Provisioner) Pending() []*types.Package {
	return append([]*types.Package(nil), p.queue...)
}

// Drain processes and empties the queue
func (p *Provisioner) Drain() []Result {
	queue := p.queue
	p.queue = nil

	results := make([]Result, 0, len(queue))
	for _, pkg := range queue {
		r := p.provision(pkg)
		p.logger.Info().Str("package", pkg.Slug).Str("status", string(r.Status)).Msg("Demo content processed")
		results = append(results, r)
	}
	return results
}

func (p *Provisioner) provision(pkg *types.Package) Result {
	res := Result{Package: pkg.Slug}
	demoDir := pkg.DemoDir(p.root)
	userDir := paths.UserPath(p.root)
	pagesDir := paths.PagesPath(p.root)

	p.reporter.Report(fmt.Sprintf("Attention: %s contains demo content", pkg.DisplayName()))
	if !p.ask("Do you wish to install this demo content?") {
		p.skipped()
		res.Status = StatusDeclined
		return res
	}

	if p.exists(filepath.Join(demoDir, paths.PagesDir)) {
		backup := p.backupName()
		question := fmt.Sprintf("This will backup your current `user/%s` folder to `user/%s`, continue?", paths.PagesDir, backup)
		if !p.ask(question) {
			p.skipped()
			res.Status = StatusBackupDeclined
			return res
		}

		if p.exists(pagesDir) {
			if err := p.fs.Rename(pagesDir, filepath.Join(userDir, backup)); err != nil {
				p.reporter.Report("  |- Backing up pages...    failed")
				p.reporter.Report("  '- Skipped!")
				p.reporter.Report("")
				res.Status = StatusBackupFailed
				res.Err = err
				return res
			}
			p.reporter.Report("  |- Backing up pages...    ok")
			res.Backup = backup
		}
	}

	if err := p.ops.RecursiveCopy(demoDir, userDir); err != nil {
		p.reporter.Report("  |- Installing demo content...    failed")
		p.reporter.Report("")
		res.Status = StatusCopyFailed
		res.Err = err
		return res
	}

	p.reporter.Report("  |- Installing demo content...    ok")
	p.reporter.Report("  '- Success!")
	p.reporter.Report("")
	res.Status = StatusInstalled
	return res
}

// backupName returns pages.<timestamp>, suffixed when that name is taken
func (p *Provisioner) backupName() string {
	base := paths.PagesDir + "." + p.now().Format(BackupTimeLayout)
	name := base
	for i := 1; p.exists(filepath.Join(paths.UserPath(p.root), name)); i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	return name
}

func (p *Provisioner) ask(question string) bool {
	ok, err := p.confirmer.Confirm(question)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Prompt failed, treating as no")
		return false
	}
	return ok
}

func (p *Provisioner) skipped() {
	p.reporter.Report("  '- Skipped!")
	p.reporter.Report("")
}

func (p *Provisioner) exists(path string) bool {
	_, err := p.fs.Lstat(path)
	return err == nil || !os.IsNotExist(err)
}
