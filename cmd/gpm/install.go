package gpm

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/gpm/internal/version"
	"github.com/arthur-debert/gpm/pkg/catalog"
	"github.com/arthur-debert/gpm/pkg/config"
	"github.com/arthur-debert/gpm/pkg/core"
	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/installer"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/transfer"
	"github.com/arthur-debert/gpm/pkg/ui/confirmations"
	"github.com/arthur-debert/gpm/pkg/ui/output"
	"github.com/spf13/cobra"
)

type installFlags struct {
	allYes      bool
	force       bool
	destination string
	symlinks    bool
	noSymlinks  bool
	index       string
}

// overrides turns the flags the user actually set into config overrides
func (f *installFlags) overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("all-yes") {
		o.AssumeYes = &f.allYes
	}
	if flags.Changed("force") {
		o.ForceRefresh = &f.force
	}
	if flags.Changed("destination") {
		o.Destination = &f.destination
	}
	if flags.Changed("index") {
		o.Index = &f.index
	}
	switch {
	case flags.Changed("symlinks") && f.symlinks:
		mode := config.SymlinksAlways
		o.Symlinks = &mode
	case flags.Changed("no-symlinks") && f.noSymlinks:
		mode := config.SymlinksNever
		o.Symlinks = &mode
	}
	return o
}

func newInstallCmd(global *globalOptions) *cobra.Command {
	flags := &installFlags{}

	cmd := &cobra.Command{
		Use:     "install <package>...",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, global, flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.allYes, "all-yes", "y", false, MsgFlagAllYes)
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, MsgFlagForce)
	cmd.Flags().StringVarP(&flags.destination, "destination", "d", "", MsgFlagDestination)
	cmd.Flags().BoolVar(&flags.symlinks, "symlinks", false, MsgFlagSymlinks)
	cmd.Flags().BoolVar(&flags.noSymlinks, "no-symlinks", false, MsgFlagNoSymlinks)
	cmd.Flags().StringVar(&flags.index, "index", "", MsgFlagIndex)
	cmd.MarkFlagsMutuallyExclusive("symlinks", "no-symlinks")

	return cmd
}

func runInstall(cmd *cobra.Command, global *globalOptions, flags *installFlags, names []string) error {
	logger := logging.GetLogger("cmd.install")

	loaded, err := config.Load(config.LoadOptions{ConfigFile: global.configFile})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	cfg := loaded.WithOverrides(flags.overrides(cmd))
	if cfg.Destination, err = filepath.Abs(cfg.Destination); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid destination %s", cfg.Destination)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info().
		Strs("packages", names).
		Str("destination", cfg.Destination).
		Bool("assumeYes", cfg.AssumeYes).
		Str("symlinks", string(cfg.Symlinks)).
		Msg("Starting install")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := transfer.New(transfer.WithUserAgent("gpm/" + version.Version))
	cat, err := catalog.Load(ctx, catalog.LoadOptions{
		Source:       cfg.Index,
		Destination:  cfg.Destination,
		PlatformName: cfg.Platform.Name,
		CacheDir:     cfg.CacheDir,
		ForceRefresh: cfg.ForceRefresh,
		Transfer:     client,
	})
	if err != nil {
		return fmt.Errorf(MsgErrLoadIndex, err)
	}

	out := cmd.OutOrStdout()
	result, err := core.InstallAll(ctx, names, cfg, core.Collaborators{
		Catalog:   cat,
		Installer: installer.New(),
		Transfer:  client,
		Confirmer: confirmations.NewConsole(cmd.InOrStdin(), out),
		Reporter:  output.NewTerminal(out),
	})
	if renderErr := output.RenderSummary(out, result); renderErr != nil {
		logger.Warn().Err(renderErr).Msg("Failed to render summary")
	}
	return err
}
