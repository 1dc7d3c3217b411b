package gpm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/gpm/pkg/config"
	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/spf13/cobra"
)

func newGenConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfig()
			if err != nil {
				return err
			}
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			target := paths.New().ConfigFile()
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf(MsgErrConfigExists, target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
