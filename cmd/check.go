package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arealint.dev/pkg/arealint/internal/domain"
	m "arealint.dev/pkg/arealint/internal/model"
)

// errViolationsFound makes `check` exit non-zero without printing a second
// error line below the already rendered violations table.
var errViolationsFound = errors.New("boundary violations found")

var checkParallelFlag int
var checkIgnoreCallersFlag []string
var checkIgnoreDepsFlag []string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check architectural boundary violations",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := workflow.Check(context.Background(), domain.CheckArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(parallelConfigKey),
				Options: domain.CheckOptions{
					IgnoreCallers: viper.GetStringSlice(ignoreCallersKey),
					IgnoreDeps:    viper.GetStringSlice(ignoreDepsKey),
				},
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
			if err != nil {
				return err
			}

			if count > 0 {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true

				return errViolationsFound
			}

			return nil
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers for source extraction")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().StringArrayVar(&checkIgnoreCallersFlag, ignoreCallersFlag, viper.GetStringSlice(ignoreCallersKey), "caller modules matching pattern are exempt from all checks (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(ignoreCallersFlag), ignoreCallersKey)

	cmd.Flags().StringArrayVar(&checkIgnoreDepsFlag, ignoreDepsFlagName, viper.GetStringSlice(ignoreDepsKey), "dependency targets matching pattern are never flagged (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(ignoreDepsFlagName), ignoreDepsKey)
}
