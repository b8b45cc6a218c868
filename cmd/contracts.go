package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arealint.dev/pkg/arealint/internal/domain"
)

var errContractsMissing = errors.New("missing test modules found")

// contractsCmd represents the contracts command.
var contractsCmd = newContractsCmd()

func newContractsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contracts [paths...]",
		Short: "Check that public modules have matching test modules",
		Long:  contractsLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := workflow.Contracts(context.Background(), domain.ListArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(parallelConfigKey),
			})
			if err != nil {
				return err
			}

			if count > 0 {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true

				return errContractsMissing
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(contractsCmd)
}
