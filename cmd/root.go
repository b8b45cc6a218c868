// Package cmd provides the root command and CLI setup for arealint.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"arealint.dev/pkg/arealint/internal/adapter"
	"arealint.dev/pkg/arealint/internal/controller"
	"arealint.dev/pkg/arealint/internal/domain"
	m "arealint.dev/pkg/arealint/internal/model"
)

var fileAdapter adapter.SourceFileAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var analyzer domain.Analyzer
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// verboseFlag switches the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fileAdapter = adapter.NewLocalSourceFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter(fileAdapter)
	reportStore = adapter.NewLocalReportStore()
	analyzer = domain.NewAnalyzer()
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui, analyzer)
}

const pathPatternsHelp = `Supports path patterns:
  - ./...          recursively scan current directory
  - lib/...        recursively scan lib directory
  - lib apps       scan multiple directories (non-recursive)`

const rootLongDescription = `Arealint enforces architectural boundaries in hierarchically-namespaced
codebases. Modules declare whether they are a public interface or a private
implementation detail, and arealint flags every reference that reaches into
the private internals of an area it does not belong to.

` + pathPatternsHelp

const checkLongDescription = `Check boundary violations for the given paths (default: current directory).

` + pathPatternsHelp

const listLongDescription = `List modules with their visibility and governing area.

` + pathPatternsHelp

const contractsLongDescription = `List public modules that have no matching test module (<Module>Test).

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arealint",
		Short: "Architectural boundary linter",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for check reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching pattern (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
