package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/copybench/copybench/internal/config"
	"github.com/copybench/copybench/internal/harness"
	"github.com/copybench/copybench/internal/report"
	"github.com/copybench/copybench/internal/utils"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "copybench",
		Short: "Compare file copy strategies",
		Long: `copybench copies one input file with several strategies (byte-by-byte,
fixed size blocks and line-by-line) and prints how long each one took.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBenchmark,
	}

	c.Flags().StringP("input", "i", "", "Input file (default "+config.DefaultInput+")")
	c.Flags().StringP("output-dir", "o", "", "Directory receiving the copies (default /tmp)")
	c.Flags().StringSliceP("block-sizes", "b", nil, "Block sizes to benchmark, e.g. 1KB,4KB,64KB")
	c.PersistentFlags().String("config", "", "Settings file (default "+config.GetSettingsPath()+")")
	c.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error or off")
	c.SetVersionTemplate("copybench version {{.Version}}\n")

	c.AddCommand(newGenCmd())
	return c
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(configPath, cmd.Flags())
	if err != nil {
		return err
	}

	if err := initLogging(cmd, settings.LogLevel); err != nil {
		return err
	}
	defer utils.CloseLogger()

	plan, err := harness.Plan(settings)
	if err != nil {
		return err
	}

	locks, err := harness.LockOutputs(plan)
	if err != nil {
		return err
	}
	defer func() {
		if err := harness.Unlock(locks); err != nil {
			utils.Debug("Error releasing lock: %v", err)
		}
	}()

	printer := report.New(cmd.OutOrStdout())
	runner := harness.NewRunner(printer)

	var size int64
	if info, err := os.Stat(plan[0].Input); err == nil {
		size = info.Size()
	}
	printer.Header(runner.RunID[:8], plan[0].Input, size)

	results, err := runner.RunPlan(plan)
	printer.Summary(results)
	return err
}

// initLogging sends logs to stderr. At debug level and below a copy also
// goes to a file in the logs dir.
func initLogging(cmd *cobra.Command, levelName string) error {
	level, err := utils.ParseLogLevel(levelName)
	if err != nil {
		return err
	}

	logsDir := ""
	if level <= zerolog.DebugLevel {
		if err := config.EnsureDirs(); err != nil {
			return err
		}
		logsDir = config.GetLogsDir()
	}
	return utils.ConfigureLogger(cmd.ErrOrStderr(), level, logsDir)
}
