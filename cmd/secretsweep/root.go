package secretsweep

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/secretsweep/secretsweep/internal/report"
)

var (
	flagJSON      bool
	flagSARIF     bool
	flagThreads   int
	flagFailOn    string
	flagNoColor   bool
	flagLogLevel  string
	flagLogFormat string

	version = "0.1.0"
)

// exitFindings is returned through os.Exit when findings trip --fail-on.
const exitFindings = 1

// rootCmd is the base Cobra command for the secretsweep CLI.
var rootCmd = &cobra.Command{
	Use:           "secretsweep",
	Short:         "Find leaked credentials in a file tree",
	Long:          "secretsweep walks a directory and flags lines naming credential keywords and tokens with high Shannon entropy. It runs offline and is meant for pre-commit hooks and CI.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		report.ToolVersion = version
		return setupLogging(flagLogLevel, flagLogFormat)
	},
}

// Execute runs the secretsweep CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

// underscoreToDash lets every flag be spelled with '_' or '-'.
func underscoreToDash(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(underscoreToDash)
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", report.FailOnAny, "exit 1 when findings match: any|keyword|entropy|never")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format: text|json")
	_ = rootCmd.RegisterFlagCompletionFunc("fail-on", cobra.FixedCompletions(
		[]string{report.FailOnAny, report.FailOnKeyword, report.FailOnEntropy, report.FailOnNever}, cobra.ShellCompDirectiveNoFileComp))
}
