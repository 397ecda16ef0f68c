package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/logging"
	"github.com/mj1618/bridgectl/internal/output"
	"github.com/mj1618/bridgectl/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bridgectl",
	Short: "Drive a device automation bridge from a UI inspector page",
	Long: `A CLI that attaches to a UI inspector page, overlays an action control
panel, and forwards tap/swipe/input actions for selected elements to the
capture bridge service.`,
}

// logger is the process logger, built by the root PersistentPreRunE.
var logger *zap.Logger

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Mirror logs to a rotating JSON file")
	rootCmd.PersistentFlags().String("bridge-url", bridge.DefaultBaseURL, "Automation bridge base URL")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		logFile, _ := rootCmd.PersistentFlags().GetString("log-file")
		logger = logging.New(logging.Options{Verbose: verbose, LogFile: logFile})

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")

		// Smart default: piped output (agent context) gets JSON, a
		// terminal gets YAML.
		if format == "" {
			if output.IsOutputPiped() {
				format = "json"
			} else {
				format = "yaml"
			}
		}

		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := rootCmd.PersistentFlags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}

func bridgeURL() string {
	url, _ := rootCmd.PersistentFlags().GetString("bridge-url")
	return url
}
