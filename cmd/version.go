package cmd

import (
	"github.com/mj1618/bridgectl/internal/output"
	"github.com/mj1618/bridgectl/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(struct {
			Version   string `yaml:"version"    json:"version"`
			Commit    string `yaml:"commit"     json:"commit"`
			BuildDate string `yaml:"build_date" json:"build_date"`
		}{version.Version, version.Commit, version.BuildDate})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
