package cmd

import (
	"fmt"

	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/output"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Finish the capture session",
	Long: `Ask the bridge to take its final screenshot and close out the current
capture session.`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	client := bridge.NewClient(bridgeURL())
	outcome := client.Stop(cmd.Context())

	result := output.StopResult{
		OK:     outcome.Kind == bridge.KindSuccess,
		ElemID: outcome.ElemID,
		File:   outcome.File,
	}
	if outcome.Kind != bridge.KindSuccess {
		result.Error = outcome.Reason
	}
	if err := output.Print(result); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("stop failed: %s", outcome.Reason)
	}
	return nil
}
