package cmd

import (
	"fmt"

	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/config"
	"github.com/mj1618/bridgectl/internal/model"
	"github.com/mj1618/bridgectl/internal/output"
	"github.com/mj1618/bridgectl/internal/panel"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Post a single action request to the bridge",
	Long: `Build one action request from flags and post it to the bridge, without
attaching to an inspector page.

Examples:
  bridgectl send --action tap --bounds "[10,20][110,70]"
  bridgectl send --action swipe --bounds "[10,20][110,70]" --direction up --distance 300
  bridgectl send --action input --bounds "[10,20][110,70]" --text "hello"
  bridgectl send --action back`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().String("action", bridge.ActionTap, "Action: tap, long_press, input, swipe, back")
	sendCmd.Flags().String("bounds", "", "Element rectangle, e.g. [10,20][110,70]")
	sendCmd.Flags().String("xpath", "", "Element path hint")
	sendCmd.Flags().String("text", "", "Text to type (input)")
	sendCmd.Flags().Int("duration-ms", panel.DefaultDurationMs, "Press or swipe duration (long_press, swipe)")
	sendCmd.Flags().Int("dx", 0, "Swipe delta X (custom direction)")
	sendCmd.Flags().Int("dy", 0, "Swipe delta Y (custom direction)")
	sendCmd.Flags().String("direction", bridge.DirectionCustom, "Swipe direction: custom, up, down, left, right")
	sendCmd.Flags().Int("distance", 0, "Swipe distance in pixels (named directions)")
	sendCmd.Flags().String("capture-mode", "", "Capture timing: post, mid (default: config)")
	sendCmd.Flags().Int("mid-delay-ms", -1, "Mid-capture delay (default: config)")
	sendCmd.Flags().Int("wait-after-ms", -1, "Post-capture settle wait (default: config)")
	sendCmd.Flags().String("config", "", "Panel config file (default: user config dir)")
}

func runSend(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	store, err := config.NewStore(configPath)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st := panel.NewState(cfg)
	st.Action, _ = cmd.Flags().GetString("action")
	st.Text, _ = cmd.Flags().GetString("text")
	st.DurationMs, _ = cmd.Flags().GetInt("duration-ms")
	st.DX, _ = cmd.Flags().GetInt("dx")
	st.DY, _ = cmd.Flags().GetInt("dy")
	st.Direction, _ = cmd.Flags().GetString("direction")
	st.Distance, _ = cmd.Flags().GetInt("distance")
	if mode, _ := cmd.Flags().GetString("capture-mode"); mode != "" {
		st.CaptureMode = mode
	}
	if v, _ := cmd.Flags().GetInt("mid-delay-ms"); v >= 0 {
		st.MidDelayMs = v
	}
	if v, _ := cmd.Flags().GetInt("wait-after-ms"); v >= 0 {
		st.WaitAfterMs = v
	}

	bounds, _ := cmd.Flags().GetString("bounds")
	xpath, _ := cmd.Flags().GetString("xpath")
	sel := model.Selection{Rectangle: bounds, ElementPath: xpath}

	req, err := panel.BuildRequest(st, sel)
	if err != nil {
		return err
	}

	client := bridge.NewClient(bridgeURL())
	outcome := client.Send(cmd.Context(), req)

	result := output.SendResult{
		OK:            outcome.Kind == bridge.KindSuccess,
		Action:        st.Action,
		ElemID:        outcome.ElemID,
		CaptureTiming: outcome.CaptureTiming,
		Status:        outcome.StatusLine(),
	}
	if outcome.Center != nil {
		result.Center = fmt.Sprintf("(%d,%d)", outcome.Center.X, outcome.Center.Y)
	}
	if outcome.Kind != bridge.KindSuccess {
		result.Error = outcome.Reason
	}
	if err := output.Print(result); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("send failed: %s", outcome.Reason)
	}
	return nil
}
