package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/bridgectl/internal/bridge"
	"github.com/mj1618/bridgectl/internal/config"
	"github.com/mj1618/bridgectl/internal/host/chrome"
	"github.com/mj1618/bridgectl/internal/panel"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Attach to the inspector page and forward clicks to the bridge",
	Long: `Attach to a running Chrome instance, inject the control panel overlay
into the inspector page, and forward each element click to the bridge as
the action currently selected in the panel.

Examples:
  bridgectl watch --devtools-url ws://127.0.0.1:9222
  bridgectl watch --devtools-url ws://127.0.0.1:9222 --page-url http://localhost:17310`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("devtools-url", "ws://127.0.0.1:9222", "Chrome DevTools endpoint")
	watchCmd.Flags().String("page-url", "", "Inspector page URL to navigate to (default: current page)")
	watchCmd.Flags().String("config", "", "Panel config file (default: user config dir)")
	watchCmd.Flags().Int("poll-interval", 150, "Click poll interval in milliseconds")
	watchCmd.Flags().String("action", bridge.ActionTap, "Initial action: tap, long_press, input, swipe, back")
	watchCmd.Flags().Bool("auto-send", true, "Send automatically on qualifying clicks")
	watchCmd.Flags().Int("refresh-times", panel.DefaultRefreshTimes, "Refresh clicks after a successful send")
	watchCmd.Flags().Int("refresh-interval", panel.DefaultRefreshInterval, "Interval between refresh clicks in milliseconds")
	watchCmd.Flags().String("capture-mode", "", "Capture timing: post, mid (default: config)")
	watchCmd.Flags().Int("mid-delay-ms", -1, "Mid-capture delay (default: config)")
	watchCmd.Flags().Int("wait-after-ms", -1, "Post-capture settle wait (default: config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	devtoolsURL, _ := cmd.Flags().GetString("devtools-url")
	pageURL, _ := cmd.Flags().GetString("page-url")
	configPath, _ := cmd.Flags().GetString("config")
	pollMs, _ := cmd.Flags().GetInt("poll-interval")

	store, err := config.NewStore(configPath)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, err := chrome.Attach(ctx, chrome.Options{
		DevToolsURL:  devtoolsURL,
		PageURL:      pageURL,
		PollInterval: time.Duration(pollMs) * time.Millisecond,
		Log:          logger,
	})
	if err != nil {
		return err
	}
	defer h.Close()

	client := bridge.NewClient(bridgeURL())
	ctl := panel.NewController(h, client, cfg, logger)

	action, _ := cmd.Flags().GetString("action")
	autoSend, _ := cmd.Flags().GetBool("auto-send")
	refreshTimes, _ := cmd.Flags().GetInt("refresh-times")
	refreshInterval, _ := cmd.Flags().GetInt("refresh-interval")
	captureMode, _ := cmd.Flags().GetString("capture-mode")
	midDelay, _ := cmd.Flags().GetInt("mid-delay-ms")
	waitAfter, _ := cmd.Flags().GetInt("wait-after-ms")
	if !bridge.KnownAction(action) {
		return fmt.Errorf("unknown action: %s", action)
	}
	ctl.SetState(func(s *panel.State) {
		s.Action = action
		s.AutoSend = autoSend
		s.Refresh = panel.RefreshPolicy{Times: refreshTimes, IntervalMs: refreshInterval}
		if captureMode != "" {
			s.CaptureMode = captureMode
		}
		if midDelay >= 0 {
			s.MidDelayMs = midDelay
		}
		if waitAfter >= 0 {
			s.WaitAfterMs = waitAfter
		}
	})
	// Mirror the seeded state into the overlay so the next field sync does
	// not revert it to the markup defaults.
	seeded := ctl.State()
	for name, value := range map[string]string{
		panel.FieldAction:      seeded.Action,
		panel.FieldAutoSend:    strconv.FormatBool(seeded.AutoSend),
		panel.FieldCaptureMode: seeded.CaptureMode,
		panel.FieldMidDelay:    strconv.Itoa(seeded.MidDelayMs),
		panel.FieldWaitAfter:   strconv.Itoa(seeded.WaitAfterMs),
	} {
		if err := h.SetField(name, value); err != nil {
			logger.Debug("field seed failed", zap.String("field", name), zap.Error(err))
		}
	}

	logger.Info("watching",
		zap.String("devtools", devtoolsURL),
		zap.String("bridge", client.BaseURL))

	err = ctl.Run(ctx)
	ctl.Flush()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
