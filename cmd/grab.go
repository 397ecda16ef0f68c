package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/bridgectl/internal/config"
	"github.com/mj1618/bridgectl/internal/host/chrome"
	"github.com/mj1618/bridgectl/internal/output"
	"github.com/mj1618/bridgectl/internal/panel"
	"github.com/spf13/cobra"
)

var grabCmd = &cobra.Command{
	Use:   "grab",
	Short: "Read the inspector page's current selection",
	Long: `Attach to the inspector page once and print the currently selected
element's rectangle, path, and attributes.`,
	RunE: runGrab,
}

func init() {
	rootCmd.AddCommand(grabCmd)
	grabCmd.Flags().String("devtools-url", "ws://127.0.0.1:9222", "Chrome DevTools endpoint")
	grabCmd.Flags().String("page-url", "", "Inspector page URL to navigate to (default: current page)")
	grabCmd.Flags().String("config", "", "Panel config file (default: user config dir)")
}

func runGrab(cmd *cobra.Command, args []string) error {
	devtoolsURL, _ := cmd.Flags().GetString("devtools-url")
	pageURL, _ := cmd.Flags().GetString("page-url")
	configPath, _ := cmd.Flags().GetString("config")

	store, err := config.NewStore(configPath)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	h, err := chrome.Attach(cmd.Context(), chrome.Options{
		DevToolsURL:  devtoolsURL,
		PageURL:      pageURL,
		PollInterval: time.Second,
		Log:          logger,
	})
	if err != nil {
		return err
	}
	defer h.Close()

	ext := panel.NewExtractor(h)
	ext.PathSelector = cfg.ElementPathSelector
	sel, ok := ext.Extract()

	if err := output.Print(output.GrabResult{Found: ok, Selection: sel}); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no element selected on the inspector page")
	}
	return nil
}
