package cmd

import (
	"fmt"
	"strconv"

	"github.com/mj1618/bridgectl/internal/config"
	"github.com/mj1618/bridgectl/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the persisted panel config",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current config",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config key and save",
	Long: `Set one config key and persist the whole config.

Keys:
  element-path-selector   CSS selector for the element-path region
  capture-mode            post or mid
  mid-delay-ms            delay before the mid-action capture
  wait-after-ms           settle wait before the post-action capture`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
	configCmd.PersistentFlags().String("config", "", "Panel config file (default: user config dir)")
}

func openStore(cmd *cobra.Command) (*config.Store, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.NewStore(path)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}
	return output.Print(cfg)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case "element-path-selector":
		cfg.ElementPathSelector = value
	case "capture-mode":
		cfg.CaptureMode = value
	case "mid-delay-ms", "wait-after-ms":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		if key == "mid-delay-ms" {
			cfg.MidDelayMs = n
		} else {
			cfg.WaitAfterMs = n
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := store.Save(cfg); err != nil {
		return err
	}
	return output.Print(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	fmt.Println(store.Path())
	return nil
}
