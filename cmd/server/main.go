package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "statushud",
	Short: "Status HUD demo server",
	Long: `Runs a small survival simulation and draws each connected player's
status panel through the HUD engine.

Commands:
  - serve:   accept TCP and WebSocket clients
  - preview: print a scripted HUD session to the terminal`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
