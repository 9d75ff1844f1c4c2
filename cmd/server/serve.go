package main

import (
	"log"

	"github.com/spf13/cobra"

	"statushud/pkg/server"
	"statushud/pkg/shared/config"
)

var watchConfig bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game server",
	Long: `Run the game server.

Settings come from the defaults, then the --config file, then HUD_*
environment variables. With --watch, edits to the HUD layout, thresholds,
icons, change detection and ambient temperature are applied without a
restart. Addresses, tick rate, spawn point, cupboards and demo_statuses are
read once at startup; changing them is logged and needs a restart.

Examples:
  statushud serve
  statushud serve --config hud.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&watchConfig, "watch", false, "reload the config file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	gs := server.NewGameServer(cfg)
	if watchConfig && configPath != "" {
		stop, err := config.Watch(configPath, gs.ApplyConfig)
		if err != nil {
			return err
		}
		defer stop()
		log.Printf("Config: watching %s", configPath)
	}
	return gs.Run()
}
