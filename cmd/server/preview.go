package main

import (
	"github.com/spf13/cobra"

	"statushud/pkg/preview"
	"statushud/pkg/server"
	"statushud/pkg/shared/config"
)

var previewUser string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a scripted HUD session",
	Long: `Play a short scripted session (spawn, cupboard, thirst, swimming)
through the HUD engine with the configured layout and demo statuses, and
print the panel after every tick.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewUser, "user", "u", "preview", "user id shown in the session")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	opts := preview.Options{
		User: previewUser,
		HUD:  cfg.HUD.Options(server.NewIconCatalog(cfg.HUD.Icons)),
	}
	if cfg.HUD.DemoStatuses {
		opts.Register = server.RegisterDemoStatuses
	}
	return preview.Run(cmd.OutOrStdout(), preview.DemoScript(), opts)
}
