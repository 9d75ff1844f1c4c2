package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"statushud/pkg/client"
	"statushud/pkg/shared/config"
)

var (
	addr string
	user string
)

var rootCmd = &cobra.Command{
	Use:   "statushud-client",
	Short: "Status HUD demo client",
	Long: `Connects to the demo server and draws the status panel it sends.

Keys: W swim, E eat, D drink, B bleed, A toggle cupboard authorization.`,
	Args: cobra.NoArgs,
	RunE: runClient,
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "127.0.0.1"+config.ServerPortTCP, "server address (ws:// URL in the browser)")
	rootCmd.Flags().StringVarP(&user, "user", "u", "", "log in as this user instead of showing the login form")
}

func runClient(cmd *cobra.Command, args []string) error {
	var icons []string
	for _, h := range config.Default().HUD.Icons {
		icons = append(icons, h)
	}
	sort.Strings(icons)

	game := client.NewGame(addr, user, icons)

	ebiten.SetWindowSize(client.ScreenWidth, client.ScreenHeight)
	ebiten.SetWindowTitle("Status HUD")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
