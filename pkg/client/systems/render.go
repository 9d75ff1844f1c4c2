package systems

import (
	"fmt"

	"statushud/pkg/network"
	"statushud/pkg/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RenderSystem draws the HUD elements the server placed in the client scene.
type RenderSystem struct {
	Client   *network.NetworkClient
	UISystem *UISystem
	HUD      *ui.Manager
}

func NewRenderSystem(client *network.NetworkClient, uiSystem *UISystem) *RenderSystem {
	return &RenderSystem{
		Client:   client,
		UISystem: uiSystem,
		HUD:      ui.NewManager(),
	}
}

func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.HUD.SetElements(ui.FromScene(s.Client.Scene.Nodes()))
	s.HUD.Draw(screen)

	status := "disconnected"
	if s.Client.Connected() {
		status = "connected as " + s.Client.Username
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s | %d HUD elements | %.0f FPS", status, s.Client.Scene.Len(), ebiten.ActualFPS()), 10, 10)

	s.UISystem.Draw(screen)
}
