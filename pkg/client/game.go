package client

import (
	"image/color"
	"log"

	"statushud/pkg/client/assets"
	"statushud/pkg/client/systems"
	"statushud/pkg/network"
	"statushud/pkg/shared/config"
	protocol "statushud/pkg/shared/network"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	ScreenWidth  = config.ScreenWidth
	ScreenHeight = config.ScreenHeight
)

type Game struct {
	Client  *network.NetworkClient
	Address string

	// Systems
	UISystem     *systems.UISystem
	InputSystem  *systems.InputSystem
	RenderSystem *systems.RenderSystem

	LoggedIn bool
	Keys     map[string]ebiten.Key
}

// NewGame prepares a client for the server at address. A non-empty username
// logs in right away instead of showing the login form.
func NewGame(address, username string, icons []string) *Game {
	protocol.RegisterGobTypes()
	assets.Load(icons...)
	g := &Game{
		Client:  network.NewNetworkClient(),
		Address: address,
		Keys:    systems.DefaultKeys(),
	}

	g.UISystem = systems.NewUISystem(g.Keys)
	g.InputSystem = systems.NewInputSystem(g.Client, g.Keys)
	g.RenderSystem = systems.NewRenderSystem(g.Client, g.UISystem)

	g.UISystem.RegisterLoginCallback(g.login)
	g.UISystem.RegisterActionCallback(g.InputSystem.Send)

	if username != "" {
		g.login(username)
	}
	return g
}

func (g *Game) login(username string) {
	if err := g.Client.Connect(g.Address, username); err != nil {
		log.Printf("Login Error: %v", err)
		g.UISystem.ShowError(err.Error())
		return
	}
	g.LoggedIn = true
}

func (g *Game) Update() error {
	if g.LoggedIn && !g.Client.Connected() {
		g.LoggedIn = false
		g.Client.Close()
		g.UISystem.ShowError("Disconnected from server")
	}

	if !g.LoggedIn {
		return g.UISystem.UpdateLogin()
	}

	if err := g.UISystem.Update(); err != nil {
		return err
	}
	g.InputSystem.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 60, B: 20, A: 255}) // Dark green background

	if !g.LoggedIn {
		g.UISystem.DrawLogin(screen)
		return
	}
	g.RenderSystem.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
