package systems

import (
	"log"

	"statushud/pkg/network"
	"statushud/pkg/shared/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultKeys binds every demo action to a key.
func DefaultKeys() map[string]ebiten.Key {
	return map[string]ebiten.Key{
		config.ActionSwim:      ebiten.KeyW,
		config.ActionEat:       ebiten.KeyE,
		config.ActionDrink:     ebiten.KeyD,
		config.ActionBleed:     ebiten.KeyB,
		config.ActionAuthorize: ebiten.KeyA,
	}
}

type InputSystem struct {
	Client *network.NetworkClient
	Keys   map[string]ebiten.Key
}

func NewInputSystem(client *network.NetworkClient, keys map[string]ebiten.Key) *InputSystem {
	return &InputSystem{
		Client: client,
		Keys:   keys,
	}
}

// Update sends one action per key press.
func (s *InputSystem) Update() {
	for _, action := range config.Actions {
		key, ok := s.Keys[action]
		if !ok || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		s.Send(action)
	}
}

func (s *InputSystem) Send(action string) {
	if err := s.Client.SendAction(action); err != nil {
		log.Printf("Failed to send action %s: %v", action, err)
	}
}
