package server

import (
	"fmt"

	"statushud/pkg/hud"
	protocol "statushud/pkg/shared/network"
)

// netDrawer forwards HUD scene commands to the player's client. The HUD
// only calls it from inside World.Update or Shutdown, so s.Mutex is held.
type netDrawer struct {
	server *GameServer
}

func (d *netDrawer) Destroy(user, name string) error {
	p := d.server.playerByName(user)
	if p == nil {
		return fmt.Errorf("no connected player %q", user)
	}
	return p.Send(protocol.Packet{Type: protocol.PacketHudDestroy, Data: protocol.HudDestroyPacket{Name: name}})
}

func (d *netDrawer) Draw(user string, elements []hud.Element) error {
	p := d.server.playerByName(user)
	if p == nil {
		return fmt.Errorf("no connected player %q", user)
	}
	return p.Send(protocol.Packet{Type: protocol.PacketHudDraw, Data: protocol.HudDrawPacket{Elements: elements}})
}
