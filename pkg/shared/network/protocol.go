package network

import (
	"encoding/gob"

	"statushud/pkg/hud"
)

// RegisterGobTypes registers all types that will be sent over the wire.
func RegisterGobTypes() {
	gob.Register(LoginPacket{})
	gob.Register(LoginResponsePacket{})
	gob.Register(ActionPacket{})
	gob.Register(HudDrawPacket{})
	gob.Register(HudDestroyPacket{})
}

type PacketType int

const (
	PacketLogin         PacketType = 1
	PacketLoginResponse PacketType = 2
	PacketAction        PacketType = 3
	PacketHudDraw       PacketType = 4
	PacketHudDestroy    PacketType = 5
)

type Packet struct {
	Type PacketType
	Data interface{}
}

// Client -> Server
type LoginPacket struct {
	Username string
}

// Server -> Client
type LoginResponsePacket struct {
	Success bool
	Error   string
}

// ActionPacket (Client -> Server) pokes the player's simulated state.
type ActionPacket struct {
	Action string // config.ActionSwim, ActionEat, ...
}

// HudDrawPacket (Server -> Client) adds elements to the client's scene.
type HudDrawPacket struct {
	Elements []hud.Element
}

// HudDestroyPacket (Server -> Client) removes an element and its children.
type HudDestroyPacket struct {
	Name string
}
