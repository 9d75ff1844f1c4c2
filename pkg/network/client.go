package network

import (
	"encoding/gob"
	"fmt"
	"log"
	"net"
	"sync"

	"statushud/pkg/client/scene"
	"statushud/pkg/shared/config"
	protocol "statushud/pkg/shared/network"
)

// NetworkClient keeps the connection to the server and mirrors the HUD
// elements the server draws into Scene.
type NetworkClient struct {
	Conn     net.Conn
	Encoder  *gob.Encoder
	Decoder  *gob.Decoder
	Scene    *scene.Tree
	Username string

	sendMu    sync.Mutex
	mu        sync.RWMutex
	connected bool
}

func NewNetworkClient() *NetworkClient {
	return &NetworkClient{
		Scene: scene.NewTree(config.ScreenWidth, config.ScreenHeight),
	}
}

// Connect dials address, logs in as username and starts the listen loop.
func (c *NetworkClient) Connect(address, username string) error {
	conn, err := Dial(address)
	if err != nil {
		return fmt.Errorf("dial %s: %w", address, err)
	}
	if err := c.Attach(conn, username); err != nil {
		conn.Close()
		return err
	}
	go c.ListenLoop()
	return nil
}

// Attach performs the login handshake on an already open connection.
func (c *NetworkClient) Attach(conn net.Conn, username string) error {
	enc := gob.NewEncoder(conn)
	dec := gob.NewDecoder(conn)

	login := protocol.Packet{
		Type: protocol.PacketLogin,
		Data: protocol.LoginPacket{Username: username},
	}
	if err := enc.Encode(login); err != nil {
		return fmt.Errorf("send login: %w", err)
	}

	var response protocol.Packet
	if err := dec.Decode(&response); err != nil {
		return fmt.Errorf("read login response: %w", err)
	}
	if response.Type != protocol.PacketLoginResponse {
		return fmt.Errorf("unexpected packet type: %d", response.Type)
	}
	resp, ok := response.Data.(protocol.LoginResponsePacket)
	if !ok {
		return fmt.Errorf("malformed login response")
	}
	if !resp.Success {
		return fmt.Errorf("login failed: %s", resp.Error)
	}

	c.mu.Lock()
	c.Conn, c.Encoder, c.Decoder = conn, enc, dec
	c.Username = username
	c.connected = true
	c.mu.Unlock()
	log.Printf("Logged in as %s", username)
	return nil
}

// ListenLoop applies HUD packets until the connection drops.
func (c *NetworkClient) ListenLoop() {
	for {
		var packet protocol.Packet
		if err := c.Decoder.Decode(&packet); err != nil {
			log.Printf("Disconnected from server: %v", err)
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			c.Scene.Clear()
			return
		}
		c.Apply(packet)
	}
}

// Apply handles one server packet.
func (c *NetworkClient) Apply(packet protocol.Packet) {
	switch packet.Type {
	case protocol.PacketHudDraw:
		if draw, ok := packet.Data.(protocol.HudDrawPacket); ok {
			c.Scene.Draw(draw.Elements)
		}
	case protocol.PacketHudDestroy:
		if destroy, ok := packet.Data.(protocol.HudDestroyPacket); ok {
			c.Scene.Destroy(destroy.Name)
		}
	default:
		log.Printf("Ignoring packet type %d", packet.Type)
	}
}

func (c *NetworkClient) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// SendAction asks the server to change the player's simulated state.
func (c *NetworkClient) SendAction(action string) error {
	c.mu.RLock()
	enc := c.Encoder
	c.mu.RUnlock()
	if enc == nil {
		return fmt.Errorf("not connected")
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return enc.Encode(protocol.Packet{
		Type: protocol.PacketAction,
		Data: protocol.ActionPacket{Action: action},
	})
}

func (c *NetworkClient) Close() {
	c.mu.Lock()
	if c.Conn != nil {
		c.Conn.Close()
		c.Conn = nil
	}
	c.Encoder, c.Decoder = nil, nil
	c.connected = false
	c.mu.Unlock()
	c.Scene.Clear()
}
