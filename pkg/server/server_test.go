package server

import (
	"encoding/gob"
	"net"
	"testing"
	"time"

	"statushud/pkg/hud"
	"statushud/pkg/shared/config"
	protocol "statushud/pkg/shared/network"
)

type testClient struct {
	conn net.Conn
	enc  *gob.Encoder
	dec  *gob.Decoder
}

func connect(t *testing.T, gs *GameServer, username string) *testClient {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	go gs.HandleConnection(serverConn)

	c := &testClient{conn: clientConn, enc: gob.NewEncoder(clientConn), dec: gob.NewDecoder(clientConn)}
	if err := c.enc.Encode(protocol.Packet{Type: protocol.PacketLogin, Data: protocol.LoginPacket{Username: username}}); err != nil {
		t.Fatalf("send login: %v", err)
	}
	resp := c.next(t)
	if resp.Type != protocol.PacketLoginResponse || !resp.Data.(protocol.LoginResponsePacket).Success {
		t.Fatalf("expected successful login, got %+v", resp)
	}
	return c
}

func (c *testClient) next(t *testing.T) protocol.Packet {
	t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var p protocol.Packet
	if err := c.dec.Decode(&p); err != nil {
		t.Fatalf("decode packet: %v", err)
	}
	return p
}

func newTestServer() *GameServer {
	protocol.RegisterGobTypes()
	gs := NewGameServer(config.Default())
	gs.Start()
	return gs
}

func connectedPlayer(gs *GameServer, username string) *Player {
	gs.Mutex.RLock()
	defer gs.Mutex.RUnlock()
	return gs.playerByName(username)
}

func TestPlayerReceivesStatusPanel(t *testing.T) {
	gs := newTestServer()
	c := connect(t, gs, "alice")
	defer c.conn.Close()

	p := connectedPlayer(gs, "alice")
	if p == nil {
		t.Fatalf("expected alice to be registered")
	}
	gs.HandleAction(p.EntityID, protocol.ActionPacket{Action: config.ActionAuthorize})

	go gs.Update(0.033)

	destroy := c.next(t)
	if destroy.Type != protocol.PacketHudDestroy || destroy.Data.(protocol.HudDestroyPacket).Name != hud.RootName {
		t.Fatalf("expected panel destroy first, got %+v", destroy)
	}
	draw := c.next(t)
	if draw.Type != protocol.PacketHudDraw {
		t.Fatalf("expected draw packet, got %+v", draw)
	}
	elements := draw.Data.(protocol.HudDrawPacket).Elements

	// comfort + buildpriv + upkeep reserve three slots; Safe Zone is row 4.
	var label, icon *hud.Element
	for i := range elements {
		switch elements[i].Name {
		case "status.4.label":
			label = &elements[i]
		case "status.4.icon":
			icon = &elements[i]
		}
	}
	if label == nil || label.Text.Text != "SAFE ZONE" {
		t.Fatalf("expected SAFE ZONE row, got %+v", elements)
	}
	if icon == nil || icon.Image.Png != "icon-safezone" {
		t.Fatalf("expected resolved safezone icon, got %+v", icon)
	}
	if n, _ := gs.HUD.LastCount("alice"); n != 4 {
		t.Fatalf("expected combined count 4, got %d", n)
	}
}

func TestDuplicateLoginRejected(t *testing.T) {
	gs := newTestServer()
	c := connect(t, gs, "alice")
	defer c.conn.Close()

	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()
	go gs.HandleConnection(serverConn)
	enc, dec := gob.NewEncoder(clientConn), gob.NewDecoder(clientConn)
	if err := enc.Encode(protocol.Packet{Type: protocol.PacketLogin, Data: protocol.LoginPacket{Username: "alice"}}); err != nil {
		t.Fatalf("send login: %v", err)
	}
	clientConn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp protocol.Packet
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.(protocol.LoginResponsePacket).Success {
		t.Fatalf("expected second alice login to fail")
	}
}

func TestRejectedLoginToClosedClientEndsHandler(t *testing.T) {
	gs := newTestServer()
	serverConn, clientConn := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		gs.HandleConnection(serverConn)
	}()

	enc := gob.NewEncoder(clientConn)
	if err := enc.Encode(protocol.Packet{Type: protocol.PacketLogin, Data: protocol.LoginPacket{Username: ""}}); err != nil {
		t.Fatalf("send login: %v", err)
	}
	clientConn.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected handler to return once the rejection cannot be sent")
	}
	gs.Mutex.RLock()
	n := len(gs.Players)
	gs.Mutex.RUnlock()
	if n != 0 {
		t.Fatalf("expected no players, got %d", n)
	}
}

func TestApplyConfigKeepsStartupOnlyFields(t *testing.T) {
	gs := newTestServer()
	next := config.Default()
	next.Server.AmbientTemperature = 5
	next.Server.Cupboards = nil
	next.HUD.DemoStatuses = !gs.Config.HUD.DemoStatuses
	next.HUD.ChangeDetection = "content"

	fields := restartRequired(gs.Config, next)
	want := map[string]bool{"server.cupboards": true, "hud.demo_statuses": true}
	if len(fields) != len(want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
	for _, f := range fields {
		if !want[f] {
			t.Fatalf("unexpected restart field %q", f)
		}
	}

	demo := gs.Config.HUD.DemoStatuses
	gs.ApplyConfig(next)
	if gs.Config.HUD.DemoStatuses != demo {
		t.Fatalf("expected demo_statuses to stay as started")
	}
	if gs.Config.HUD.ChangeDetection != "content" {
		t.Fatalf("expected change detection applied, got %q", gs.Config.HUD.ChangeDetection)
	}
	if gs.MetabolismSystem.AmbientTemperature != 5 {
		t.Fatalf("expected ambient temperature applied, got %v", gs.MetabolismSystem.AmbientTemperature)
	}
	if len(restartRequired(gs.Config, gs.Config)) != 0 {
		t.Fatalf("expected an unchanged config to need no restart")
	}
}

func TestDisconnectDropsHUDState(t *testing.T) {
	gs := newTestServer()
	c := connect(t, gs, "alice")

	go gs.Update(0.033)
	c.next(t) // destroy
	c.next(t) // draw
	if _, ok := gs.HUD.LastCount("alice"); !ok {
		t.Fatalf("expected cached count after first tick")
	}

	c.conn.Close()
	deadline := time.Now().Add(5 * time.Second)
	for connectedPlayer(gs, "alice") != nil {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := gs.HUD.LastCount("alice"); ok {
		t.Fatalf("expected disconnect to drop HUD state")
	}
}

func TestShutdownDestroysPanels(t *testing.T) {
	gs := newTestServer()
	c := connect(t, gs, "alice")
	defer c.conn.Close()

	go gs.Shutdown()
	p := c.next(t)
	if p.Type != protocol.PacketHudDestroy || p.Data.(protocol.HudDestroyPacket).Name != hud.RootName {
		t.Fatalf("expected panel destroy on shutdown, got %+v", p)
	}
	if gs.HUD.Active() {
		t.Fatalf("expected HUD unloaded after shutdown")
	}
}

func TestIconCatalog(t *testing.T) {
	c := NewIconCatalog(map[string]string{"a": "1", "blank": ""})
	if h, ok := c.ResolveIcon("a"); !ok || h != "1" {
		t.Fatalf("expected handle 1, got %q %v", h, ok)
	}
	if _, ok := c.ResolveIcon("blank"); ok {
		t.Fatalf("expected blank handle to be a miss")
	}
	c.Replace(map[string]string{"b": "2"})
	if _, ok := c.ResolveIcon("a"); ok {
		t.Fatalf("expected replaced catalog to drop a")
	}
}
