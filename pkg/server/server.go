package server

import (
	"encoding/gob"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"reflect"
	"sync"
	"syscall"
	"time"

	"statushud/pkg/hud"
	"statushud/pkg/network"
	"statushud/pkg/server/systems"
	"statushud/pkg/shared/components"
	"statushud/pkg/shared/config"
	"statushud/pkg/shared/ecs"
	protocol "statushud/pkg/shared/network"
)

type Player struct {
	Conn     net.Conn
	Encoder  *gob.Encoder
	Decoder  *gob.Decoder
	EntityID ecs.Entity
	Username string

	sendMu sync.Mutex
}

// Send writes one packet to the player's connection.
func (p *Player) Send(packet protocol.Packet) error {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	return p.Encoder.Encode(packet)
}

type GameServer struct {
	World            *ecs.World
	Players          map[ecs.Entity]*Player
	Mutex            sync.RWMutex
	MetabolismSystem *systems.MetabolismSystem
	HUDSystem        *systems.HUDSystem
	HUD              *hud.Controller
	Icons            *IconCatalog
	Config           *config.Config
}

func NewGameServer(cfg *config.Config) *GameServer {
	worldECS := ecs.NewWorld()

	gs := &GameServer{
		World:   worldECS,
		Players: make(map[ecs.Entity]*Player),
		Icons:   NewIconCatalog(cfg.HUD.Icons),
		Config:  cfg,
	}

	gs.MetabolismSystem = systems.NewMetabolismSystem(worldECS, cfg.Server.AmbientTemperature)
	gs.HUDSystem = systems.NewHUDSystem(worldECS)
	// HUD runs after the simulation so it sees this step's values.
	worldECS.AddSystem(gs.MetabolismSystem)
	worldECS.AddSystem(gs.HUDSystem)

	gs.HUD = hud.NewController(&netDrawer{server: gs}, cfg.HUD.Options(gs.Icons))
	if cfg.HUD.DemoStatuses {
		RegisterDemoStatuses(gs.HUD)
	}

	for _, cb := range cfg.Server.Cupboards {
		gs.SpawnCupboard(cb)
	}
	return gs
}

// Start attaches the HUD to the game loop. Run calls it; tests may call it
// directly.
func (s *GameServer) Start() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.HUD.Load(s.HUDSystem)
}

func (s *GameServer) Run() error {
	protocol.RegisterGobTypes()
	s.Start()

	var listener net.Listener
	if s.Config.Server.TCPAddr != "" {
		l, err := net.Listen("tcp", s.Config.Server.TCPAddr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.Config.Server.TCPAddr, err)
		}
		listener = l
		log.Printf("Server listening on %s", s.Config.Server.TCPAddr)
	}

	if s.Config.Server.WSAddr != "" {
		go func() {
			log.Printf("WebSocket Server listening on %s/ws", s.Config.Server.WSAddr)
			if err := network.StartWebSocketServer(s.Config.Server.WSAddr, s.HandleConnection); err != nil {
				log.Printf("WebSocket server stopped: %v", err)
			}
		}()
	}

	go s.GameLoop()

	// Graceful Shutdown Handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		s.Shutdown()
		os.Exit(0)
	}()

	if listener == nil {
		select {}
	}
	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("Failed to accept connection: %v", err)
			continue
		}
		go s.HandleConnection(conn)
	}
}

// Shutdown tears down every HUD while players are still connected.
func (s *GameServer) Shutdown() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.HUDSystem.Shutdown()
}

// ApplyConfig swaps the runtime-tunable parts of the configuration: HUD
// layout, thresholds, icons, change detection and ambient temperature.
// Other changed fields are logged and take effect after a restart.
func (s *GameServer) ApplyConfig(cfg *config.Config) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if fields := restartRequired(s.Config, cfg); len(fields) > 0 {
		log.Printf("Config: %v changed, restart to apply", fields)
	}
	demo := s.Config.HUD.DemoStatuses
	s.Config.HUD = cfg.HUD
	s.Config.HUD.DemoStatuses = demo
	s.Config.Server.AmbientTemperature = cfg.Server.AmbientTemperature
	s.Icons.Replace(cfg.HUD.Icons)
	s.MetabolismSystem.AmbientTemperature = cfg.Server.AmbientTemperature
	s.HUD.Configure(cfg.HUD.Options(s.Icons))
	log.Printf("HUD: applied config (change detection %s)", cfg.HUD.ChangeDetection)
}

// restartRequired lists the fields that differ between the running and the
// next config but are only read at startup.
func restartRequired(running, next *config.Config) []string {
	var fields []string
	a, b := running.Server, next.Server
	if a.TCPAddr != b.TCPAddr {
		fields = append(fields, "server.tcp_addr")
	}
	if a.WSAddr != b.WSAddr {
		fields = append(fields, "server.ws_addr")
	}
	if a.TickMs != b.TickMs {
		fields = append(fields, "server.tick_ms")
	}
	if a.SpawnX != b.SpawnX || a.SpawnY != b.SpawnY {
		fields = append(fields, "server.spawn")
	}
	if !reflect.DeepEqual(a.Cupboards, b.Cupboards) {
		fields = append(fields, "server.cupboards")
	}
	if running.HUD.DemoStatuses != next.HUD.DemoStatuses {
		fields = append(fields, "hud.demo_statuses")
	}
	return fields
}

func (s *GameServer) SpawnCupboard(cb config.CupboardConfig) ecs.Entity {
	id := s.World.NewEntity()
	authed := make(map[string]bool, len(cb.Authorized))
	for _, user := range cb.Authorized {
		authed[user] = true
	}
	s.World.AddComponent(id, components.TransformComponent{X: cb.X, Y: cb.Y})
	s.World.AddComponent(id, components.PrivilegeComponent{Radius: cb.Radius, Authorized: authed})
	return id
}

// SpawnPlayer creates the entity for a logged in user.
// Callers hold s.Mutex.
func (s *GameServer) SpawnPlayer(username string) ecs.Entity {
	id := s.World.NewEntity()
	s.World.AddComponent(id, components.PlayerComponent{UserID: username})
	s.World.AddComponent(id, components.TransformComponent{X: s.Config.Server.SpawnX, Y: s.Config.Server.SpawnY})
	s.World.AddComponent(id, components.DefaultMetabolism())
	return id
}

func (s *GameServer) HandleConnection(conn net.Conn) {
	defer conn.Close()
	decoder := gob.NewDecoder(conn)
	encoder := gob.NewEncoder(conn)

	var player *Player
	for player == nil {
		var packet protocol.Packet
		if err := decoder.Decode(&packet); err != nil {
			log.Printf("Failed to decode auth packet: %v", err)
			return
		}
		if packet.Type != protocol.PacketLogin {
			continue
		}
		req, ok := packet.Data.(protocol.LoginPacket)
		if !ok || req.Username == "" {
			if err := encoder.Encode(protocol.Packet{Type: protocol.PacketLoginResponse, Data: protocol.LoginResponsePacket{Success: false, Error: "Invalid username"}}); err != nil {
				log.Printf("Failed to send login rejection: %v", err)
				return
			}
			continue
		}

		s.Mutex.Lock()
		if s.playerByName(req.Username) != nil {
			s.Mutex.Unlock()
			if err := encoder.Encode(protocol.Packet{Type: protocol.PacketLoginResponse, Data: protocol.LoginResponsePacket{Success: false, Error: "Already connected"}}); err != nil {
				log.Printf("Failed to send login rejection: %v", err)
				return
			}
			continue
		}
		player = &Player{
			Conn:     conn,
			Encoder:  encoder,
			Decoder:  decoder,
			EntityID: s.SpawnPlayer(req.Username),
			Username: req.Username,
		}
		// Respond before the first HUD draw can reach this player.
		err := player.Send(protocol.Packet{Type: protocol.PacketLoginResponse, Data: protocol.LoginResponsePacket{Success: true}})
		s.Players[player.EntityID] = player
		s.Mutex.Unlock()

		if err != nil {
			log.Printf("Failed to send login response: %v", err)
			s.RemovePlayer(player.EntityID)
			return
		}
		log.Printf("Player %s logged in", req.Username)
	}

	for {
		var packet protocol.Packet
		if err := decoder.Decode(&packet); err != nil {
			log.Printf("Player %s disconnected: %v", player.Username, err)
			s.RemovePlayer(player.EntityID)
			return
		}
		if packet.Type == protocol.PacketAction {
			if action, ok := packet.Data.(protocol.ActionPacket); ok {
				s.HandleAction(player.EntityID, action)
			}
		}
	}
}

// HandleAction applies a client action to the player's simulated state.
func (s *GameServer) HandleAction(id ecs.Entity, action protocol.ActionPacket) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()

	if action.Action == config.ActionAuthorize {
		s.toggleAuthorization(id)
		return
	}
	ecs.Update[components.MetabolismComponent](s.World, id, func(m *components.MetabolismComponent) {
		switch action.Action {
		case config.ActionSwim:
			m.Swimming = !m.Swimming
		case config.ActionEat:
			m.Calories += 100
		case config.ActionDrink:
			m.Hydration += 100
		case config.ActionBleed:
			m.Bleeding = 5
		default:
			log.Printf("Unknown action %q from entity %d", action.Action, id)
		}
	})
}

func (s *GameServer) toggleAuthorization(id ecs.Entity) {
	player, ok := s.Players[id]
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[components.TransformComponent](s.World, id)
	if !ok {
		return
	}
	cupboard, _, found := systems.FindPrivilege(s.World, pos.X, pos.Y)
	if !found {
		log.Printf("Player %s is not near a cupboard", player.Username)
		return
	}
	ecs.Update[components.PrivilegeComponent](s.World, cupboard, func(p *components.PrivilegeComponent) {
		if p.Authorized == nil {
			p.Authorized = make(map[string]bool)
		}
		if p.Authorized[player.Username] {
			delete(p.Authorized, player.Username)
		} else {
			p.Authorized[player.Username] = true
		}
		log.Printf("Player %s authorized on cupboard %d: %v", player.Username, cupboard, p.Authorized[player.Username])
	})
}

func (s *GameServer) RemovePlayer(id ecs.Entity) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()

	if player, ok := s.Players[id]; ok {
		s.HUDSystem.Disconnect(player.Username)
	}
	delete(s.Players, id)
	s.World.RemoveEntity(id)
}

func (s *GameServer) GameLoop() {
	tick := time.Duration(s.Config.Server.TickMs) * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for range ticker.C {
		s.Update(tick.Seconds())
	}
}

func (s *GameServer) Update(dt float64) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.World.Update(dt)
}

// playerByName looks up a connected player. Callers hold s.Mutex.
func (s *GameServer) playerByName(username string) *Player {
	for _, p := range s.Players {
		if p.Username == username {
			return p
		}
	}
	return nil
}
