package network

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/coder/websocket"
)

// NewWebSocketConn adapts a websocket.Conn to net.Conn carrying binary
// messages, so the gob codec runs unchanged over it.
func NewWebSocketConn(ctx context.Context, c *websocket.Conn) net.Conn {
	return websocket.NetConn(ctx, c, websocket.MessageBinary)
}

// WebSocketHandler upgrades /ws requests and hands the connection to handler.
// handler owns the connection and runs for as long as the player is online.
func WebSocketHandler(handler func(net.Conn)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}
		// The connection outlives the request, so it gets its own context.
		handler(NewWebSocketConn(context.Background(), c))
	})
}

// StartWebSocketServer serves WebSocket players on addr/ws and static client
// files from ./static on every other path.
func StartWebSocketServer(addr string, handler func(net.Conn)) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", WebSocketHandler(handler))
	mux.Handle("/", http.FileServer(http.Dir("./static")))
	return http.ListenAndServe(addr, mux)
}
