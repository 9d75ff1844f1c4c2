//go:build js && wasm

package network

import (
	"context"
	"net"
	"strings"

	"github.com/coder/websocket"
)

// Dial connects to the server. In the browser the address is a WebSocket URL;
// a bare host:port is taken to mean ws://host:port/ws.
func Dial(address string) (net.Conn, error) {
	wsURL := address
	if !strings.HasPrefix(wsURL, "ws://") && !strings.HasPrefix(wsURL, "wss://") {
		wsURL = "ws://" + address + "/ws"
	}

	ctx := context.Background()
	c, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return nil, err
	}
	return NewWebSocketConn(ctx, c), nil
}
