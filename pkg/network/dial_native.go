//go:build !js || !wasm

package network

import (
	"net"
	"time"
)

const dialTimeout = 5 * time.Second

// Dial connects to a TCP address.
func Dial(address string) (net.Conn, error) {
	return net.DialTimeout("tcp", address, dialTimeout)
}
