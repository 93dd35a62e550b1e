// Package transport defines the server lifecycle contract used by app.
package transport

import (
	"context"
	"net"
	"strconv"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// Server is something app.Application can run and stop.
type Server interface {
	// Run blocks until the server stops.
	Run() error
	Shutdown(context.Context) error
}

// ValidateAddress reports whether addr is host:port with a usable port.
// The host may be empty, an IP or a hostname.
func ValidateAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return false
	}
	if host != "" && !isValidHost(host) {
		return false
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return p >= MinPort && p <= MaxPort
}

func isValidHost(host string) bool {
	if net.ParseIP(host) != nil {
		return true
	}
	if len(host) > 253 {
		return false
	}
	for i, r := range host {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-'
		if !ok || ((i == 0 || i == len(host)-1) && r == '-') {
			return false
		}
	}
	return true
}
