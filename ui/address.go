package ui

import (
	"net"
	"strings"
	"unicode"
)

const (
	defaultHost   = "localhost"
	defaultPort   = "7373"
	defaultName   = "player"
	maxNameLength = 16
)

// NormalizeAddress fills in a missing host or port.
func NormalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	addr = strings.TrimPrefix(addr, "ws://")
	if addr == "" {
		return net.JoinHostPort(defaultHost, defaultPort)
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return net.JoinHostPort(addr, defaultPort)
	}
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort(host, port)
}

// NormalizeName drops control characters, trims spaces and caps the length.
func NormalizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName
	}
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}
	return name
}
