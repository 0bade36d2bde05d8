// Package address resolves the "host[:port][/path]" strings accepted by the
// client into a dialable target.
package address

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

const DefaultPort = 80

// Target is a parsed address. The zero value is not valid; use [Parse].
type Target struct {
	Host string
	Port int
	Path string
}

// HostPort returns the address to dial.
func (t Target) HostPort() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (t Target) String() string {
	return t.HostPort() + t.Path
}

// Parse splits s into host, port and path. A missing port becomes 80 and a
// missing path becomes "/". An optional http:// prefix is ignored. The host
// is not resolved here, a bad one surfaces when dialing.
func Parse(s string) (Target, error) {
	rest := strings.TrimSpace(s)
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}

	authority, path := rest, "/"
	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		authority, path = rest[:i], rest[i:]
		if path[0] == '?' {
			path = "/" + path
		}
	}

	host, port, err := splitHostPort(authority)
	if err != nil {
		return Target{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if host == "" {
		return Target{}, fmt.Errorf("parse %q: %w", s, ErrMissingHost)
	}

	return Target{Host: host, Port: port, Path: path}, nil
}

func splitHostPort(authority string) (string, int, error) {
	// bracketed IPv6 literal, optionally followed by :port
	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return "", 0, ErrMissingHost
		}
		host, tail := authority[1:end], authority[end+1:]
		if tail == "" {
			return host, DefaultPort, nil
		}
		if tail[0] != ':' {
			return "", 0, ErrInvalidPort
		}
		port, err := parsePort(tail[1:])
		return host, port, err
	}

	i := strings.LastIndexByte(authority, ':')
	if i < 0 {
		return authority, DefaultPort, nil
	}
	port, err := parsePort(authority[i+1:])
	return authority[:i], port, err
}

func parsePort(s string) (int, error) {
	if s == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < 0 || port > 65535 {
		return 0, ErrInvalidPort
	}
	return port, nil
}
