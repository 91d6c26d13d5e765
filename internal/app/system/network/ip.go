// Package network extracts request origin details for logging and rate
// limiting.
package network

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the originating client address. The first entry of
// X-Forwarded-For wins, then X-Real-IP, then RemoteAddr without its port.
// IPv6 addresses are returned without brackets.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
