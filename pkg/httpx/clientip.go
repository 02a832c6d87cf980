package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync/atomic"
)

var trustProxyHeaders atomic.Bool

func init() { trustProxyHeaders.Store(true) }

// SetTrustProxyHeaders controls whether X-Forwarded-For and X-Real-IP are
// honoured when resolving the client address. Enable only behind a proxy
// that overwrites them.
func SetTrustProxyHeaders(trust bool) {
	trustProxyHeaders.Store(trust)
}

// GetRemoteIP returns the client IP. With trusted proxy headers the first
// X-Forwarded-For hop wins, then X-Real-IP, then the socket address.
func GetRemoteIP(r *http.Request) string {
	if trustProxyHeaders.Load() {
		if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
		if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
			return real
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
