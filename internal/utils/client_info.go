package utils

import (
	"net"
	"net/http"
	"strings"

	"policytrack/internal/domain/entity"
)

// ClientInfoFromRequest extracts the client IP and user agent recorded on
// every vote. Behind a proxy the first X-Forwarded-For entry wins, then
// X-Real-IP, then the connection's remote address.
func ClientInfoFromRequest(r *http.Request) entity.ClientInfo {
	ip := "unknown"
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
	} else if real := r.Header.Get("X-Real-IP"); real != "" {
		ip = real
	} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	} else if r.RemoteAddr != "" {
		ip = r.RemoteAddr
	}

	ua := r.Header.Get("User-Agent")
	if ua == "" {
		ua = "unknown"
	}

	return entity.ClientInfo{IP: ip, UserAgent: ua}
}
