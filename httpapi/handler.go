package httpapi

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-logr/logr"

	authcore "github.com/hablas-app/authcore"
)

// Handler serves the auth endpoints for one [authcore.Engine].
type Handler struct {
	engine *authcore.Engine
	logger logr.Logger
}

// New creates a [Handler]. An unset logger resolves to [logr.Discard].
func New(engine *authcore.Engine, logger logr.Logger) *Handler {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	return &Handler{engine: engine, logger: logger}
}

// Routes mounts the endpoints on a fresh mux:
//
//	POST /api/auth/login
//	POST /api/auth/logout
//	GET  /api/auth/me
//	POST /api/auth/refresh
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", h.Login)
	mux.HandleFunc("/api/auth/logout", h.Logout)
	mux.HandleFunc("/api/auth/me", h.Me)
	mux.HandleFunc("/api/auth/refresh", h.Refresh)
	return mux
}

// ClientIP extracts the caller's address for rate-limit keying:
// X-Forwarded-For first hop, then X-Real-Ip, then the connection's
// remote address, else "unknown".
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
	}
	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func (h *Handler) requestContext(r *http.Request) *http.Request {
	ctx := authcore.WithClientIP(r.Context(), ClientIP(r))
	ctx = authcore.WithUserAgent(ctx, r.UserAgent())
	return r.WithContext(ctx)
}
