package httpapi

import (
	"net/http"

	authcore "github.com/hablas-app/authcore"
	"github.com/hablas-app/authcore/middleware"
)

type meResponse struct {
	Success     bool                 `json:"success"`
	User        authcore.UserSession `json:"user"`
	Permissions authcore.Permission  `json:"permissions"`
}

// Me handles GET /api/auth/me. It reports the session bound to the
// request cookie together with the role's permission set.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		preflight(w, "GET, OPTIONS")
		return
	case http.MethodGet:
	default:
		methodNotAllowed(w, "GET, OPTIONS")
		return
	}

	r = h.requestContext(r)

	result := middleware.CheckAuth(h.engine, r)
	if !result.Authenticated {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		Success:     true,
		User:        result.User,
		Permissions: result.Role.Permissions(),
	})
}
