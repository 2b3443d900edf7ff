package httpapi

import (
	"net/http"
)

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Logout handles POST /api/auth/logout. The cookie token's ID is
// blacklisted until the token's own expiry; the cookie is cleared even
// when no valid token was attached, so logout is always safe to call.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		preflight(w, "POST, OPTIONS")
		return
	case http.MethodPost:
	default:
		methodNotAllowed(w, "POST, OPTIONS")
		return
	}

	r = h.requestContext(r)

	if tokenString, ok := h.engine.Cookies().FromRequest(r); ok {
		if err := h.engine.Logout(r.Context(), tokenString); err != nil {
			h.logger.Error(err, "logout failed internally")
			writeInternalError(w)
			return
		}
	}

	http.SetCookie(w, h.engine.Cookies().Clear())
	writeJSON(w, http.StatusOK, logoutResponse{Success: true, Message: "Logged out successfully"})
}
