package httpapi

import (
	"errors"
	"net/http"

	authcore "github.com/hablas-app/authcore"
)

type refreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Refresh handles POST /api/auth/refresh. A token inside its refresh
// window is reissued and set on a fresh cookie; a token outside it is
// reported as still valid without reissue.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
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

	tokenString, ok := h.engine.Cookies().FromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	refreshed, rememberMe, err := h.engine.Refresh(r.Context(), tokenString)
	switch {
	case err == nil:
		http.SetCookie(w, h.engine.Cookies().Encode(refreshed, rememberMe))
		writeJSON(w, http.StatusOK, refreshResponse{Success: true, Message: "Token refreshed", Token: refreshed})
	case errors.Is(err, authcore.ErrNoRefreshNeeded):
		writeJSON(w, http.StatusOK, refreshResponse{Success: true, Message: "Token still valid", Token: tokenString})
	case errors.Is(err, authcore.ErrStoreUnavailable):
		h.logger.Error(err, "refresh failed internally")
		writeInternalError(w)
	default:
		writeError(w, http.StatusUnauthorized, "Invalid token")
	}
}
