package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	authcore "github.com/hablas-app/authcore"
)

type loginBody struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	Success bool                 `json:"success"`
	User    authcore.UserSession `json:"user"`
	Token   string               `json:"token"`
}

// Login handles POST /api/auth/login and its CORS preflight.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
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

	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.V(1).Info("login body rejected", "error", err.Error())
		writeInternalError(w)
		return
	}

	result, err := h.engine.Login(r.Context(), authcore.LoginRequest{
		Email:      body.Email,
		Password:   body.Password,
		RememberMe: body.RememberMe,
	})
	if err != nil {
		h.writeLoginError(w, err)
		return
	}

	http.SetCookie(w, h.engine.Cookies().Encode(result.Token, result.RememberMe))
	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: result.User, Token: result.Token})
}

func (h *Handler) writeLoginError(w http.ResponseWriter, err error) {
	var limited *authcore.RateLimitedError

	switch {
	case errors.As(err, &limited):
		minutes := int64(limited.RetryAfter.Round(time.Minute) / time.Minute)
		if minutes < 1 {
			minutes = 1
		}
		w.Header().Set("Retry-After", strconv.FormatInt(int64(limited.RetryAfter/time.Second)+1, 10))
		writeError(w, http.StatusTooManyRequests,
			fmt.Sprintf("Too many login attempts. Please try again in %d minutes.", minutes))
	case errors.Is(err, authcore.ErrValidation):
		writeError(w, http.StatusBadRequest, "Email and password are required")
	case errors.Is(err, authcore.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		h.logger.Error(err, "login failed internally")
		writeInternalError(w)
	}
}
