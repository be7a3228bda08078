package handlers

import (
	"mime"
	"net/http"
	"time"

	"github.com/hongminglow/finance-be/internal/auth"
	"github.com/hongminglow/finance-be/internal/http/respond"
	"github.com/hongminglow/finance-be/internal/models/dto"
	"github.com/hongminglow/finance-be/internal/validate"
)

// AuthHandler owns the login and current-user endpoints.
type AuthHandler struct {
	authn *auth.Authenticator
	v     *validate.Validator
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authn *auth.Authenticator, v *validate.Validator) *AuthHandler {
	return &AuthHandler{authn: authn, v: v}
}

// Register attaches auth routes.
func (h *AuthHandler) Register(rt *Router) {
	rt.Public("POST /auth/login", h.handleLogin)
	rt.Guarded("GET /auth/me", auth.RequireAuthenticated, h.handleMe)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := bindJSON(h.v, r, &req); err != nil {
			return err
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return decodeError(err)
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		if err := h.v.Struct(&req); err != nil {
			return err
		}
	}

	token, expiresAt, err := h.authn.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
	})
	return nil
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) error {
	p, _ := auth.PrincipalFromContext(r.Context())
	respond.JSON(w, http.StatusOK, p.Employee())
	return nil
}
