package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/security"
	"agrirent-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	user, token, err := h.authSvc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Fullname: req.Fullname,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message":    "User registered successfully! Please select a role using the provided token.",
		"temp_token": token,
		"username":   user.Username,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	result, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	if result.RoleNeeded {
		// 403 with a set-role token, mirroring the role selection flow.
		respondJSON(w, http.StatusForbidden, map[string]any{
			"message":     "Please select a role before logging in.",
			"role_needed": true,
			"username":    result.Username,
			"temp_token":  result.Token,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token":   result.Token,
		"role":    result.Role,
		"message": "Logged in successfully",
	})
}

type setRoleRequest struct {
	Role string `json:"role"`
}

func (h *AuthHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	user, err := UserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	// Either a dedicated set-role token or an access token belonging to a
	// user whose role is still unset.
	if claims.Purpose != security.PurposeSetRole && user.Role != domain.RoleUnset {
		respondError(w, fmt.Errorf("role has already been set and cannot be changed: %w", domain.ErrInvalidState))
		return
	}

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondError(w, err)
		return
	}

	username := mux.Vars(r)["username"]
	token, err := h.authSvc.SetRole(r.Context(), user.ID, username, role)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Role updated to %s successfully! You are now logged in.", role),
		"token":   token,
		"role":    role,
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	profile, err := h.authSvc.Profile(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
