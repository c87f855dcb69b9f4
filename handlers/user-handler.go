package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/karanagg166/TaskFlow/models"
	"github.com/karanagg166/TaskFlow/services"
)

type UserHandler struct {
	UserService  *services.UserService
	CookieExpire time.Duration
}

func NewUserHandler(userService *services.UserService, cookieExpire time.Duration) *UserHandler {
	return &UserHandler{UserService: userService, CookieExpire: cookieExpire}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sendToken writes the session cookie and the token-bearing JSON body.
func (h *UserHandler) sendToken(w http.ResponseWriter, status int, user models.User, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.CookieExpire),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	user, token, err := h.UserService.Register(r.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			writeError(w, http.StatusConflict, "User already exists with this email or username.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	h.sendToken(w, http.StatusCreated, user, token)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	user, token, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.sendToken(w, http.StatusOK, user, token)
}

func (h *UserHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// ProtectedResource is the smoke-test endpoint behind the bearer middleware.
func (h *UserHandler) ProtectedResource(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "You have access to this protected resource.",
	})
}
