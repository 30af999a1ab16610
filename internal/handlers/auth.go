package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/happythoughts/apiserver/internal/services"
	"github.com/happythoughts/apiserver/internal/store"
	"github.com/happythoughts/apiserver/types"
)

const bearerPrefix = "Bearer "

// Authenticator resolves an access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (types.User, error)
}

// AuthHandler provides registration, login and the current-user endpoint.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService) {
	handler := NewAuthHandler(userService)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(RequireAuth(userService)).Get("/me", handler.Me)
}

// RequireAuth rejects requests without a valid access token and puts the
// resolved user on the request context.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return authGate(auth, true)
}

// OptionalAuth lets anonymous requests through. A token that is present but
// unknown is still rejected.
func OptionalAuth(auth Authenticator) func(http.Handler) http.Handler {
	return authGate(auth, false)
}

func authGate(auth Authenticator, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				if required {
					writeFailure(w, http.StatusUnauthorized, "missing access token", "Unauthorized")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				writeServiceError(w, r, err, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// Register creates a user account and returns its access token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, http.StatusInternalServerError, "invalid request body", "Could not create user")
		return
	}

	user, err := h.userService.Register(r.Context(), services.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeFailure(w, http.StatusBadRequest, err.Error(), "Could not create user")
			return
		}
		writeServiceError(w, r, err, "Could not create user")
		return
	}

	writeSuccess(w, http.StatusCreated, newAuthResponse(user), "User created")
}

// Login verifies credentials and returns the user's access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, http.StatusInternalServerError, "invalid request body", "Could not log in")
		return
	}

	user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Could not log in")
		return
	}

	writeSuccess(w, http.StatusOK, newAuthResponse(user), "Logged in")
}

// Me reloads the authenticated user from the store.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := userFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "missing access token", "Unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), current.ID.Hex())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeFailure(w, http.StatusUnauthorized, "unknown user", "Unauthorized")
			return
		}
		writeServiceError(w, r, err, "Could not load user")
		return
	}

	writeSuccess(w, http.StatusOK, user, "Current user")
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
}

func newAuthResponse(user types.User) AuthResponse {
	return AuthResponse{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		AccessToken: user.AccessToken,
	}
}

// bearerToken accepts both "Bearer <token>" and a bare token.
func bearerToken(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.EqualFold(auth, strings.TrimSpace(bearerPrefix)) {
		return "", false
	}
	if len(auth) >= len(bearerPrefix) && strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
		auth = strings.TrimSpace(auth[len(bearerPrefix):])
	}
	return auth, auth != ""
}
