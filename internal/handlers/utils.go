package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/happythoughts/apiserver/internal/services"
	"github.com/happythoughts/apiserver/internal/store"
	"github.com/happythoughts/apiserver/types"
	"github.com/rs/zerolog/log"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
	maxBodyBytes = 1 << 20
)

type contextKey string

const contextUserKey contextKey = "user"

// Envelope is the uniform response shape.
type Envelope struct {
	Success  bool   `json:"success"`
	Response any    `json:"response"`
	Message  string `json:"message"`
}

// ErrorResponse is the bare error payload used outside the envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func withUser(ctx context.Context, user types.User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func userFromContext(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(contextUserKey).(types.User)
	return user, ok
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, status int, response any, message string) {
	writeJSON(w, status, Envelope{Success: true, Response: response, Message: message})
}

func writeFailure(w http.ResponseWriter, status int, response any, message string) {
	writeJSON(w, status, Envelope{Success: false, Response: response, Message: message})
}

// writeServiceError maps err onto a status code and writes a failure
// envelope. Validation failures are reported as 500 like any other failure
// to write.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := http.StatusInternalServerError
	var response any = "internal server error"

	var verr *services.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		response = "not found"
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		response = err.Error()
	case errors.As(err, &verr):
		response = verr
	case errors.Is(err, store.ErrInvalidID):
		response = err.Error()
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg(message)
	}
	writeFailure(w, status, response, message)
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(into)
}

func parsePagination(r *http.Request) (limit, offset int, err error) {
	page := defaultPage
	limit = defaultLimit

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, errors.New("invalid page")
		}
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, errors.New("invalid limit")
		}
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return limit, (page - 1) * limit, nil
}
