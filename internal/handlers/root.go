package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Endpoint is one path served by the API and the methods it accepts.
type Endpoint struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Endpoints lists every route registered on routes at request time.
func Endpoints(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		byPath := map[string][]string{}
		err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			route = strings.ReplaceAll(route, "/*/", "/")
			if len(route) > 1 {
				route = strings.TrimSuffix(route, "/")
			}
			byPath[route] = append(byPath[route], method)
			return nil
		})
		if err != nil {
			writeServiceError(w, r, err, "Could not list endpoints")
			return
		}

		endpoints := make([]Endpoint, 0, len(byPath))
		for path, methods := range byPath {
			sort.Strings(methods)
			endpoints = append(endpoints, Endpoint{Path: path, Methods: methods})
		}
		sort.Slice(endpoints, func(i, j int) bool { return endpoints[i].Path < endpoints[j].Path })

		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "Welcome to the Happy Thoughts API",
			"endpoints": endpoints,
		})
	}
}
