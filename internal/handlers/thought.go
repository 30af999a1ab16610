package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/happythoughts/apiserver/internal/query"
	"github.com/happythoughts/apiserver/internal/services"
	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ThoughtHandler serves the thought endpoints.
type ThoughtHandler struct {
	thoughtService *services.ThoughtService
}

func NewThoughtHandler(thoughtService *services.ThoughtService) *ThoughtHandler {
	return &ThoughtHandler{thoughtService: thoughtService}
}

// ThoughtRouter registers thought routes. createAuth gates POST /.
func ThoughtRouter(r chi.Router, thoughtService *services.ThoughtService, createAuth func(http.Handler) http.Handler) {
	handler := NewThoughtHandler(thoughtService)

	r.Get("/", handler.ListThoughts)
	r.With(createAuth).Post("/", handler.CreateThought)
	r.Route("/{thoughtID}", func(r chi.Router) {
		r.Get("/", handler.GetThought)
		r.Patch("/", handler.UpdateThought)
		r.Delete("/", handler.DeleteThought)
		r.Post("/like", handler.LikeThought)
	})
}

func (h *ThoughtHandler) ListThoughts(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error(), "Invalid pagination")
		return
	}

	filter := query.Build(services.ThoughtFilterFields, r.URL.Query())
	thoughts, err := h.thoughtService.List(r.Context(), filter, offset, limit)
	if err != nil {
		writeServiceError(w, r, err, "Could not fetch thoughts")
		return
	}
	if len(thoughts) == 0 {
		writeFailure(w, http.StatusNotFound, []types.Thought{}, "No thoughts matched the query")
		return
	}

	writeSuccess(w, http.StatusOK, thoughts, "Thoughts found")
}

func (h *ThoughtHandler) GetThought(w http.ResponseWriter, r *http.Request) {
	thought, err := h.thoughtService.Get(r.Context(), chi.URLParam(r, "thoughtID"))
	if err != nil {
		writeServiceError(w, r, err, "Thought not found")
		return
	}

	writeSuccess(w, http.StatusOK, thought, "Thought found")
}

func (h *ThoughtHandler) CreateThought(w http.ResponseWriter, r *http.Request) {
	var input types.ThoughtInput
	if err := decodeBody(w, r, &input); err != nil {
		writeFailure(w, http.StatusInternalServerError, "invalid request body", "Could not create thought")
		return
	}

	var author *primitive.ObjectID
	if user, ok := userFromContext(r.Context()); ok {
		author = &user.ID
	}

	thought, err := h.thoughtService.Create(r.Context(), input, author)
	if err != nil {
		writeServiceError(w, r, err, "Could not create thought")
		return
	}

	writeSuccess(w, http.StatusCreated, thought, "Thought created")
}

func (h *ThoughtHandler) UpdateThought(w http.ResponseWriter, r *http.Request) {
	var patch types.ThoughtPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeFailure(w, http.StatusInternalServerError, "invalid request body", "Could not update thought")
		return
	}

	thought, err := h.thoughtService.Update(r.Context(), chi.URLParam(r, "thoughtID"), patch)
	if err != nil {
		writeServiceError(w, r, err, "Could not update thought")
		return
	}

	writeSuccess(w, http.StatusOK, thought, "Thought updated")
}

func (h *ThoughtHandler) DeleteThought(w http.ResponseWriter, r *http.Request) {
	thought, err := h.thoughtService.Delete(r.Context(), chi.URLParam(r, "thoughtID"))
	if err != nil {
		writeServiceError(w, r, err, "Could not delete thought")
		return
	}

	writeSuccess(w, http.StatusOK, thought, "Thought deleted")
}

func (h *ThoughtHandler) LikeThought(w http.ResponseWriter, r *http.Request) {
	thought, err := h.thoughtService.Like(r.Context(), chi.URLParam(r, "thoughtID"))
	if err != nil {
		writeServiceError(w, r, err, "Could not like thought")
		return
	}

	writeSuccess(w, http.StatusOK, thought, "Thought liked")
}
