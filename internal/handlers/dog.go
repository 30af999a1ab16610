package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/happythoughts/apiserver/internal/query"
	"github.com/happythoughts/apiserver/internal/services"
	"github.com/happythoughts/apiserver/internal/store"
	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DogHandler serves the dog endpoints.
type DogHandler struct {
	dogService *services.DogService
}

func NewDogHandler(dogService *services.DogService) *DogHandler {
	return &DogHandler{dogService: dogService}
}

// DogRouter registers dog routes. createAuth gates POST /.
func DogRouter(r chi.Router, dogService *services.DogService, createAuth func(http.Handler) http.Handler) {
	handler := NewDogHandler(dogService)

	r.Get("/", handler.ListDogs)
	r.With(createAuth).Post("/", handler.CreateDog)
	r.Get("/name/{name}", handler.GetDogByName)
	r.Route("/{dogID}", func(r chi.Router) {
		r.Get("/", handler.GetDog)
		r.Patch("/", handler.UpdateDog)
		r.Delete("/", handler.DeleteDog)
		r.Post("/like", handler.LikeDog)
	})
}

func (h *DogHandler) ListDogs(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error(), "Invalid pagination")
		return
	}

	filter := query.Build(services.DogFilterFields, r.URL.Query())
	dogs, err := h.dogService.List(r.Context(), filter, offset, limit)
	if err != nil {
		writeServiceError(w, r, err, "Could not fetch dogs")
		return
	}
	if len(dogs) == 0 {
		writeFailure(w, http.StatusNotFound, []types.Dog{}, "No dogs matched the query")
		return
	}

	writeSuccess(w, http.StatusOK, dogs, "Dogs found")
}

func (h *DogHandler) GetDog(w http.ResponseWriter, r *http.Request) {
	dog, err := h.dogService.Get(r.Context(), chi.URLParam(r, "dogID"))
	if err != nil {
		writeServiceError(w, r, err, "Dog not found")
		return
	}

	writeSuccess(w, http.StatusOK, dog, "Dog found")
}

// GetDogByName answers with the bare dog document, outside the envelope.
func (h *DogHandler) GetDogByName(w http.ResponseWriter, r *http.Request) {
	dog, err := h.dogService.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Dog not found")
			return
		}
		writeServiceError(w, r, err, "Could not fetch dog")
		return
	}

	writeJSON(w, http.StatusOK, dog)
}

func (h *DogHandler) CreateDog(w http.ResponseWriter, r *http.Request) {
	var input types.DogInput
	if err := decodeBody(w, r, &input); err != nil {
		writeFailure(w, http.StatusInternalServerError, "invalid request body", "Could not create dog")
		return
	}

	var owner *primitive.ObjectID
	if user, ok := userFromContext(r.Context()); ok {
		owner = &user.ID
	}

	dog, err := h.dogService.Create(r.Context(), input, owner)
	if err != nil {
		writeServiceError(w, r, err, "Could not create dog")
		return
	}

	writeSuccess(w, http.StatusCreated, dog, "Dog created")
}

func (h *DogHandler) UpdateDog(w http.ResponseWriter, r *http.Request) {
	var patch types.DogPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeFailure(w, http.StatusInternalServerError, "invalid request body", "Could not update dog")
		return
	}

	dog, err := h.dogService.Update(r.Context(), chi.URLParam(r, "dogID"), patch)
	if err != nil {
		writeServiceError(w, r, err, "Could not update dog")
		return
	}

	writeSuccess(w, http.StatusOK, dog, "Dog updated")
}

func (h *DogHandler) DeleteDog(w http.ResponseWriter, r *http.Request) {
	dog, err := h.dogService.Delete(r.Context(), chi.URLParam(r, "dogID"))
	if err != nil {
		writeServiceError(w, r, err, "Could not delete dog")
		return
	}

	writeSuccess(w, http.StatusOK, dog, "Dog deleted")
}

func (h *DogHandler) LikeDog(w http.ResponseWriter, r *http.Request) {
	dog, err := h.dogService.Like(r.Context(), chi.URLParam(r, "dogID"))
	if err != nil {
		writeServiceError(w, r, err, "Could not like dog")
		return
	}

	writeSuccess(w, http.StatusOK, dog, "Dog liked")
}
