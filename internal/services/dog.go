package services

import (
	"context"
	"strings"

	"github.com/happythoughts/apiserver/internal/query"
	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dogEntity = "dog"

// DogFilterFields lists the query parameters a dog list accepts.
var DogFilterFields = []query.Field{
	{Param: "name", Key: "name", Kind: query.String},
	{Param: "breed", Key: "breed", Kind: query.String},
	{Param: "color", Key: "color", Kind: query.String},
	{Param: "size", Key: "size", Kind: query.String},
	{Param: "vaccinated", Key: "vaccinated", Kind: query.Bool},
	{Param: "date", Key: "createdAt", Kind: query.Date},
}

// DogRepository defines persistence operations for dogs.
type DogRepository interface {
	List(ctx context.Context, filter query.Filter, offset, limit int) ([]types.Dog, error)
	Get(ctx context.Context, id string) (types.Dog, error)
	GetByName(ctx context.Context, name string) (types.Dog, error)
	Create(ctx context.Context, dog types.Dog) (types.Dog, error)
	Update(ctx context.Context, id string, patch types.DogPatch) (types.Dog, error)
	Like(ctx context.Context, id string) (types.Dog, error)
	Delete(ctx context.Context, id string) (types.Dog, error)
}

// DogService encapsulates dog use-cases.
type DogService struct {
	repo     DogRepository
	validate *Validator
	events   *Events
}

func NewDogService(repo DogRepository, validate *Validator, events *Events) *DogService {
	return &DogService{repo: repo, validate: validate, events: events}
}

func (s *DogService) List(ctx context.Context, filter query.Filter, offset, limit int) ([]types.Dog, error) {
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *DogService) Get(ctx context.Context, id string) (types.Dog, error) {
	return s.repo.Get(ctx, id)
}

func (s *DogService) GetByName(ctx context.Context, name string) (types.Dog, error) {
	return s.repo.GetByName(ctx, name)
}

// Create stores a new dog with zero likes. owner may be nil.
func (s *DogService) Create(ctx context.Context, input types.DogInput, owner *primitive.ObjectID) (types.Dog, error) {
	dog := types.Dog{
		Name:       strings.TrimSpace(input.Name),
		Breed:      strings.TrimSpace(input.Breed),
		Color:      strings.TrimSpace(input.Color),
		Size:       strings.ToLower(strings.TrimSpace(input.Size)),
		Age:        input.Age,
		Vaccinated: input.Vaccinated,
		Owner:      owner,
	}
	if err := s.validate.Struct(dog); err != nil {
		return types.Dog{}, err
	}

	created, err := s.repo.Create(ctx, dog)
	if err != nil {
		return types.Dog{}, err
	}
	s.events.emit(ctx, types.EventCreated, dogEntity, created.ID.Hex(), created)
	return created, nil
}

func (s *DogService) Update(ctx context.Context, id string, patch types.DogPatch) (types.Dog, error) {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	patch.Name = trim(patch.Name)
	patch.Breed = trim(patch.Breed)
	patch.Color = trim(patch.Color)
	if patch.Size != nil {
		size := strings.ToLower(strings.TrimSpace(*patch.Size))
		patch.Size = &size
	}
	if err := s.validate.Struct(patch); err != nil {
		return types.Dog{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return types.Dog{}, err
	}
	if !patch.Empty() {
		s.events.emit(ctx, types.EventUpdated, dogEntity, updated.ID.Hex(), updated)
	}
	return updated, nil
}

func (s *DogService) Like(ctx context.Context, id string) (types.Dog, error) {
	liked, err := s.repo.Like(ctx, id)
	if err != nil {
		return types.Dog{}, err
	}
	s.events.emit(ctx, types.EventLiked, dogEntity, liked.ID.Hex(), liked)
	return liked, nil
}

func (s *DogService) Delete(ctx context.Context, id string) (types.Dog, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return types.Dog{}, err
	}
	s.events.emit(ctx, types.EventDeleted, dogEntity, deleted.ID.Hex(), deleted)
	return deleted, nil
}
