package services

import (
	"context"
	"strings"

	"github.com/happythoughts/apiserver/internal/query"
	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const thoughtEntity = "thought"

// ThoughtFilterFields lists the query parameters a thought list accepts.
var ThoughtFilterFields = []query.Field{
	{Param: "message", Key: "message", Kind: query.String},
	{Param: "hearts", Key: "hearts", Kind: query.Int},
	{Param: "category", Key: "category", Kind: query.String},
	{Param: "date", Key: "createdAt", Kind: query.Date},
}

// ThoughtRepository defines persistence operations for thoughts.
type ThoughtRepository interface {
	List(ctx context.Context, filter query.Filter, offset, limit int) ([]types.Thought, error)
	Get(ctx context.Context, id string) (types.Thought, error)
	Create(ctx context.Context, thought types.Thought) (types.Thought, error)
	Update(ctx context.Context, id string, patch types.ThoughtPatch) (types.Thought, error)
	Like(ctx context.Context, id string) (types.Thought, error)
	Delete(ctx context.Context, id string) (types.Thought, error)
}

// ThoughtService encapsulates thought use-cases.
type ThoughtService struct {
	repo     ThoughtRepository
	validate *Validator
	events   *Events
}

func NewThoughtService(repo ThoughtRepository, validate *Validator, events *Events) *ThoughtService {
	return &ThoughtService{repo: repo, validate: validate, events: events}
}

func (s *ThoughtService) List(ctx context.Context, filter query.Filter, offset, limit int) ([]types.Thought, error) {
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *ThoughtService) Get(ctx context.Context, id string) (types.Thought, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new thought with zero hearts. author may be nil.
func (s *ThoughtService) Create(ctx context.Context, input types.ThoughtInput, author *primitive.ObjectID) (types.Thought, error) {
	thought := types.Thought{
		Message:  strings.TrimSpace(input.Message),
		Category: strings.ToLower(strings.TrimSpace(input.Category)),
		User:     author,
	}
	if thought.Category == "" {
		thought.Category = types.CategoryHappy
	}
	if err := s.validate.Struct(thought); err != nil {
		return types.Thought{}, err
	}

	created, err := s.repo.Create(ctx, thought)
	if err != nil {
		return types.Thought{}, err
	}
	s.events.emit(ctx, types.EventCreated, thoughtEntity, created.ID.Hex(), created)
	return created, nil
}

func (s *ThoughtService) Update(ctx context.Context, id string, patch types.ThoughtPatch) (types.Thought, error) {
	if patch.Message != nil {
		trimmed := strings.TrimSpace(*patch.Message)
		patch.Message = &trimmed
	}
	if patch.Category != nil {
		normalized := strings.ToLower(strings.TrimSpace(*patch.Category))
		patch.Category = &normalized
	}
	if err := s.validate.Struct(patch); err != nil {
		return types.Thought{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return types.Thought{}, err
	}
	if !patch.Empty() {
		s.events.emit(ctx, types.EventUpdated, thoughtEntity, updated.ID.Hex(), updated)
	}
	return updated, nil
}

func (s *ThoughtService) Like(ctx context.Context, id string) (types.Thought, error) {
	liked, err := s.repo.Like(ctx, id)
	if err != nil {
		return types.Thought{}, err
	}
	s.events.emit(ctx, types.EventLiked, thoughtEntity, liked.ID.Hex(), liked)
	return liked, nil
}

func (s *ThoughtService) Delete(ctx context.Context, id string) (types.Thought, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return types.Thought{}, err
	}
	s.events.emit(ctx, types.EventDeleted, thoughtEntity, deleted.ID.Hex(), deleted)
	return deleted, nil
}
