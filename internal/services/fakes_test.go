package services

import (
	"context"
	"sync"

	"github.com/happythoughts/apiserver/internal/query"
	"github.com/happythoughts/apiserver/internal/store"
	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type fakeUserRepo struct {
	mu         sync.Mutex
	users      []types.User
	createErrs []error
	creates    int
}

func (f *fakeUserRepo) find(match func(types.User) bool) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (types.User, error) {
	return f.find(func(u types.User) bool { return u.ID.Hex() == id })
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	return f.find(func(u types.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	return f.find(func(u types.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByAccessToken(_ context.Context, token string) (types.User, error) {
	return f.find(func(u types.User) bool { return u.AccessToken == token })
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return types.User{}, err
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return user, nil
}

type fakeThoughtRepo struct {
	mu       sync.Mutex
	thoughts map[string]types.Thought
}

func newFakeThoughtRepo() *fakeThoughtRepo {
	return &fakeThoughtRepo{thoughts: make(map[string]types.Thought)}
}

func (f *fakeThoughtRepo) List(_ context.Context, _ query.Filter, _, _ int) ([]types.Thought, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []types.Thought{}
	for _, t := range f.thoughts {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeThoughtRepo) Get(_ context.Context, id string) (types.Thought, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.thoughts[id]
	if !ok {
		return types.Thought{}, store.ErrNotFound
	}
	return t, nil
}

func (f *fakeThoughtRepo) Create(_ context.Context, thought types.Thought) (types.Thought, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	thought.ID = primitive.NewObjectID()
	f.thoughts[thought.ID.Hex()] = thought
	return thought, nil
}

func (f *fakeThoughtRepo) Update(_ context.Context, id string, patch types.ThoughtPatch) (types.Thought, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.thoughts[id]
	if !ok {
		return types.Thought{}, store.ErrNotFound
	}
	if patch.Message != nil {
		t.Message = *patch.Message
	}
	if patch.Hearts != nil {
		t.Hearts = *patch.Hearts
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	f.thoughts[id] = t
	return t, nil
}

func (f *fakeThoughtRepo) Like(_ context.Context, id string) (types.Thought, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.thoughts[id]
	if !ok {
		return types.Thought{}, store.ErrNotFound
	}
	t.Hearts++
	f.thoughts[id] = t
	return t, nil
}

func (f *fakeThoughtRepo) Delete(_ context.Context, id string) (types.Thought, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.thoughts[id]
	if !ok {
		return types.Thought{}, store.ErrNotFound
	}
	delete(f.thoughts, id)
	return t, nil
}

type publishedEvent struct {
	channel string
	data    []byte
	attrs   map[string]string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.events = append(f.events, publishedEvent{channel: channel, data: data, attrs: attrs})
	return "msg-1", nil
}
