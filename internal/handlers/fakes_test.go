package handlers

import (
	"context"
	"strings"
	"sync"

	"github.com/happythoughts/apiserver/internal/query"
	"github.com/happythoughts/apiserver/internal/store"
	"github.com/happythoughts/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// =============================================================================
// In-memory repositories
// =============================================================================

func checkID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return store.ErrInvalidID
	}
	return nil
}

func matchText(f query.Filter, key, value string) bool {
	for _, c := range f {
		if c.Key == key && c.Kind == query.String && !strings.EqualFold(c.Text, value) {
			return false
		}
	}
	return true
}

type memUserRepo struct {
	mu    sync.Mutex
	users []types.User
}

func (m *memUserRepo) find(match func(types.User) bool) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (types.User, error) {
	return m.find(func(u types.User) bool { return u.ID.Hex() == id })
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	return m.find(func(u types.User) bool { return u.Username == username })
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	return m.find(func(u types.User) bool { return u.Email == email })
}

func (m *memUserRepo) GetByAccessToken(_ context.Context, token string) (types.User, error) {
	return m.find(func(u types.User) bool { return u.AccessToken == token })
}

func (m *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, user)
	return user, nil
}

type memThoughtRepo struct {
	mu       sync.Mutex
	thoughts map[string]types.Thought
}

func newMemThoughtRepo() *memThoughtRepo {
	return &memThoughtRepo{thoughts: map[string]types.Thought{}}
}

func (m *memThoughtRepo) List(_ context.Context, f query.Filter, offset, limit int) ([]types.Thought, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.Thought{}
	for _, t := range m.thoughts {
		if matchText(f, "message", t.Message) && matchText(f, "category", t.Category) {
			out = append(out, t)
		}
	}
	if offset >= len(out) {
		return []types.Thought{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memThoughtRepo) Get(_ context.Context, id string) (types.Thought, error) {
	if err := checkID(id); err != nil {
		return types.Thought{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.thoughts[id]
	if !ok {
		return types.Thought{}, store.ErrNotFound
	}
	return t, nil
}

func (m *memThoughtRepo) Create(_ context.Context, thought types.Thought) (types.Thought, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	thought.ID = primitive.NewObjectID()
	m.thoughts[thought.ID.Hex()] = thought
	return thought, nil
}

func (m *memThoughtRepo) Update(_ context.Context, id string, patch types.ThoughtPatch) (types.Thought, error) {
	if err := checkID(id); err != nil {
		return types.Thought{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.thoughts[id]
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
	m.thoughts[id] = t
	return t, nil
}

func (m *memThoughtRepo) Like(_ context.Context, id string) (types.Thought, error) {
	if err := checkID(id); err != nil {
		return types.Thought{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.thoughts[id]
	if !ok {
		return types.Thought{}, store.ErrNotFound
	}
	t.Hearts++
	m.thoughts[id] = t
	return t, nil
}

func (m *memThoughtRepo) Delete(_ context.Context, id string) (types.Thought, error) {
	if err := checkID(id); err != nil {
		return types.Thought{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.thoughts[id]
	if !ok {
		return types.Thought{}, store.ErrNotFound
	}
	delete(m.thoughts, id)
	return t, nil
}

type memDogRepo struct {
	mu   sync.Mutex
	dogs map[string]types.Dog
}

func newMemDogRepo() *memDogRepo {
	return &memDogRepo{dogs: map[string]types.Dog{}}
}

func (m *memDogRepo) List(_ context.Context, f query.Filter, _, _ int) ([]types.Dog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.Dog{}
	for _, d := range m.dogs {
		if matchText(f, "breed", d.Breed) && matchText(f, "size", d.Size) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDogRepo) Get(_ context.Context, id string) (types.Dog, error) {
	if err := checkID(id); err != nil {
		return types.Dog{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dogs[id]
	if !ok {
		return types.Dog{}, store.ErrNotFound
	}
	return d, nil
}

func (m *memDogRepo) GetByName(_ context.Context, name string) (types.Dog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.dogs {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return types.Dog{}, store.ErrNotFound
}

func (m *memDogRepo) Create(_ context.Context, dog types.Dog) (types.Dog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dog.ID = primitive.NewObjectID()
	m.dogs[dog.ID.Hex()] = dog
	return dog, nil
}

func (m *memDogRepo) Update(_ context.Context, id string, patch types.DogPatch) (types.Dog, error) {
	if err := checkID(id); err != nil {
		return types.Dog{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dogs[id]
	if !ok {
		return types.Dog{}, store.ErrNotFound
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Age != nil {
		d.Age = *patch.Age
	}
	if patch.Vaccinated != nil {
		d.Vaccinated = *patch.Vaccinated
	}
	m.dogs[id] = d
	return d, nil
}

func (m *memDogRepo) Like(_ context.Context, id string) (types.Dog, error) {
	if err := checkID(id); err != nil {
		return types.Dog{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dogs[id]
	if !ok {
		return types.Dog{}, store.ErrNotFound
	}
	d.Likes++
	m.dogs[id] = d
	return d, nil
}

func (m *memDogRepo) Delete(_ context.Context, id string) (types.Dog, error) {
	if err := checkID(id); err != nil {
		return types.Dog{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dogs[id]
	if !ok {
		return types.Dog{}, store.ErrNotFound
	}
	delete(m.dogs, id)
	return d, nil
}
