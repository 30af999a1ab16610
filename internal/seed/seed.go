// Package seed wipes and repopulates the resource collections from JSON
// datasets, either embedded in the binary or stored in a bucket.
package seed

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"

	"github.com/happythoughts/apiserver/internal/services"
	"github.com/happythoughts/apiserver/internal/storage"
	"github.com/happythoughts/apiserver/types"
	"github.com/rs/zerolog/log"
)

// Dataset file names, shared by the embedded data and the bucket layout.
const (
	DogsFile     = "dogs.json"
	ThoughtsFile = "thoughts.json"
)

//go:embed data/*.json
var dataFS embed.FS

// Source opens a named dataset.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// EmbeddedSource serves the datasets compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return dataFS.Open("data/" + name)
}

// ObjectSource serves datasets stored under prefix in object storage.
type ObjectSource struct {
	storage *storage.Storage
	prefix  string
}

func NewObjectSource(st *storage.Storage, prefix string) ObjectSource {
	return ObjectSource{storage: st, prefix: prefix}
}

func (s ObjectSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.storage.Get(ctx, s.prefix+name)
}

// DogResetter replaces every dog in the store.
type DogResetter interface {
	Reset(ctx context.Context, dogs []types.Dog) error
}

// ThoughtResetter replaces every thought in the store.
type ThoughtResetter interface {
	Reset(ctx context.Context, thoughts []types.Thought) error
}

// Seeder resets the dog and thought collections.
type Seeder struct {
	source   Source
	dogs     DogResetter
	thoughts ThoughtResetter
	validate *services.Validator
}

func NewSeeder(source Source, dogs DogResetter, thoughts ThoughtResetter, validate *services.Validator) *Seeder {
	return &Seeder{source: source, dogs: dogs, thoughts: thoughts, validate: validate}
}

// Reset loads and validates both datasets before touching the store, so a
// broken dataset leaves the collections as they were.
func (s *Seeder) Reset(ctx context.Context) error {
	var dogs []types.Dog
	if err := s.load(ctx, DogsFile, &dogs); err != nil {
		return err
	}
	for i, dog := range dogs {
		if err := s.validate.Struct(dog); err != nil {
			return fmt.Errorf("%s[%d]: %w", DogsFile, i, err)
		}
	}

	var thoughts []types.Thought
	if err := s.load(ctx, ThoughtsFile, &thoughts); err != nil {
		return err
	}
	for i, thought := range thoughts {
		if err := s.validate.Struct(thought); err != nil {
			return fmt.Errorf("%s[%d]: %w", ThoughtsFile, i, err)
		}
	}

	if err := s.dogs.Reset(ctx, dogs); err != nil {
		return fmt.Errorf("reset dogs: %w", err)
	}
	if err := s.thoughts.Reset(ctx, thoughts); err != nil {
		return fmt.Errorf("reset thoughts: %w", err)
	}

	log.Info().Int("dogs", len(dogs)).Int("thoughts", len(thoughts)).Msg("database reset and reseeded")
	return nil
}

func (s *Seeder) load(ctx context.Context, name string, into any) error {
	rc, err := s.source.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	if err := json.NewDecoder(rc).Decode(into); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Upload copies the embedded datasets into object storage under prefix.
func Upload(ctx context.Context, st *storage.Storage, prefix string) error {
	if err := st.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	for _, name := range []string{DogsFile, ThoughtsFile} {
		data, err := fs.ReadFile(dataFS, "data/"+name)
		if err != nil {
			return err
		}
		key := prefix + name
		if err := st.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		log.Info().Str("bucket", st.Bucket()).Str("key", key).Int("bytes", len(data)).Msg("uploaded seed dataset")
	}
	return nil
}
