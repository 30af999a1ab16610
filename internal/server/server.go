package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/happythoughts/apiserver/config"
	"github.com/happythoughts/apiserver/internal/db"
	"github.com/happythoughts/apiserver/internal/handlers"
	"github.com/happythoughts/apiserver/internal/logging"
	"github.com/happythoughts/apiserver/internal/mq"
	"github.com/happythoughts/apiserver/internal/seed"
	"github.com/happythoughts/apiserver/internal/services"
	"github.com/happythoughts/apiserver/internal/storage"
	"github.com/happythoughts/apiserver/internal/store"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server wraps the HTTP server and the clients it owns.
type Server struct {
	httpServer *http.Server
	client     *mongo.Client
	queue      *mq.MQ
	storage    *storage.Storage
}

// New connects to MongoDB and the optional broker and object store, reseeds
// the database when configured to, and builds the router.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	client, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	srv := &Server{client: client}

	srv.queue, err = mq.Connect(ctx, cfg.Events)
	if err != nil {
		srv.close(ctx)
		return nil, fmt.Errorf("connect mq: %w", err)
	}
	srv.storage, err = storage.Connect(ctx, cfg.Storage)
	if err != nil {
		srv.close(ctx)
		return nil, fmt.Errorf("connect storage: %w", err)
	}

	database := db.Database(client, cfg)
	userRepo := store.NewUserRepository(database)
	thoughtRepo := store.NewThoughtRepository(database)
	dogRepo := store.NewDogRepository(database)

	validate := services.NewValidator()
	var events *services.Events
	if srv.queue != nil {
		events = services.NewEvents(srv.queue, cfg.Events.Channel)
	}

	if cfg.ResetDB {
		var source seed.Source = seed.EmbeddedSource{}
		if srv.storage != nil {
			source = seed.NewObjectSource(srv.storage, cfg.Storage.SeedPrefix)
		}
		if err := seed.NewSeeder(source, dogRepo, thoughtRepo, validate).Reset(ctx); err != nil {
			srv.close(ctx)
			return nil, fmt.Errorf("reset database: %w", err)
		}
	}

	userService := services.NewUserService(userRepo, validate, events)
	thoughtService := services.NewThoughtService(thoughtRepo, validate, events)
	dogService := services.NewDogService(dogRepo, validate, events)

	createAuth := handlers.OptionalAuth(userService)
	if cfg.RequireAuthForCreate {
		createAuth = handlers.RequireAuth(userService)
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		logging.RequestLogger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}),
	)
	router.Get("/", handlers.Endpoints(router))
	router.Get("/healthz", handlers.Healthz)
	router.Route("/thoughts", func(r chi.Router) {
		handlers.ThoughtRouter(r, thoughtService, createAuth)
	})
	router.Route("/dogs", func(r chi.Router) {
		handlers.DogRouter(r, dogService, createAuth)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	srv.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv, nil
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("starting server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the database, broker
// and storage clients.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.close(ctx)
	return err
}

func (s *Server) close(ctx context.Context) {
	if s.queue != nil {
		if err := s.queue.Close(); err != nil {
			log.Warn().Err(err).Msg("close mq")
		}
	}
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			log.Warn().Err(err).Msg("close storage")
		}
	}
	if s.client != nil {
		if err := s.client.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("disconnect mongo")
		}
	}
}
