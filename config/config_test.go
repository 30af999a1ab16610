package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "path", url: "mongodb://localhost:27017/dogs", want: "dogs"},
		{name: "options", url: "mongodb://localhost/thoughts?retryWrites=true", want: "thoughts"},
		{name: "seed list", url: "mongodb://a:27017,b:27017/happy?replicaSet=rs0", want: "happy"},
		{name: "srv", url: "mongodb+srv://user:pw@cluster.example.net/prod", want: "prod"},
		{name: "no path", url: "mongodb://localhost:27017", want: defaultDBName},
		{name: "empty path", url: "mongodb://localhost:27017/?w=1", want: defaultDBName},
		{name: "garbage", url: "not a url", want: defaultDBName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, databaseFromURL(tt.url))
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017/project-mongo")
	t.Setenv("PORT", "9000")
	t.Setenv("RESET_DB", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.True(t, cfg.ResetDB)
	assert.False(t, cfg.RequireAuthForCreate)
	assert.Equal(t, "project-mongo", cfg.Database.DBName)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "happythoughts.events", cfg.Events.Channel)
	assert.Empty(t, cfg.Events.Backend)
	assert.Equal(t, "seed/", cfg.Storage.SeedPrefix)
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("RESET_DB", "maybe")
	t.Setenv("MONGO_DB", "override")

	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, "override", cfg.Database.DBName)
}
