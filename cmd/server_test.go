package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerCommandMigrations(t *testing.T) {
	flag := serverCmd.Flags().Lookup("migrate")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)

	assert.Contains(t, serverCmd.Long, "apiserver migrate up")
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"server", "migrate", "seed", "events"} {
		assert.True(t, names[want], want)
	}
}
