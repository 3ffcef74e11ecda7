package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsAreRegistered(t *testing.T) {
	want := []string{"browse", "search", "read", "call", "discover", "info"}
	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		assert.True(t, registered[name], "%s command should be added to root command", name)
	}
}

func TestPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"config", "endpoint", "username", "password", "cert", "key", "verbose"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Equal(t, "e", flags.Lookup("endpoint").Shorthand)
}

func TestBrowseCommandStructure(t *testing.T) {
	assert.Equal(t, "browse [node]", browseCmd.Use)
	assert.NotEmpty(t, browseCmd.Short)
	assert.NotNil(t, browseCmd.RunE)

	depth := browseCmd.Flags().Lookup("depth")
	require.NotNil(t, depth)
	assert.Equal(t, "3", depth.DefValue)
	assert.NotNil(t, browseCmd.Flags().Lookup("tree"))
	assert.NotNil(t, browseCmd.Flags().Lookup("values"))
}

func TestSearchCommandStructure(t *testing.T) {
	assert.NotNil(t, searchCmd.RunE)
	assert.NotNil(t, searchCmd.Flags().Lookup("class"))
}

func TestReadCommandStructure(t *testing.T) {
	assert.NotNil(t, readCmd.RunE)
	assert.NotNil(t, readCmd.Flags().Lookup("all-attributes"))
	assert.NotNil(t, readCmd.Flags().Lookup("value"))
	assert.NotNil(t, readCmd.Flags().Lookup("search"))
}

func TestCallCommandStructure(t *testing.T) {
	assert.NotNil(t, callCmd.RunE)
	args := callCmd.Flags().Lookup("args")
	require.NotNil(t, args)
	assert.Equal(t, "a", args.Shorthand)
}

func TestFlagOverridesApplyToConfig(t *testing.T) {
	oldEnd, oldUser := flagEnd, flagUser
	defer func() { flagEnd, flagUser = oldEnd, oldUser }()

	flagEnd = "opc.tcp://override:4840"
	flagUser = "operator"

	cfg, logger, err := loadConfig()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, "opc.tcp://override:4840", cfg.Endpoint)
	assert.Equal(t, "operator", cfg.Auth.Username)
}
