package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/artofest/artofest/pkg/config"
	"github.com/artofest/artofest/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupGlobalConfig(t *testing.T) {
	t.Run("Should inject YAML values into the command context", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "artofest.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 6100\ndataset:\n  featured_count: 3\n"), 0o600))
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--env-file", "", "--log-level", "disabled"}))
		cmd.SetContext(t.Context())

		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := config.FromContext(cmd.Context())
		require.NotNil(t, cfg)
		assert.Equal(t, 6100, cfg.Server.Port)
		assert.Equal(t, 3, cfg.Dataset.FeaturedCount)
	})
	t.Run("Should let CLI flags override the config file", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "artofest.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  host: from-file\n"), 0o600))
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"--config", cfgPath,
			"--env-file", "",
			"--log-level", "disabled",
			"--db-host", "from-flag",
		}))
		cmd.SetContext(t.Context())

		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := config.FromContext(cmd.Context())
		require.NotNil(t, cfg)
		assert.Equal(t, "from-flag", cfg.Database.Host)
		assert.Equal(t, "disabled", cfg.Runtime.LogLevel)
	})
	t.Run("Should use defaults when the config file is missing", func(t *testing.T) {
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"--config", filepath.Join(t.TempDir(), "missing.yaml"),
			"--env-file", "",
			"--log-level", "disabled",
		}))

		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := config.FromContext(cmd.Context())
		require.NotNil(t, cfg)
		assert.Equal(t, 5000, cfg.Server.Port)
		assert.Equal(t, "data/festivals.json", cfg.Dataset.Path)
	})
	t.Run("Should fail on an invalid config file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "artofest.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 70000\n"), 0o600))
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--env-file", "", "--log-level", "disabled"}))
		cmd.SetContext(t.Context())

		require.Error(t, SetupGlobalConfig(cmd))
	})
}

func TestRootCmd(t *testing.T) {
	t.Run("Should register every subcommand", func(t *testing.T) {
		cmd := RootCmd()
		for _, name := range []string{"serve", "start", "search", "migrate", "seed", "db", "version"} {
			found, _, err := cmd.Find([]string{name})
			require.NoError(t, err, name)
			assert.NotEqual(t, cmd, found, name)
		}
	})
	t.Run("Should print the version", func(t *testing.T) {
		cmd := RootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"version", "--env-file", "", "--log-level", "disabled",
			"--config", filepath.Join(t.TempDir(), "none.yaml")})
		require.NoError(t, cmd.ExecuteContext(t.Context()))
		assert.Contains(t, out.String(), version.Get().String())
	})
}

func TestExtractCLIFlags(t *testing.T) {
	t.Run("Should only include changed flags", func(t *testing.T) {
		cmd := RootCmd()
		serveCmd, _, err := cmd.Find([]string{"serve"})
		require.NoError(t, err)
		require.NoError(t, serveCmd.ParseFlags([]string{"--port", "8080", "--migrate", "--db-name", "fest"}))
		flags := make(map[string]any)
		extractCLIFlags(serveCmd, flags)
		assert.Equal(t, map[string]any{"port": 8080, "migrate": true, "db-name": "fest"}, flags)
	})
}

func TestIsPathWithinDirectory(t *testing.T) {
	t.Run("Should accept nested paths", func(t *testing.T) {
		assert.True(t, isPathWithinDirectory("/srv/app/.env", "/srv/app"))
	})
	t.Run("Should reject sibling prefixes", func(t *testing.T) {
		assert.False(t, isPathWithinDirectory("/srv/application/.env", "/srv/app"))
	})
	t.Run("Should reject parent traversal", func(t *testing.T) {
		assert.False(t, isPathWithinDirectory("/srv/app/../secrets/.env", "/srv/app"))
	})
}
