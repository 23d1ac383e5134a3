package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime or UI logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DefaultListenAddr", config.DefaultListenAddr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestDateRules(t *testing.T) {
	assert.Equal(t, 12, config.MaxMonth)
	assert.Equal(t, 12, config.MonthsPerYear)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Age/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	// A vCard is a few KB; the cap only has to stop runaway bodies.
	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.LessOrEqual(t, int64(config.MaxHTTPResponseSize), int64(16*1024*1024))
}

// -----------------------------------------------------------------------------
// Server Configuration Tests
// -----------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadServerConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultServerConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfig_File(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
rateLimit: 2.5
readTimeout: 3s
idleTimeout: 2m
`)

	cfg, err := config.LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.InDelta(t, 2.5, cfg.RateLimit, 1e-9)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 2*time.Minute, cfg.IdleTimeout)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, config.DefaultRateBurst, cfg.RateBurst)
	assert.Equal(t, config.ServerWriteTimeout, cfg.WriteTimeout)
}

func TestLoadServerConfig_ExplicitZeroOverrides(t *testing.T) {
	cfg, err := config.LoadServerConfig(writeConfig(t, "rateLimit: 0\nreadTimeout: 0s\n"))
	require.NoError(t, err)

	assert.Zero(t, cfg.RateLimit, "an explicit zero replaces the default")
	assert.Zero(t, cfg.ReadTimeout)
	assert.Equal(t, config.DefaultRateBurst, cfg.RateBurst)
}

func TestLoadServerConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"Missing file", filepath.Join(t.TempDir(), "absent.yaml"), config.ErrConfigRead},
		{"Malformed YAML", writeConfig(t, "listen: [oops"), config.ErrConfigParse},
		{"Negative rate", writeConfig(t, "rateLimit: -1"), config.ErrConfigParse},
		{"Empty listen", writeConfig(t, `listen: ""`), config.ErrListenRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadServerConfig(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestServerConfig_RateLimitDisabled(t *testing.T) {
	cfg := config.DefaultServerConfig()
	cfg.RateLimit = 0
	assert.NoError(t, cfg.Validate(), "zero disables the limiter")
}
