package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 20
  write_timeout: 20
  idle_timeout: 180
database:
  uri: "mongodb://localhost:27017"
  dbname: testdb
  max_pool_size: 50
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 20, cfg.Server.ReadTimeout)
				assert.Equal(t, 180, cfg.Server.IdleTimeout)
				assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
				assert.Equal(t, "testdb", cfg.Database.DBName)
				assert.Equal(t, uint64(50), cfg.Database.MaxPoolSize)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  uri: "mongodb://localhost:27017"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)                        // default
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)       // default
				assert.Equal(t, 8080, cfg.Server.Port)            // default
				assert.Equal(t, 10, cfg.Server.ReadTimeout)       // default
				assert.Equal(t, 10, cfg.Server.WriteTimeout)      // default
				assert.Equal(t, 120, cfg.Server.IdleTimeout)      // default
				assert.Equal(t, "telegram_data", cfg.Database.DBName)
				assert.Equal(t, uint64(100), cfg.Database.MaxPoolSize)
			},
		},
		{
			name: "missing database uri is fatal",
			configFile: `
server:
  port: 9090
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  uri: "mongodb://localhost:27017"
				server:
				  port: invalid
			`,
			expectError: true, // Invalid port should cause unmarshal error
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadAPIConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	// Create temporary directory for env files
	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// Create .env file with environment variables
	// Note: Viper uses the TOKENRADAR_ prefix, so env vars need the prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `TOKENRADAR_DEBUG=true
TOKENRADAR_DATABASE_URI=mongodb://env-host:27017
TOKENRADAR_DATABASE_DBNAME=env-db
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)

	// Create config file with different values to verify env vars override
	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  uri: "mongodb://file-host:27017"
  dbname: file-db
`

	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	// Load config with envPath pointing to the temporary env directory
	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Environment variables from the .env file override config file values:
	// godotenv.Overload sets real env vars, viper's AutomaticEnv picks them up
	assert.True(t, cfg.Debug)
	assert.Equal(t, "mongodb://env-host:27017", cfg.Database.URI)
	assert.Equal(t, "env-db", cfg.Database.DBName)
}
