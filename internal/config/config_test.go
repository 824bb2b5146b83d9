package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "wwwroot", filepath.Base(cfg.WebRoot))
	assert.Equal(t, filepath.Join(cfg.WebRoot, "uploads"), cfg.UploadsDir())
}

func TestLoadFlagsAndEnv(t *testing.T) {
	t.Setenv("PM_DATABASE_URL", "postgres://u:p@localhost:5432/pm")
	t.Setenv("PM_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load([]string{"--web-root", "/srv/www", "--server-addr", ":9000"})
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost:5432/pm", cfg.DatabaseURL)
	assert.Equal(t, ":9000", cfg.ServerAddr)
	assert.Equal(t, "/srv/www/uploads", cfg.UploadsDir())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			ServerAddr:     ":8080",
			AppEnv:         "dev",
			DatabaseURL:    defaultDatabaseURL,
			MaxUploadBytes: defaultMaxUploadBytes,
			Storage:        StorageConfig{Driver: StorageLocal},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "ftp" }, wantErr: true},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.Driver = StorageS3 }, wantErr: true},
		{name: "s3 with bucket", mutate: func(c *Config) {
			c.Storage.Driver = StorageS3
			c.Storage.S3.Bucket = "images"
		}},
		{name: "limit above ceiling", mutate: func(c *Config) { c.MaxUploadBytes = defaultMaxUploadBytes + 1 }, wantErr: true},
		{name: "zero limit", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: true},
		{name: "prod with default dsn", mutate: func(c *Config) { c.AppEnv = "prod" }, wantErr: true},
		{name: "prod with real dsn", mutate: func(c *Config) {
			c.AppEnv = "release"
			c.DatabaseURL = "postgres://db/pm"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
