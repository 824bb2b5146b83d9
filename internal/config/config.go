package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultServerAddr     = ":8080"
	defaultAppEnv         = "dev"
	defaultDatabaseURL    = "peoplematching.db"
	defaultStorageDriver  = StorageLocal
	defaultS3Region       = "auto"
	defaultMaxUploadBytes = 10 * 1024 * 1024

	envPrefix = "PM"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	ServerAddr     string
	AppEnv         string
	DatabaseURL    string
	WebRoot        string
	MaxUploadBytes int64
	CORSOrigins    []string

	Storage StorageConfig
}

type StorageConfig struct {
	Driver string
	S3     S3Config
}

type S3Config struct {
	Endpoint        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

// UploadsDir is where the local backend keeps uploaded files.
func (c *Config) UploadsDir() string {
	return filepath.Join(c.WebRoot, "uploads")
}

// Load reads flags, PM_* environment variables and an optional .env file.
func Load(args []string) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("peoplematching", pflag.ContinueOnError)
	fs.String("server-addr", defaultServerAddr, "listen address")
	fs.String("app-env", defaultAppEnv, "dev or prod")
	fs.String("database-url", defaultDatabaseURL, "postgres:// URL or sqlite file path")
	fs.String("web-root", "", "web root directory, defaults to ./wwwroot")
	fs.Int64("max-upload-bytes", defaultMaxUploadBytes, "upload size limit in bytes")
	fs.String("cors-allowed-origins", "", "comma separated extra CORS origins")

	fs.String("storage-driver", defaultStorageDriver, "local or s3")
	fs.String("s3-endpoint", "", "")
	fs.String("s3-bucket", "", "")
	fs.String("s3-region", defaultS3Region, "")
	fs.String("s3-access-key-id", "", "")
	fs.String("s3-secret-access-key", "", "")
	fs.String("s3-prefix", "", "")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		ServerAddr:     strings.TrimSpace(v.GetString("server-addr")),
		AppEnv:         strings.ToLower(strings.TrimSpace(v.GetString("app-env"))),
		DatabaseURL:    strings.TrimSpace(v.GetString("database-url")),
		WebRoot:        strings.TrimSpace(v.GetString("web-root")),
		MaxUploadBytes: v.GetInt64("max-upload-bytes"),
		CORSOrigins:    splitList(v.GetString("cors-allowed-origins")),
		Storage: StorageConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("storage-driver"))),
			S3: S3Config{
				Endpoint:        v.GetString("s3-endpoint"),
				Bucket:          v.GetString("s3-bucket"),
				Region:          v.GetString("s3-region"),
				AccessKeyID:     v.GetString("s3-access-key-id"),
				SecretAccessKey: v.GetString("s3-secret-access-key"),
				Prefix:          v.GetString("s3-prefix"),
			},
		},
	}

	if cfg.WebRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg.WebRoot = filepath.Join(wd, "wwwroot")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Validate(cfg *Config) error {
	if cfg.ServerAddr == "" {
		return fmt.Errorf("server-addr must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database-url must not be empty")
	}
	if cfg.MaxUploadBytes <= 0 || cfg.MaxUploadBytes > defaultMaxUploadBytes {
		return fmt.Errorf("max-upload-bytes must be in (0, %d]", defaultMaxUploadBytes)
	}

	switch cfg.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("s3-bucket is required when storage-driver=s3")
		}
	default:
		return fmt.Errorf("storage-driver must be one of: local, s3 (got %q)", cfg.Storage.Driver)
	}

	if isProdLike(cfg.AppEnv) && cfg.DatabaseURL == defaultDatabaseURL {
		return fmt.Errorf("in prod/release database-url must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
