package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/client"
	fsimages "github.com/pandar-ch/kigurumi-showcase/pkg/showcase/imagestore/fs"
	inlineimages "github.com/pandar-ch/kigurumi-showcase/pkg/showcase/imagestore/inline"
	s3images "github.com/pandar-ch/kigurumi-showcase/pkg/showcase/imagestore/s3"
	fsstore "github.com/pandar-ch/kigurumi-showcase/pkg/showcase/store/fs"
	memorystore "github.com/pandar-ch/kigurumi-showcase/pkg/showcase/store/memory"
	pgstore "github.com/pandar-ch/kigurumi-showcase/pkg/showcase/store/postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:           "8080",
		Environment:    "development",
		StoreType:      "file",
		DataFile:       "./data/showcase-data.json",
		ImageStoreType: "fs",
		ImageDir:       "./data/images",
		ImageURLPrefix: "/media",
	}
}

// ServerConfig represents server configuration for the showcase service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Collection store configuration
	StoreType   string // "memory", "file", "postgres", "api"
	DataFile    string // file store: path of the JSON document
	DatabaseURL string // postgres store: connection string
	DataKey     string // postgres store: row key, defaults to "default"
	APIBaseURL  string // api store: remote server base URL

	// Image storage configuration
	ImageStoreType string // "inline", "fs", "s3", "api"
	ImageDir       string // fs backend: directory for image files
	ImageURLPrefix string // fs backend: public URL prefix for stored files
	S3             S3Config
}

// S3Config represents configuration for the S3 image backend
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
	KeyPrefix       string
	URLPrefix       string
	PresignDuration int

	CreateBucketIfNotExist bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.StoreType {
	case "memory":
	case "file":
		if c.DataFile == "" {
			return errors.New("data_file is required when using the file store")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database_url is required when using postgres")
		}
	case "api":
		if c.APIBaseURL == "" {
			return errors.New("api_base_url is required when using the api store")
		}
	default:
		return fmt.Errorf("unsupported store type: %s", c.StoreType)
	}

	switch c.ImageStoreType {
	case "inline":
	case "fs":
		if c.ImageDir == "" {
			return errors.New("image_dir is required when using the fs image backend")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket is required when using the s3 image backend")
		}
	case "api":
		if c.APIBaseURL == "" {
			return errors.New("api_base_url is required when using the api image backend")
		}
	default:
		return fmt.Errorf("unsupported image store type: %s", c.ImageStoreType)
	}

	return nil
}

// BuildService creates a showcase.Service instance from the server
// configuration.
func (c *ServerConfig) BuildService() (showcase.Service, error) {
	store, err := c.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build store: %w", err)
	}

	images, err := c.BuildImageStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build image store: %w", err)
	}

	return showcase.New(
		showcase.WithStore(store),
		showcase.WithImageStore(images),
	)
}

// BuildStore creates a showcase.Store based on the configuration
func (c *ServerConfig) BuildStore() (showcase.Store, error) {
	switch c.StoreType {
	case "memory":
		return memorystore.New(), nil
	case "file":
		return fsstore.New(fsstore.Config{Path: c.DataFile})
	case "postgres":
		pool, err := newPgxPool(c.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return pgstore.NewWithPool(pool, c.DataKey), nil
	case "api":
		return client.New(c.APIBaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", c.StoreType)
	}
}

// BuildImageStore creates a showcase.ImageStore based on the configuration
func (c *ServerConfig) BuildImageStore() (showcase.ImageStore, error) {
	switch c.ImageStoreType {
	case "inline":
		return inlineimages.New(), nil
	case "fs":
		return fsimages.New(fsimages.Config{
			BaseDir:   c.ImageDir,
			URLPrefix: c.ImageURLPrefix,
		})
	case "s3":
		return s3images.New(s3images.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			KeyPrefix:              c.S3.KeyPrefix,
			URLPrefix:              c.S3.URLPrefix,
			PresignDuration:        c.S3.PresignDuration,
			CreateBucketIfNotExist: c.S3.CreateBucketIfNotExist,
		})
	case "api":
		return client.New(c.APIBaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported image store type: %s", c.ImageStoreType)
	}
}

func newPgxPool(databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// PingPostgres verifies connectivity to Postgres. It is meant for startup
// checks so a misconfigured DATABASE_URL fails fast instead of on the first
// save.
func PingPostgres(databaseURL string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	pool, err := newPgxPool(databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
