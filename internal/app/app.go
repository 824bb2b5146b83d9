// Package app wires configuration, storage, database and routes into a gin engine.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"peoplematching/internal/config"
	"peoplematching/internal/domain/post"
	"peoplematching/internal/domain/postimage"
	"peoplematching/internal/middleware"
	"peoplematching/internal/storage"
)

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{&post.Post{}, &postimage.PostImage{}}
}

// NewStorage builds the configured upload backend.
func NewStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageS3:
		s3cfg := cfg.Storage.S3
		return storage.NewS3(ctx, storage.S3Options{
			Endpoint:        s3cfg.Endpoint,
			Bucket:          s3cfg.Bucket,
			Region:          s3cfg.Region,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			Prefix:          s3cfg.Prefix,
		})
	case config.StorageLocal:
		local := storage.NewLocal(cfg.UploadsDir())
		if err := local.EnsureRoot(); err != nil {
			return nil, err
		}
		return local, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewRouter registers middleware and every route on a new engine.
func NewRouter(cfg *config.Config, db *gorm.DB, st storage.Storage, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(middleware.ErrorLogger(log), middleware.AccessLogger(log), middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if local, ok := st.(*storage.Local); ok {
		r.Static("/uploads", local.Root)
	}

	imageService := postimage.NewService(
		postimage.NewRepository(db),
		st,
		log.Named("postimage"),
		postimage.WithMaxFileSize(cfg.MaxUploadBytes),
	)
	postService := post.NewService(post.NewRepository(db), log.Named("post"))

	api := r.Group("/api")
	{
		postimage.RegisterRoutes(api, postimage.NewHandler(imageService, log.Named("postimage")))
		post.RegisterRoutes(api, post.NewHandler(postService, log.Named("post")))
	}
	return r
}
