package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"reelfeed/config"
	"reelfeed/engagement"
	"reelfeed/feed"
	"reelfeed/handlers"
	"reelfeed/models"
	"reelfeed/search"
	"reelfeed/storage"
	"reelfeed/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	cfg := config.Load()

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		slog.Error("mysql connection failed", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.Account{}, &models.Post{}, &models.Comment{}); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	media, err := storage.NewMinioStorage(storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		PublicURL: cfg.MinioPublicURL,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		slog.Error("minio connection failed", "error", err)
		os.Exit(1)
	}
	if err := media.EnsureBucket(context.Background()); err != nil {
		slog.Error("minio bucket setup failed", "error", err)
		os.Exit(1)
	}

	accounts := store.NewAccountStore(db)
	posts := store.NewPostStore(db)
	sets := store.NewEngagementStore(rdb)

	resolver := feed.NewResolver(accounts)
	assembler := feed.NewAssembler(posts, accounts, sets, resolver)
	engage := engagement.NewService(posts, sets, posts, posts, resolver)
	searcher := search.NewService(accounts, posts, resolver)

	go syncCounters(sets, posts, cfg.SyncInterval)

	router := &handlers.Router{
		Auth:    handlers.NewAuthHandlers(accounts, media, cfg.JWTSecret),
		Posts:   handlers.NewPostHandlers(posts, accounts, media),
		Feed:    handlers.NewFeedHandlers(assembler),
		Engage:  handlers.NewEngagementHandlers(engage),
		Search:  handlers.NewSearchHandlers(searcher),
		Creator: handlers.NewCreatorHandlers(accounts, assembler),
		Secret:  cfg.JWTSecret,
	}

	r := gin.Default()
	router.Register(r)

	slog.Info("listening", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// syncCounters periodically copies like/save set cardinalities from Redis
// into the posts table's denormalized columns.
func syncCounters(sets *store.EngagementStore, posts *store.PostStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		n, err := sets.SyncCounts(context.Background(), posts)
		if err != nil {
			slog.Error("counter sync failed", "error", err)
			continue
		}
		slog.Info("counter sync completed", "posts", n)
	}
}
