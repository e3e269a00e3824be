package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dreamhome/internal/auth"
	"dreamhome/internal/cache"
	"dreamhome/internal/config"
	"dreamhome/internal/docstore"
	"dreamhome/internal/http/handlers"
	applog "dreamhome/internal/log"
	"dreamhome/internal/repos"
	"dreamhome/internal/services"
	"dreamhome/internal/storage"
)

func main() {
	cfg := config.Load()

	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			applog.L().Warn("could not open log file", "path", cfg.LogFile, "err", err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	logger := applog.Setup(applog.Options{Writer: out, Format: cfg.LogFormat, Level: cfg.LogLevel})
	logger.Info("config loaded", "settings", cfg.Summary())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		fatal("open store", err)
	}
	defer closeStores()

	media, err := openMedia(ctx, cfg)
	if err != nil {
		fatal("open media store", err)
	}

	var listings services.ListingCache
	if cfg.RedisAddr != "" {
		lc := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err := lc.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, listing cache disabled", "addr", cfg.RedisAddr, "err", err)
			_ = lc.Close()
		} else {
			defer lc.Close()
			listings = lc
		}
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("JWT_SECRET not set; tokens will not survive a restart")
	}
	tokens, err := auth.NewTokenService(secret, cfg.AccessTokenTTL)
	if err != nil {
		fatal("token service", err)
	}

	opts := handlers.AppOptions{
		BodyLimitMB:       cfg.BodyLimitMB,
		CORSOrigins:       cfg.CORSOrigins,
		LoginAttempts:     5,
		RequestsPerMinute: 120,
		AccessLog:         applog.AccessWriter(),
	}
	if cfg.BlobBackend != "s3" {
		opts.UploadDir = cfg.UploadDir
	}
	app := handlers.NewApp(handlers.NewDeps(stores, media, listings, tokens), opts)

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	logger.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		fatal("listen", err)
	}
}

func openStores(ctx context.Context, cfg config.Config) (handlers.Stores, func(), error) {
	if cfg.DBDriver == "mongo" {
		db, err := docstore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return handlers.Stores{}, nil, err
		}
		applog.L().Info("using mongo store", "database", cfg.MongoDatabase)
		return handlers.Stores{
			Users:      docstore.NewUserStore(db),
			Properties: docstore.NewPropertyStore(db),
			Inquiries:  docstore.NewInquiryStore(db),
		}, func() { _ = db.Close(context.Background()) }, nil
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return handlers.Stores{}, nil, err
	}
	if cfg.SeedDemo {
		if err := repos.SeedDemo(db); err != nil {
			_ = db.Close()
			return handlers.Stores{}, nil, err
		}
	}
	applog.L().Info("using sqlite store", "dsn", cfg.DBDSN)
	return handlers.Stores{
		Users:      repos.NewUserRepo(db),
		Properties: repos.NewPropertyRepo(db),
		Inquiries:  repos.NewInquiryRepo(db),
	}, func() { _ = db.Close() }, nil
}

func openMedia(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.BlobBackend == "s3" {
		applog.L().Info("media backend s3", "bucket", cfg.S3Bucket, "region", cfg.AWSRegion)
		return storage.NewS3(ctx, cfg.S3Bucket, cfg.AWSRegion)
	}
	applog.L().Info("media backend local", "dir", cfg.UploadDir)
	return storage.NewLocal(cfg.UploadDir)
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		fatal("generate secret", err)
	}
	return hex.EncodeToString(b)
}

func fatal(msg string, err error) {
	applog.L().Error(msg, "err", err)
	os.Exit(1)
}
