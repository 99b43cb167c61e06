package main

import (
	"log/slog"
	"os"

	"github.com/heyZakaria/01Blog/internal/config"
	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/pkg"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"
	"github.com/heyZakaria/01Blog/internal/repository/redis"
	"github.com/heyZakaria/01Blog/internal/router"
	"github.com/heyZakaria/01Blog/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Env)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		slog.Error("could not connect to mysql", "error", err)
		os.Exit(1)
	}
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Notification{},
		&model.Report{},
	); err != nil {
		slog.Error("could not migrate schema", "error", err)
		os.Exit(1)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		slog.Error("could not connect to redis", "error", err)
		os.Exit(1)
	}
	defer redis.Close()

	pkg.ConfigureJWT(cfg.AccessSecret, cfg.RefreshSecret)

	store, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		slog.Error("could not init media storage", "error", err)
		os.Exit(1)
	}

	r := router.InitRouter(cfg, store)
	slog.Info("starting server", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(env string) {
	var h slog.Handler
	switch env {
	case "local":
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(h))
}
