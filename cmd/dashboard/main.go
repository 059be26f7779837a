package main

import (
	"fleetdash/api"
	"fleetdash/internal/bootstrap"
	"fleetdash/internal/cache"
	"fleetdash/internal/config"
	"fleetdash/internal/db"
	"fleetdash/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.WithField("component", "main")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Info("configuration loaded")

	gdb, err := db.Open(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize MySQL: %v", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := bootstrap.Seed(gdb, logrus.WithField("component", "seed")); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	rdb, err := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer rdb.Close()

	store := session.NewStore(rdb, cfg.Session.Secret, cfg.Session.Lifetime)

	gin.SetMode(gin.ReleaseMode)
	r := api.NewRouter(gdb, store, cfg)

	log.Infof("server starting on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
