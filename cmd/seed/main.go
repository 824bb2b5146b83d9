package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"peoplematching/internal/app"
	"peoplematching/internal/config"
	"peoplematching/internal/database"
	"peoplematching/internal/domain/post"
	"peoplematching/internal/pkg/logger"
)

var authors = []string{"Asel", "Bekzat", "Dina", "Marat"}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}

	log.Info("running AutoMigrate")
	if err := db.AutoMigrate(app.Models()...); err != nil {
		log.Fatal("AutoMigrate failed", zap.Error(err))
	}

	log.Info("cleaning old posts")
	db.Exec("DELETE FROM posts")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()
	for i := 1; i <= 10; i++ {
		p := post.Post{
			Title:     fmt.Sprintf("Sample post %d", i),
			Body:      "Looking for people to join a weekend hiking group.",
			Author:    authors[rng.Intn(len(authors))],
			Remark:    "seed",
			LastField: now.Add(-time.Duration(i) * time.Hour),
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatal("create post failed", zap.Error(err))
		}
	}
	log.Info("seed complete", zap.Int("posts", 10))
}
