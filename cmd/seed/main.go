package main

import (
	"errors"
	"flag"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"velvetroom/internal/entity"
	"velvetroom/internal/gallery"
	"velvetroom/internal/model"
	"velvetroom/internal/repo/persistent"
	"velvetroom/pkg/config"
	"velvetroom/pkg/database"
	"velvetroom/pkg/logger"
)

func main() {
	var (
		adminPassword = flag.String("hash-admin-password", "", "print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
		demoUser      = flag.Bool("demo-user", false, "create a demo user account")
	)
	flag.Parse()

	if *adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		fmt.Println(string(hash))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.New(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := model.AutoMigrate(db); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	store := gallery.NewStore(cfg.GalleryDataFile)
	if _, err := store.Load(); err != nil {
		log.Error("Failed to initialize gallery data file: %v", err)
		panic(err)
	}

	if *demoUser {
		if err := seedDemoUser(db, log); err != nil {
			log.Error("Failed to seed demo user: %v", err)
			panic(err)
		}
	}

	log.Info("Database seeded successfully!")
}

func seedDemoUser(db *gorm.DB, log *logger.Logger) error {
	users := persistent.NewUserRepository(db)

	if _, err := users.GetByUsername("demo"); err == nil {
		log.Info("Demo user already exists, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demopassword"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &entity.User{
		Username:    "demo",
		Email:       "demo@example.com",
		Password:    string(hash),
		DateOfBirth: "1990-01-01",
		IsActive:    true,
	}
	if err := users.Create(user); err != nil {
		return err
	}

	log.Info("Created demo user (demo / demopassword)")
	return nil
}
