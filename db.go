package main

import (
	"context"
	"fmt"
	"time"

	"crbklasemen/models"
	"crbklasemen/pkg/docstore"
	"crbklasemen/pkg/identity"
	"crbklasemen/pkg/staff"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db         *gorm.DB
	identities *identity.Service
	admins     *staff.Service
)

// bindStore points the package-level services at gdb.
func bindStore(gdb *gorm.DB, ids *identity.Service) {
	db = gdb
	identities = ids
	admins = staff.NewService(gdb, ids)
}

func klasemenStore() *docstore.Collection[models.Klasemen] {
	return docstore.New[models.Klasemen](db, "klasemen", "top asc")
}

func hadiahStore() *docstore.Collection[models.Hadiah] {
	return docstore.New[models.Hadiah](db, "hadiah", "top asc")
}

func eventStore() *docstore.Collection[models.Event] {
	return docstore.New[models.Event](db, "events", "")
}

func openDB(cfg Config) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres database: %w", err)
	}
	return gdb, nil
}

func initDB(cfg Config) error {
	gdb, err := openDB(cfg)
	if err != nil {
		return err
	}
	bindStore(gdb, identity.NewService(gdb))

	if cfg.DBAutoMigrate {
		// Migrate models individually so a failure on one doesn't block others
		for _, m := range []any{&models.Identity{}, &models.RefreshToken{}, &models.Admin{}, &models.Klasemen{}, &models.Hadiah{}, &models.Event{}} {
			if err := db.AutoMigrate(m); err != nil {
				logger.Warn("migration warning", zap.String("model", fmt.Sprintf("%T", m)), zap.Error(err))
			}
		}
	}
	seedDB(cfg)
	return nil
}

func seedDB(cfg Config) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	created, err := admins.EnsureSeed(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		logger.Error("failed to seed admin", zap.String("email", cfg.SeedAdminEmail), zap.Error(err))
		return
	}
	if created {
		logger.Info("seeded admin identity", zap.String("email", cfg.SeedAdminEmail))
	}
}

func pingDB(ctx context.Context) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
