// Package testhelper builds throwaway databases and fixtures for tests.
package testhelper

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-vm-service/entity"
	"github.com/tnqbao/gau-vm-service/infra"
	"github.com/tnqbao/gau-vm-service/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database with foreign keys enforced.
// The pool is capped at one connection so every query sees the same database.
func NewDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.New("Could not open sqlite: " + err.Error())
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, errors.New("Could not enable foreign keys: " + err.Error())
	}
	if err := infra.Migrate(db); err != nil {
		return nil, errors.New("Could not migrate: " + err.Error())
	}
	return db, nil
}

func CloseDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func NewDiscardLogger() *infra.LoggerClient {
	return infra.NewLoggerClient(slog.NewTextHandler(io.Discard, nil))
}

// NewKernel stores a local storage and a kernel living on it.
func NewKernel(ctx context.Context, repo *repository.Repository) (uuid.UUID, error) {
	path := "/var/storage"
	storageID, err := repo.StorageRepo.Create(ctx, &entity.NewStorage{
		Name:        "dummy",
		StorageType: entity.StorageTypeLocal,
		Config:      entity.StorageConfig{Path: &path},
	})
	if err != nil {
		return uuid.Nil, errors.New("Could not save storage: " + err.Error())
	}

	kernelID, err := repo.KernelRepo.Create(ctx, &entity.Kernel{Name: "linux57", StorageID: storageID})
	if err != nil {
		return uuid.Nil, errors.New("Could not save kernel: " + err.Error())
	}
	return kernelID, nil
}

// NewDrive stores a drive on the storage backing kernelID.
func NewDrive(ctx context.Context, repo *repository.Repository, kernelID uuid.UUID, name string) (uuid.UUID, error) {
	kernel, err := repo.KernelRepo.GetByID(ctx, kernelID)
	if err != nil {
		return uuid.Nil, err
	}

	driveID, err := repo.DriveRepo.Create(ctx, &entity.Drive{Name: name, StorageID: kernel.StorageID, SizeMiB: 1024})
	if err != nil {
		return uuid.Nil, errors.New("Could not save drive: " + err.Error())
	}
	return driveID, nil
}

// Teardown empties every table in dependency order.
func Teardown(ctx context.Context, repo *repository.Repository) error {
	if _, err := repo.VMRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if _, err := repo.DriveRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if _, err := repo.KernelRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if _, err := repo.StorageRepo.DeleteAll(ctx); err != nil {
		return err
	}
	_, err := repo.HostRepo.DeleteAll(ctx)
	return err
}
