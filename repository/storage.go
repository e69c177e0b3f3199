package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-vm-service/entity"
	"gorm.io/gorm"
)

type StorageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) *StorageRepository {
	return &StorageRepository{db: db}
}

func (r *StorageRepository) Create(ctx context.Context, ns *entity.NewStorage) (uuid.UUID, error) {
	if err := ns.Validate(); err != nil {
		return uuid.Nil, err
	}

	storage := ns.ToStorage()
	if err := r.db.WithContext(ctx).Create(storage).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert storage: %w", err)
	}
	return storage.ID, nil
}

func (r *StorageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Storage, error) {
	var storage entity.Storage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&storage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.NewNotFoundError(entity.EntityStorage, id)
		}
		return nil, fmt.Errorf("failed to get storage %s: %w", id, err)
	}
	return &storage, nil
}

func (r *StorageRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Storage{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete storages: %w", result.Error)
	}
	return result.RowsAffected, nil
}
