package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-vm-service/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KernelRepository struct {
	db *gorm.DB
}

func NewKernelRepository(db *gorm.DB) *KernelRepository {
	return &KernelRepository{db: db}
}

func (r *KernelRepository) Create(ctx context.Context, kernel *entity.Kernel) (uuid.UUID, error) {
	if kernel.ID == uuid.Nil {
		kernel.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(kernel).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert kernel: %w", err)
	}
	return kernel.ID, nil
}

func (r *KernelRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Kernel, error) {
	var kernel entity.Kernel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&kernel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.NewNotFoundError(entity.EntityKernel, id)
		}
		return nil, fmt.Errorf("failed to get kernel %s: %w", id, err)
	}
	return &kernel, nil
}

func (r *KernelRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Kernel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete kernels: %w", result.Error)
	}
	return result.RowsAffected, nil
}
