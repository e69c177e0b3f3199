package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-vm-service/entity"
	"gorm.io/gorm"
)

type HostRepository struct {
	db *gorm.DB
}

func NewHostRepository(db *gorm.DB) *HostRepository {
	return &HostRepository{db: db}
}

func (r *HostRepository) Create(ctx context.Context, host *entity.Host) (uuid.UUID, error) {
	if host.ID == uuid.Nil {
		host.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(host).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert host: %w", err)
	}
	return host.ID, nil
}

func (r *HostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Host, error) {
	var host entity.Host
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&host).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.NewNotFoundError(entity.EntityHost, id)
		}
		return nil, fmt.Errorf("failed to get host %s: %w", id, err)
	}
	return &host, nil
}

func (r *HostRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Host{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete hosts: %w", result.Error)
	}
	return result.RowsAffected, nil
}
