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

type DriveRepository struct {
	db *gorm.DB
}

func NewDriveRepository(db *gorm.DB) *DriveRepository {
	return &DriveRepository{db: db}
}

func (r *DriveRepository) Create(ctx context.Context, drive *entity.Drive) (uuid.UUID, error) {
	if drive.ID == uuid.Nil {
		drive.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(drive).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert drive: %w", err)
	}
	return drive.ID, nil
}

func (r *DriveRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Drive, error) {
	var drive entity.Drive
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&drive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.NewNotFoundError(entity.EntityDrive, id)
		}
		return nil, fmt.Errorf("failed to get drive %s: %w", id, err)
	}
	return &drive, nil
}

// GetDrivesForVM lists the drives attached to a VM.
func (r *DriveRepository) GetDrivesForVM(ctx context.Context, vm *entity.VM) ([]entity.Drive, error) {
	drives := make([]entity.Drive, 0)
	err := r.db.WithContext(ctx).
		Joins("JOIN vm_drives_map ON vm_drives_map.drive_id = drives.id").
		Where("vm_drives_map.vm_id = ?", vm.ID).
		Find(&drives).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list drives for vm %s: %w", vm.ID, err)
	}
	if drives == nil {
		drives = []entity.Drive{}
	}
	return drives, nil
}

func (r *DriveRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Drive{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete drives: %w", result.Error)
	}
	return result.RowsAffected, nil
}
