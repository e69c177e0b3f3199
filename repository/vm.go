package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-vm-service/entity"
	"github.com/tnqbao/gau-vm-service/infra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// vmColumns are the columns a full-record update replaces.
var vmColumns = []string{"name", "status", "host_id", "vcpu", "memory", "address", "network_mode", "kernel_params", "kernel"}

type VMRepository struct {
	db       *gorm.DB
	cache    *infra.RedisClient
	cacheTTL time.Duration
	// invalidator drops cached records on writes when reads bypass the cache
	invalidator *infra.RedisClient
}

func NewVMRepository(db *gorm.DB, cache *infra.RedisClient, cacheTTL time.Duration) *VMRepository {
	return &VMRepository{
		db:          db,
		cache:       cache,
		cacheTTL:    cacheTTL,
		invalidator: cache,
	}
}

func vmCacheKey(id uuid.UUID) string {
	return "vm:" + id.String()
}

func vmVersionKey(id uuid.UUID) string {
	return "vm:" + id.String() + ":version"
}

func (r *VMRepository) GetAll(ctx context.Context) ([]entity.VM, error) {
	vms := make([]entity.VM, 0)
	if err := r.db.WithContext(ctx).Find(&vms).Error; err != nil {
		return nil, fmt.Errorf("failed to list vms: %w", err)
	}
	if vms == nil {
		vms = []entity.VM{}
	}
	return vms, nil
}

func (r *VMRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.VM, error) {
	if r.cache == nil || r.cacheTTL <= 0 {
		return r.findByID(ctx, id)
	}

	var cached entity.VM
	if err := r.cache.Get(ctx, vmCacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	// The version is read before the row so a write landing in between
	// keeps this (possibly old) row out of the cache.
	version, versionErr := r.cache.Version(ctx, vmVersionKey(id))

	vm, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if versionErr == nil {
		_ = r.cache.SetIfVersion(ctx, vmCacheKey(id), vmVersionKey(id), version, vm, r.cacheTTL)
	}
	return vm, nil
}

func (r *VMRepository) findByID(ctx context.Context, id uuid.UUID) (*entity.VM, error) {
	var vm entity.VM
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.NewNotFoundError(entity.EntityVM, id)
		}
		return nil, fmt.Errorf("failed to get vm %s: %w", id, err)
	}
	return &vm, nil
}

// Insert normalizes the request and stores the resulting VM.
func (r *VMRepository) Insert(ctx context.Context, req *entity.NewVM) (uuid.UUID, error) {
	vm, err := entity.NewVMFromRequest(req)
	if err != nil {
		return uuid.Nil, err
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(vm).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert vm: %w", err)
	}
	return vm.ID, nil
}

// Update replaces every column of an existing VM. The record must satisfy the
// same network and status rules as a freshly created one.
func (r *VMRepository) Update(ctx context.Context, vm *entity.VM) (*entity.VM, error) {
	if err := vm.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(vm).Select(vmColumns).Updates(vm)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update vm %s: %w", vm.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, entity.NewNotFoundError(entity.EntityVM, vm.ID)
	}

	r.invalidate(ctx, vm.ID)
	return r.findByID(ctx, vm.ID)
}

// TransitionStatus moves a VM to the target status in one conditional UPDATE,
// so two concurrent callers cannot both win.
func (r *VMRepository) TransitionStatus(ctx context.Context, id uuid.UUID, to entity.VMStatus) (*entity.VM, error) {
	var from []int32
	for _, s := range entity.SourcesFor(to) {
		from = append(from, int32(s))
	}

	result := r.db.WithContext(ctx).
		Model(&entity.VM{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", int32(to))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to set vm %s status to %s: %w", id, to, result.Error)
	}

	if result.RowsAffected == 0 {
		vm, err := r.findByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &entity.TransitionError{From: vm.Status, To: to}
	}

	r.invalidate(ctx, id)
	return r.findByID(ctx, id)
}

func (r *VMRepository) AttachDrive(ctx context.Context, vmID, driveID uuid.UUID) error {
	attached := &entity.AttachedDrive{VMID: vmID, DriveID: driveID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(attached).Error; err != nil {
		return fmt.Errorf("failed to attach drive %s to vm %s: %w", driveID, vmID, err)
	}
	return nil
}

// DeleteAll removes every VM and its drive attachments.
func (r *VMRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := global.Delete(&entity.AttachedDrive{}).Error; err != nil {
			return err
		}
		result := global.Delete(&entity.VM{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete vms: %w", err)
	}

	if r.invalidator != nil {
		_ = r.invalidator.DeleteByPattern(ctx, "vm:*")
	}
	return deleted, nil
}

func (r *VMRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.invalidator != nil {
		_ = r.invalidator.Invalidate(ctx, vmCacheKey(id), vmVersionKey(id))
	}
}
