package repository

import (
	"context"
	"time"

	"github.com/tnqbao/gau-vm-service/config"
	"github.com/tnqbao/gau-vm-service/infra"
	"gorm.io/gorm"
)

type Repository struct {
	VMRepo      *VMRepository
	DriveRepo   *DriveRepository
	KernelRepo  *KernelRepository
	StorageRepo *StorageRepository
	HostRepo    *HostRepository

	db       *gorm.DB
	cache    *infra.RedisClient
	cacheTTL time.Duration
}

func InitRepository(infra *infra.Infra, cfg *config.EnvConfig) *Repository {
	if infra.Postgres == nil || infra.Postgres.DB == nil {
		panic("database connection is nil")
	}
	return NewRepository(infra.Postgres.DB, infra.Redis, cfg.Redis.VMCacheTTL)
}

// NewRepository wires every repository to one connection pool. cache may be nil.
func NewRepository(db *gorm.DB, cache *infra.RedisClient, cacheTTL time.Duration) *Repository {
	return &Repository{
		VMRepo:      NewVMRepository(db, cache, cacheTTL),
		DriveRepo:   NewDriveRepository(db),
		KernelRepo:  NewKernelRepository(db),
		StorageRepo: NewStorageRepository(db),
		HostRepo:    NewHostRepository(db),
		db:          db,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// WithTransaction returns repositories bound to tx. Reads inside a transaction
// skip the cache.
func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	repo := NewRepository(tx, nil, r.cacheTTL)
	repo.VMRepo.invalidator = r.cache
	return repo
}

func (r *Repository) Transaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTransaction(tx))
	})
}
