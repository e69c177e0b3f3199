package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypePool  StorageType = "pool"
)

type StorageConfig struct {
	HostID   *uuid.UUID `json:"host_id"`
	Path     *string    `json:"path"`
	PoolName *string    `json:"pool_name"`
}

type Storage struct {
	ID          uuid.UUID                         `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string                            `json:"name" gorm:"type:text;not null"`
	StorageType StorageType                       `json:"storage_type" gorm:"type:varchar(32);not null"`
	Config      datatypes.JSONType[StorageConfig] `json:"config" gorm:"type:jsonb;not null"`
}

type NewStorage struct {
	Name        string        `json:"name"`
	StorageType StorageType   `json:"storage_type"`
	Config      StorageConfig `json:"config"`
}

// Validate checks that the config carries what its storage type needs.
func (n *NewStorage) Validate() error {
	switch n.StorageType {
	case StorageTypeLocal:
		if n.Config.Path == nil || *n.Config.Path == "" {
			return &ValidationError{Field: "config.path", Reason: "required for local storage"}
		}
	case StorageTypePool:
		if n.Config.PoolName == nil || *n.Config.PoolName == "" {
			return &ValidationError{Field: "config.pool_name", Reason: "required for pool storage"}
		}
	default:
		return &ValidationError{Field: "storage_type", Reason: "must be local or pool"}
	}
	return nil
}

func (n *NewStorage) ToStorage() *Storage {
	return &Storage{
		ID:          uuid.New(),
		Name:        n.Name,
		StorageType: n.StorageType,
		Config:      datatypes.NewJSONType(n.Config),
	}
}
