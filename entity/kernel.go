package entity

import "github.com/google/uuid"

type Kernel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	StorageID uuid.UUID `json:"storage_id" gorm:"type:uuid;not null;index"`

	Storage *Storage `json:"-" gorm:"foreignKey:StorageID;references:ID;constraint:OnDelete:RESTRICT"`
}
