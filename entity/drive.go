package entity

import "github.com/google/uuid"

type Drive struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	StorageID uuid.UUID `json:"storage_id" gorm:"type:uuid;not null;index"`
	SizeMiB   int64     `json:"size_mib" gorm:"column:size_mib;not null"`
	ReadOnly  bool      `json:"read_only" gorm:"not null;default:false"`

	Storage *Storage `json:"-" gorm:"foreignKey:StorageID;references:ID;constraint:OnDelete:RESTRICT"`
}

// AttachedDrive relates one VM to one Drive.
type AttachedDrive struct {
	VMID    uuid.UUID `json:"vm_id" gorm:"column:vm_id;type:uuid;primaryKey"`
	DriveID uuid.UUID `json:"drive_id" gorm:"column:drive_id;type:uuid;primaryKey"`

	VM    *VM    `json:"-" gorm:"foreignKey:VMID;references:ID;constraint:OnDelete:CASCADE"`
	Drive *Drive `json:"-" gorm:"foreignKey:DriveID;references:ID;constraint:OnDelete:CASCADE"`
}

func (AttachedDrive) TableName() string {
	return "vm_drives_map"
}
