package entity

import "github.com/google/uuid"

type Host struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Address string    `json:"address" gorm:"type:text;not null"`
}
