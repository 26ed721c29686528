package entity

import "github.com/google/uuid"

type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username string    `json:"username" binding:"required" gorm:"uniqueIndex;not null"`

	Images []Image `json:"images,omitempty" gorm:"foreignKey:OwnerID"`
	Tags   []Tag   `json:"tags,omitempty" gorm:"foreignKey:OwnerID"`
}
