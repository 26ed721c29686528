package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tag names are not unique; two users can own tags with the same name.
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
