package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Image is the metadata row for one stored blob. Source is the blob's
// filename inside the media storage, not a full URL; listings render it
// against the configured media base URL.
type Image struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Source      string         `json:"source" gorm:"type:varchar(512);not null"`
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	ContentType string         `json:"content_type" gorm:"type:varchar(255)"`
	Size        int64          `json:"size"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
