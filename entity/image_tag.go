package entity

import (
	"time"

	"github.com/google/uuid"
)

// ImageTag records that a tag applies to an image. The composite unique
// index keeps a (image, tag) pair from being recorded twice.
type ImageTag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ImageID   uuid.UUID `json:"image_id" gorm:"type:uuid;not null;uniqueIndex:idx_image_tag_pair"`
	TagID     uuid.UUID `json:"tag_id" gorm:"type:uuid;not null;uniqueIndex:idx_image_tag_pair"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	Image *Image `json:"image,omitempty" gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
	Tag   *Tag   `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}
