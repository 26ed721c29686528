package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"gorm.io/gorm"
)

var ErrImageAlreadyTagged = errors.New("image already carries this tag")

type ImageTagRepository struct {
	db *gorm.DB
}

func NewImageTagRepository(db *gorm.DB) *ImageTagRepository {
	return &ImageTagRepository{db: db}
}

// Create inserts the association, rejecting duplicate image/tag pairs so
// the unique index never fires with a driver-specific error.
func (r *ImageTagRepository) Create(imageTag *entity.ImageTag) error {
	exists, err := r.ExistsByImageAndTag(imageTag.ImageID, imageTag.TagID)
	if err != nil {
		return err
	}
	if exists {
		return ErrImageAlreadyTagged
	}
	return r.db.Create(imageTag).Error
}

func (r *ImageTagRepository) FindByID(id uuid.UUID) (*entity.ImageTag, error) {
	var imageTag entity.ImageTag
	err := r.db.Where("id = ?", id).First(&imageTag).Error
	if err != nil {
		return nil, err
	}
	return &imageTag, nil
}

func (r *ImageTagRepository) FindAll() ([]entity.ImageTag, error) {
	var imageTags []entity.ImageTag
	err := r.db.Order("created_at ASC").Find(&imageTags).Error
	if err != nil {
		return nil, err
	}
	return imageTags, nil
}

func (r *ImageTagRepository) FindByTagID(tagID uuid.UUID) ([]entity.ImageTag, error) {
	var imageTags []entity.ImageTag
	err := r.db.Where("tag_id = ?", tagID).Order("created_at ASC").Find(&imageTags).Error
	if err != nil {
		return nil, err
	}
	return imageTags, nil
}

func (r *ImageTagRepository) ExistsByImageAndTag(imageID, tagID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&entity.ImageTag{}).
		Where("image_id = ? AND tag_id = ?", imageID, tagID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ImageTagRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entity.ImageTag{}, "id = ?", id).Error
}

func (r *ImageTagRepository) DeleteByImageID(imageID uuid.UUID) error {
	return r.db.Delete(&entity.ImageTag{}, "image_id = ?", imageID).Error
}

func (r *ImageTagRepository) DeleteByTagID(tagID uuid.UUID) error {
	return r.db.Delete(&entity.ImageTag{}, "tag_id = ?", tagID).Error
}
