package repository

import (
	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(image *entity.Image) error {
	return r.db.Create(image).Error
}

func (r *ImageRepository) FindByID(id uuid.UUID) (*entity.Image, error) {
	var image entity.Image
	err := r.db.Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) FindAll() ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.Order("created_at ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) FindByOwnerID(ownerID uuid.UUID) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) ExistsByID(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Image{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ImageRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entity.Image{}, "id = ?", id).Error
}
