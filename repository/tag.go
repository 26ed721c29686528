package repository

import (
	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(tag *entity.Tag) error {
	return r.db.Create(tag).Error
}

func (r *TagRepository) FindByID(id uuid.UUID) (*entity.Tag, error) {
	var tag entity.Tag
	err := r.db.Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) FindAll() ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.Order("created_at ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) FindByOwnerID(ownerID uuid.UUID) ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) UpdateName(id uuid.UUID, name string) error {
	return r.db.Model(&entity.Tag{}).Where("id = ?", id).Update("name", name).Error
}

func (r *TagRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entity.Tag{}, "id = ?", id).Error
}
