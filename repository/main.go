package repository

import (
	"github.com/memecataloger/catalog-api/infra"
	"gorm.io/gorm"
)

type Repository struct {
	UserRepo     *UserRepository
	ImageRepo    *ImageRepository
	TagRepo      *TagRepository
	ImageTagRepo *ImageTagRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		UserRepo:     NewUserRepository(infra.Postgres.DB),
		ImageRepo:    NewImageRepository(infra.Postgres.DB),
		TagRepo:      NewTagRepository(infra.Postgres.DB),
		ImageTagRepo: NewImageTagRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) BeginTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		UserRepo:     NewUserRepository(tx),
		ImageRepo:    NewImageRepository(tx),
		TagRepo:      NewTagRepository(tx),
		ImageTagRepo: NewImageTagRepository(tx),
	}
}
