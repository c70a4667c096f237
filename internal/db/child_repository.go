package db

import (
	"strings"

	"github.com/terraincognita07/sprout/internal/models"
	"gorm.io/gorm"
)

type ChildRepository struct {
	database *gorm.DB
}

func NewChildRepository(database *gorm.DB) *ChildRepository {
	return &ChildRepository{database: database}
}

func (repo *ChildRepository) ListAll() ([]models.Child, error) {
	children := make([]models.Child, 0)
	if err := repo.database.Order("created_at ASC, id ASC").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (repo *ChildRepository) ListRecent(limit int) ([]models.Child, error) {
	children := make([]models.Child, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Limit(limit).Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (repo *ChildRepository) SearchByName(name string) ([]models.Child, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
	children := make([]models.Child, 0)
	if err := repo.database.
		Where("lower(name) LIKE ?", pattern).
		Order("name ASC").
		Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (repo *ChildRepository) FindByID(childID string) (models.Child, bool, error) {
	child := models.Child{}
	result := repo.database.Where("id = ?", childID).Limit(1).Find(&child)
	if result.Error != nil {
		return models.Child{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Child{}, false, nil
	}
	return child, true, nil
}

func (repo *ChildRepository) Create(child *models.Child) error {
	return repo.database.Create(child).Error
}

// UpdateByID applies a partial update; columns absent from updates keep their
// stored value.
func (repo *ChildRepository) UpdateByID(childID string, updates map[string]any) error {
	return repo.database.Model(&models.Child{}).Where("id = ?", childID).Updates(updates).Error
}

func (repo *ChildRepository) Delete(childID string) error {
	return repo.database.Where("id = ?", childID).Delete(&models.Child{}).Error
}

func (repo *ChildRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Child{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
