package db

import (
	"github.com/terraincognita07/sprout/internal/models"
	"gorm.io/gorm"
)

type MilestoneRepository struct {
	database *gorm.DB
}

func NewMilestoneRepository(database *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{database: database}
}

func (repo *MilestoneRepository) ListByChild(childID string) ([]models.Milestone, error) {
	milestones := make([]models.Milestone, 0)
	if err := repo.database.
		Where("child_id = ?", childID).
		Order("age_month_recommended ASC, name ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

func (repo *MilestoneRepository) FindByID(milestoneID string) (models.Milestone, bool, error) {
	milestone := models.Milestone{}
	result := repo.database.Where("id = ?", milestoneID).Limit(1).Find(&milestone)
	if result.Error != nil {
		return models.Milestone{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Milestone{}, false, nil
	}
	return milestone, true, nil
}

// FindByChildAndCode locates the saved row backing a standard milestone.
func (repo *MilestoneRepository) FindByChildAndCode(childID string, referenceCode string) (models.Milestone, bool, error) {
	milestone := models.Milestone{}
	result := repo.database.
		Where("child_id = ? AND reference_code = ?", childID, referenceCode).
		Limit(1).
		Find(&milestone)
	if result.Error != nil {
		return models.Milestone{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Milestone{}, false, nil
	}
	return milestone, true, nil
}

// FindByChildAndName matches on the exact display name, case-sensitive.
func (repo *MilestoneRepository) FindByChildAndName(childID string, name string) (models.Milestone, bool, error) {
	milestone := models.Milestone{}
	result := repo.database.
		Where("child_id = ? AND name = ?", childID, name).
		Limit(1).
		Find(&milestone)
	if result.Error != nil {
		return models.Milestone{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Milestone{}, false, nil
	}
	return milestone, true, nil
}

func (repo *MilestoneRepository) Create(milestone *models.Milestone) error {
	return repo.database.Create(milestone).Error
}

func (repo *MilestoneRepository) UpdateByID(milestoneID string, updates map[string]any) error {
	return repo.database.Model(&models.Milestone{}).Where("id = ?", milestoneID).Updates(updates).Error
}

func (repo *MilestoneRepository) Delete(milestoneID string) error {
	return repo.database.Where("id = ?", milestoneID).Delete(&models.Milestone{}).Error
}

func (repo *MilestoneRepository) DeleteByChild(childID string) (int64, error) {
	result := repo.database.Where("child_id = ?", childID).Delete(&models.Milestone{})
	return result.RowsAffected, result.Error
}

func (repo *MilestoneRepository) CountByChild(childID string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Milestone{}).
		Where("child_id = ?", childID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
