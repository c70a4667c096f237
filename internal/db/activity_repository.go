package db

import (
	"time"

	"github.com/terraincognita07/sprout/internal/models"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	database *gorm.DB
}

func NewActivityRepository(database *gorm.DB) *ActivityRepository {
	return &ActivityRepository{database: database}
}

func (repo *ActivityRepository) ListByChild(childID string) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	if err := repo.database.
		Where("child_id = ?", childID).
		Order("timestamp ASC, id ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// ListByChildRange returns activities whose timestamp lies in [from, to],
// both ends inclusive.
func (repo *ActivityRepository) ListByChildRange(childID string, from time.Time, to time.Time) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	if err := repo.database.
		Where("child_id = ? AND timestamp >= ? AND timestamp <= ?", childID, from, to).
		Order("timestamp ASC, id ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (repo *ActivityRepository) ListRecentByChild(childID string, limit int) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	if err := repo.database.
		Where("child_id = ?", childID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (repo *ActivityRepository) ListPage(childID string, page int, pageSize int, descending bool) ([]models.Activity, Pagination, error) {
	var totalCount int64
	if err := repo.database.Model(&models.Activity{}).
		Where("child_id = ?", childID).
		Count(&totalCount).Error; err != nil {
		return nil, Pagination{}, err
	}

	pagination := newPagination(page, pageSize, totalCount)
	order := "timestamp ASC, id ASC"
	if descending {
		order = "timestamp DESC, id DESC"
	}

	activities := make([]models.Activity, 0, pagination.PageSize)
	if err := repo.database.
		Where("child_id = ?", childID).
		Order(order).
		Offset(pagination.offset()).
		Limit(pagination.PageSize).
		Find(&activities).Error; err != nil {
		return nil, Pagination{}, err
	}
	return activities, pagination, nil
}

func (repo *ActivityRepository) FindByID(activityID string) (models.Activity, bool, error) {
	activity := models.Activity{}
	result := repo.database.Where("id = ?", activityID).Limit(1).Find(&activity)
	if result.Error != nil {
		return models.Activity{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Activity{}, false, nil
	}
	return activity, true, nil
}

func (repo *ActivityRepository) Create(activity *models.Activity) error {
	return repo.database.Create(activity).Error
}

func (repo *ActivityRepository) UpdateByID(activityID string, updates map[string]any) error {
	return repo.database.Model(&models.Activity{}).Where("id = ?", activityID).Updates(updates).Error
}

func (repo *ActivityRepository) Delete(activityID string) error {
	return repo.database.Where("id = ?", activityID).Delete(&models.Activity{}).Error
}

func (repo *ActivityRepository) DeleteByChild(childID string) (int64, error) {
	result := repo.database.Where("child_id = ?", childID).Delete(&models.Activity{})
	return result.RowsAffected, result.Error
}

// DeleteOlderThan removes activities with a timestamp strictly before cutoff.
// Used by the retention sweep.
func (repo *ActivityRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := repo.database.Where("timestamp < ?", cutoff).Delete(&models.Activity{})
	return result.RowsAffected, result.Error
}

func (repo *ActivityRepository) CountByChild(childID string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Activity{}).
		Where("child_id = ?", childID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
