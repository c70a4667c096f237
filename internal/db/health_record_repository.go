package db

import (
	"time"

	"github.com/terraincognita07/sprout/internal/models"
	"gorm.io/gorm"
)

type HealthRecordRepository struct {
	database *gorm.DB
}

func NewHealthRecordRepository(database *gorm.DB) *HealthRecordRepository {
	return &HealthRecordRepository{database: database}
}

func (repo *HealthRecordRepository) ListByChild(childID string) ([]models.HealthRecord, error) {
	records := make([]models.HealthRecord, 0)
	if err := repo.database.
		Where("child_id = ?", childID).
		Order("timestamp ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *HealthRecordRepository) ListByChildAndType(childID string, recordType string) ([]models.HealthRecord, error) {
	records := make([]models.HealthRecord, 0)
	if err := repo.database.
		Where("child_id = ? AND type = ?", childID, recordType).
		Order("timestamp ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *HealthRecordRepository) ListPage(childID string, page int, pageSize int, descending bool) ([]models.HealthRecord, Pagination, error) {
	var totalCount int64
	if err := repo.database.Model(&models.HealthRecord{}).
		Where("child_id = ?", childID).
		Count(&totalCount).Error; err != nil {
		return nil, Pagination{}, err
	}

	pagination := newPagination(page, pageSize, totalCount)
	order := "timestamp ASC, id ASC"
	if descending {
		order = "timestamp DESC, id DESC"
	}

	records := make([]models.HealthRecord, 0, pagination.PageSize)
	if err := repo.database.
		Where("child_id = ?", childID).
		Order(order).
		Offset(pagination.offset()).
		Limit(pagination.PageSize).
		Find(&records).Error; err != nil {
		return nil, Pagination{}, err
	}
	return records, pagination, nil
}

func (repo *HealthRecordRepository) FindByID(recordID string) (models.HealthRecord, bool, error) {
	record := models.HealthRecord{}
	result := repo.database.Where("id = ?", recordID).Limit(1).Find(&record)
	if result.Error != nil {
		return models.HealthRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HealthRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *HealthRecordRepository) Create(record *models.HealthRecord) error {
	return repo.database.Create(record).Error
}

func (repo *HealthRecordRepository) UpdateByID(recordID string, updates map[string]any) error {
	return repo.database.Model(&models.HealthRecord{}).Where("id = ?", recordID).Updates(updates).Error
}

func (repo *HealthRecordRepository) Delete(recordID string) error {
	return repo.database.Where("id = ?", recordID).Delete(&models.HealthRecord{}).Error
}

func (repo *HealthRecordRepository) DeleteByChild(childID string) (int64, error) {
	result := repo.database.Where("child_id = ?", childID).Delete(&models.HealthRecord{})
	return result.RowsAffected, result.Error
}

func (repo *HealthRecordRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := repo.database.Where("timestamp < ?", cutoff).Delete(&models.HealthRecord{})
	return result.RowsAffected, result.Error
}

func (repo *HealthRecordRepository) CountByChild(childID string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.HealthRecord{}).
		Where("child_id = ?", childID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
