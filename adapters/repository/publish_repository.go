package repository

import (
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/lib"
	"github.com/rythmn1111/final-cam/ports"
)

// PublishRepository persists the local publish history rows.
type PublishRepository struct {
	db ports.DB
}

func NewPublishRepository(db ports.DB) (*PublishRepository, error) {
	r := &PublishRepository{db: db}
	return r, nil
}

func (r *PublishRepository) Create(record *models.PublishRecord) error {
	if err := record.Validate(lib.Validate); err != nil {
		return err
	}
	return r.db.Create(record).Error
}

func (r *PublishRepository) FindAll() (models.PublishRecords, error) {
	records := models.PublishRecords{}
	err := r.db.Order("created_at DESC").Find(&records).Error
	return records, err
}
