package domain

import (
	"github.com/rythmn1111/final-cam/domain/models"
)

type PublishRepository interface {
	Create(record *models.PublishRecord) error
	FindAll() (models.PublishRecords, error)
}
