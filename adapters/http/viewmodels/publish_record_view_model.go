package viewmodels

import (
	"time"

	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/lib/types"
)

type PublishRecord struct {
	TxID        string
	URL         string
	File        string
	Size        types.Size
	PublishedAt time.Time
}

func NewPublishRecord(record *models.PublishRecord) *PublishRecord {
	r := &PublishRecord{
		TxID:        record.TxID,
		URL:         record.URL,
		File:        record.File,
		Size:        record.Size,
		PublishedAt: time.UnixMilli(record.CreatedAt),
	}
	return r
}

func NewPublishRecords(records models.PublishRecords) []*PublishRecord {
	r := []*PublishRecord{}
	for _, record := range records {
		r = append(r, NewPublishRecord(record))
	}
	return r
}
