package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/rythmn1111/final-cam/lib/types"
)

type PublishRecords []*PublishRecord

// PublishRecord is the local bookkeeping row written after a
// successful upload to the storage network. The external ledger keeps
// its own copy; this one feeds the UI history.
type PublishRecord struct {
	ID        string     `gorm:"primaryKey;not null" json:"id" validate:"required"`
	TxID      string     `gorm:"uniqueIndex;not null" json:"txId" validate:"required"`
	URL       string     `gorm:"not null" json:"url" validate:"required,url"`
	File      string     `json:"file"`
	Size      types.Size `json:"size" validate:"min=0"`
	CreatedAt int64      `gorm:"index;column:created_at" json:"tsMs" validate:"required,gt=0"` // epoch milliseconds
}

func (model *PublishRecord) Validate(val *validator.Validate) error {
	return val.Struct(model)
}
