package repository

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/infra"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *PublishRepository {
	assert := require.New(t)
	db, closeDb, err := infra.NewDatabase(slog.Default(), infra.DriverSqlite, infra.SourceSqliteInMemory)
	assert.NoError(err)
	t.Cleanup(closeDb)
	assert.NoError(db.AutoMigrate(new(models.PublishRecord)))
	r, err := NewPublishRepository(db)
	assert.NoError(err)
	return r
}

func testRecord(txID string, createdAt int64) *models.PublishRecord {
	return &models.PublishRecord{
		ID:        uuid.NewString(),
		TxID:      txID,
		URL:       "https://arweave.net/" + txID,
		File:      "20240101_120000.webp",
		Size:      4096,
		CreatedAt: createdAt,
	}
}

func TestPublishRepositoryCreateAndFindAll(t *testing.T) {
	assert := require.New(t)
	r := newTestRepository(t)

	now := time.Now().UnixMilli()
	assert.NoError(r.Create(testRecord("tx-older", now-1000)))
	assert.NoError(r.Create(testRecord("tx-newer", now)))

	records, err := r.FindAll()
	assert.NoError(err)
	assert.Len(records, 2)
	// newest first
	assert.Equal("tx-newer", records[0].TxID)
	assert.Equal("tx-older", records[1].TxID)
}

func TestPublishRepositoryRejectsInvalidRecord(t *testing.T) {
	assert := require.New(t)
	r := newTestRepository(t)

	// missing transaction id
	record := testRecord("", time.Now().UnixMilli())
	assert.Error(r.Create(record))

	// bad url
	record = testRecord("tx-bad-url", time.Now().UnixMilli())
	record.URL = "not an url"
	assert.Error(r.Create(record))

	records, err := r.FindAll()
	assert.NoError(err)
	assert.Len(records, 0)
}

func TestPublishRepositoryUniqueTxID(t *testing.T) {
	assert := require.New(t)
	r := newTestRepository(t)

	now := time.Now().UnixMilli()
	assert.NoError(r.Create(testRecord("tx-dup", now)))
	assert.Error(r.Create(testRecord("tx-dup", now+1)))
}
