package controllers_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rythmn1111/final-cam/adapters/http/controllers"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/stretchr/testify/require"
)

type testRecords struct {
	records models.PublishRecords
}

func (r *testRecords) Create(record *models.PublishRecord) error {
	r.records = append(models.PublishRecords{record}, r.records...)
	return nil
}

func (r *testRecords) FindAll() (models.PublishRecords, error) {
	return r.records, nil
}

func TestPublishedControllerGet(t *testing.T) {
	assert := require.New(t)
	records := &testRecords{}
	assert.NoError(records.Create(&models.PublishRecord{
		ID:        "rec-1",
		TxID:      "tx-1",
		URL:       "https://gateway.example/tx-1",
		File:      "20240101_120000.webp",
		Size:      2048,
		CreatedAt: 1700000000000,
	}))

	controller := controllers.NewPublishedController(slog.Default(), records)
	r := httptest.NewRequest(http.MethodGet, "/published.json", nil)
	w := httptest.NewRecorder()
	controller.Get(w, r)

	assert.Equal(http.StatusOK, w.Code)
	var body struct {
		OK    bool `json:"ok"`
		Items []struct {
			ID   string `json:"id"`
			TxID string `json:"txId"`
			URL  string `json:"url"`
			Size int64  `json:"size"`
			TsMs int64  `json:"tsMs"`
		} `json:"items"`
	}
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(body.OK)
	assert.Len(body.Items, 1)
	assert.Equal("tx-1", body.Items[0].TxID)
	assert.EqualValues(1700000000000, body.Items[0].TsMs)
}

func TestPublishedControllerGetEmpty(t *testing.T) {
	assert := require.New(t)
	controller := controllers.NewPublishedController(slog.Default(), &testRecords{})

	r := httptest.NewRequest(http.MethodGet, "/published.json", nil)
	w := httptest.NewRecorder()
	controller.Get(w, r)

	assert.Equal(http.StatusOK, w.Code)
	var body struct {
		OK    bool              `json:"ok"`
		Items []json.RawMessage `json:"items"`
	}
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(body.OK)
	assert.NotNil(body.Items)
	assert.Len(body.Items, 0)
}
