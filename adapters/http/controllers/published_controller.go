package controllers

import (
	"log/slog"
	"net/http"

	"github.com/rythmn1111/final-cam/domain"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/ports"
)

type PublishedController struct {
	log     ports.Logger
	records domain.PublishRepository
}

func NewPublishedController(log ports.Logger, records domain.PublishRepository) *PublishedController {
	log = log.With(slog.String("entity", "PublishedController"))
	c := &PublishedController{
		log:     log,
		records: records,
	}
	return c
}

// Get lists everything published from this device, newest first.
func (c *PublishedController) Get(w http.ResponseWriter, r *http.Request) {
	records, err := c.records.FindAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = models.PublishRecords{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "items": records})
}
