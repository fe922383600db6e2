package controllers

import (
	"log/slog"
	"net/http"

	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/ports"
)

type PublishController struct {
	log      ports.Logger
	store    ports.ArtifactStore
	pipeline ports.Publisher
}

func NewPublishController(log ports.Logger, store ports.ArtifactStore, pipeline ports.Publisher) *PublishController {
	log = log.With(slog.String("entity", "PublishController"))
	c := &PublishController{
		log:      log,
		store:    store,
		pipeline: pipeline,
	}
	return c
}

// Post publishes the latest capture to the permanent storage network.
// Success wraps the pipeline result as record, failure is the plain
// error shape.
func (c *PublishController) Post(w http.ResponseWriter, r *http.Request) {
	path, err := c.store.LatestPath()
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}

	result, err := c.pipeline.Publish(r.Context(), path, models.PublishOptions{})
	if err != nil {
		status := http.StatusInternalServerError
		var sizeErr errors.SizeLimitError
		switch {
		case errors.As(err, &sizeErr):
			status = http.StatusRequestEntityTooLarge
		case errors.Is(err, errors.ErrFileNotFound):
			status = http.StatusNotFound
		case errors.Is(err, errors.ErrWalletNotFound), errors.Is(err, errors.ErrAuth):
			status = http.StatusServiceUnavailable
		}
		respondError(w, status, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "record": result})
}
