package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/ports"
)

type CaptureController struct {
	log     ports.Logger
	service ports.CaptureService
	store   ports.ArtifactStore
}

func NewCaptureController(log ports.Logger, service ports.CaptureService, store ports.ArtifactStore) *CaptureController {
	log = log.With(slog.String("entity", "CaptureController"))
	c := &CaptureController{
		log:     log,
		service: service,
		store:   store,
	}
	return c
}

// Post triggers one capture. A capture already in flight yields 409;
// the UI translates any error into a status line and re-enables the
// trigger control.
func (c *CaptureController) Post(w http.ResponseWriter, r *http.Request) {
	_, err := c.service.Capture(r.Context())
	if errors.Is(err, errors.ErrCaptureBusy) {
		respondError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	url := fmt.Sprintf("/%v?ts=%v", c.store.LatestName(), time.Now().UnixMilli())
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "url": url})
}
