package controllers

import (
	"log/slog"
	"net/http"

	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/ports"
)

type GalleryController struct {
	log   ports.Logger
	store ports.ArtifactStore
}

func NewGalleryController(log ports.Logger, store ports.ArtifactStore) *GalleryController {
	log = log.With(slog.String("entity", "GalleryController"))
	c := &GalleryController{
		log:   log,
		store: store,
	}
	return c
}

// Get lists the local artifacts newest first.
func (c *GalleryController) Get(w http.ResponseWriter, r *http.Request) {
	artifacts, err := c.store.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if artifacts == nil {
		artifacts = models.Artifacts{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "local": artifacts})
}
