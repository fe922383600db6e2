package controllers

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/ports"
)

var contentTypes = map[string]string{
	".webp": "image/webp",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type ArtifactController struct {
	log   ports.Logger
	store ports.ArtifactStore
}

func NewArtifactController(log ports.Logger, store ports.ArtifactStore) *ArtifactController {
	log = log.With(slog.String("entity", "ArtifactController"))
	c := &ArtifactController{
		log:   log,
		store: store,
	}
	return c
}

// GetLatest serves the most recent capture. The latest pointer is a
// plain file so the response is whatever the last capture wrote.
func (c *ArtifactController) GetLatest(w http.ResponseWriter, r *http.Request) {
	if _, err := c.store.LatestPath(); err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	c.serve(w, r, c.store.LatestName())
}

// GetByName serves a single gallery artifact by file name.
func (c *ArtifactController) GetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c.serve(w, r, name)
}

func (c *ArtifactController) serve(w http.ResponseWriter, r *http.Request, name string) {
	file, err := c.store.Open(name)
	if errors.Is(err, errors.ErrUnsecureFileName) {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusNotFound, errors.ErrArtifactNotFound)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := io.Copy(w, file); err != nil {
		c.log.Warn("serve artifact", slog.String("name", name), slog.Any("err", err))
	}
}
