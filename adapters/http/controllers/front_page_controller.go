package controllers

import (
	"log/slog"
	"net/http"

	"github.com/rythmn1111/final-cam/adapters/http/viewmodels"
	"github.com/rythmn1111/final-cam/domain"
	"github.com/rythmn1111/final-cam/infra"
	"github.com/rythmn1111/final-cam/ports"
)

type FrontPageController struct {
	log     ports.Logger
	render  infra.Render
	store   ports.ArtifactStore
	records domain.PublishRepository
}

func NewFrontPageController(log ports.Logger, render infra.Render, store ports.ArtifactStore, records domain.PublishRepository) *FrontPageController {
	log = log.With(slog.String("entity", "FrontPageController"))
	c := &FrontPageController{
		log:     log,
		render:  render,
		store:   store,
		records: records,
	}
	return c
}

func (c *FrontPageController) Index(w http.ResponseWriter, r *http.Request) {
	errors := []string{}

	hasLatest := true
	if _, err := c.store.LatestPath(); err != nil {
		hasLatest = false
	}

	artifacts, err := c.store.List()
	if err != nil {
		errors = append(errors, err.Error())
	}
	perPage := 20
	artifacts, artifactsPage := helperPagination(r, artifacts, perPage)

	published, err := c.records.FindAll()
	if err != nil {
		errors = append(errors, err.Error())
	}

	data := struct {
		Errors        []string
		HasLatest     bool
		LatestURL     string
		Artifacts     []*viewmodels.Artifact
		ArtifactsPage int
		Published     []*viewmodels.PublishRecord
	}{
		Errors:        errors,
		HasLatest:     hasLatest,
		LatestURL:     "/" + c.store.LatestName(),
		Artifacts:     viewmodels.NewArtifacts(artifacts),
		ArtifactsPage: artifactsPage,
		Published:     viewmodels.NewPublishRecords(published),
	}

	c.render.HTML(w, http.StatusOK, "index", data)
}

// NotFound is a custom 404 handler
func (c *FrontPageController) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	c.render.HTML(w, http.StatusNotFound, "errors/404", nil)
}
