package viewmodels

import (
	"time"

	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/lib/types"
)

type Artifact struct {
	Name    string
	URL     string
	Size    types.Size
	TakenAt time.Time
}

func NewArtifact(artifact *models.Artifact) *Artifact {
	a := &Artifact{
		Name:    artifact.Name,
		URL:     artifact.URL,
		Size:    artifact.Size,
		TakenAt: time.UnixMilli(artifact.MTimeMs),
	}
	return a
}

func NewArtifacts(artifacts models.Artifacts) []*Artifact {
	a := []*Artifact{}
	for _, artifact := range artifacts {
		a = append(a, NewArtifact(artifact))
	}
	return a
}
