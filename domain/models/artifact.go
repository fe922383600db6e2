package models

import (
	"github.com/rythmn1111/final-cam/lib/types"
)

type ArtifactName = string

type Artifacts []*Artifact

// Artifact is a read-only summary of one captured image on disk.
// The listing is recomputed fresh on every request - an Artifact is
// never cached or mutated.
type Artifact struct {
	Name    ArtifactName `json:"name"`
	URL     string       `json:"url"`
	Size    types.Size   `json:"size"`
	MTimeMs int64        `json:"mtimeMs"`
}
