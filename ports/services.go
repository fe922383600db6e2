package ports

import (
	"context"
	"os"

	"github.com/rythmn1111/final-cam/domain/models"
)

// ArtifactStore is the capture directory: an append-only history of
// timestamped images plus a single latest pointer.
type ArtifactStore interface {
	Dir() string
	LatestName() string
	WriteArtifact(name string, data []byte) (*models.Artifact, error)
	List() (models.Artifacts, error)
	LatestPath() (string, error)
	Latest() (os.FileInfo, error)
	Open(name string) (File, error)
}

// CaptureService produces one new artifact per call.
type CaptureService interface {
	Capture(ctx context.Context) (*models.Artifact, error)
}

// Publisher runs the publish pipeline against one local file.
type Publisher interface {
	Publish(ctx context.Context, path string, opts models.PublishOptions) (*models.PublishResult, error)
}
