package cam

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/lib"
	"github.com/rythmn1111/final-cam/lib/types"
	"github.com/rythmn1111/final-cam/ports"
	"github.com/spf13/afero"
)

// artifactExts are the artifact file types the gallery recognizes.
var artifactExts = map[string]bool{
	".webp": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsArtifactName reports whether name looks like a stored artifact.
func IsArtifactName(name string) bool {
	return artifactExts[strings.ToLower(filepath.Ext(name))]
}

// ArtifactStore keeps the captured images in one directory:
// an append-only history of timestamped files plus a single "latest"
// pointer file. Writers go through a dot-prefixed temp name and a
// rename, so a concurrent List or Open never observes a partial file.
type ArtifactStore struct {
	log        ports.Logger
	fs         ports.FS
	dir        string
	latestName string
}

func NewArtifactStore(log ports.Logger, fs ports.FS, dir, latestName string) (*ArtifactStore, error) {
	log = log.With(slog.String("entity", "ArtifactStore"))

	if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}

	s := &ArtifactStore{
		log:        log,
		fs:         fs,
		dir:        dir,
		latestName: latestName,
	}
	log.Info("created", slog.String("dir", dir))
	return s, nil
}

func (s *ArtifactStore) Dir() string        { return s.dir }
func (s *ArtifactStore) LatestName() string { return s.latestName }

// WriteArtifact stores data under name and repoints latest to the
// same content. Both writes are atomic - temp file then rename.
func (s *ArtifactStore) WriteArtifact(name string, data []byte) (*models.Artifact, error) {
	log := s.log.With(slog.String("name", name))
	// dot prefix is reserved for in-flight temp files
	if !lib.IsSecureFileName(name) || !IsArtifactName(name) || strings.HasPrefix(name, ".") {
		return nil, errors.ErrUnsecureFileName
	}

	path := filepath.Join(s.dir, name)
	if err := s.writeAtomic(path, data); err != nil {
		log.Error("unable to write artifact", slog.Any("err", err))
		return nil, err
	}
	if err := s.writeAtomic(filepath.Join(s.dir, s.latestName), data); err != nil {
		log.Error("unable to update latest", slog.Any("err", err))
		return nil, err
	}

	fi, err := s.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	artifact := &models.Artifact{
		Name:    name,
		URL:     "/img/" + name,
		Size:    types.Size(fi.Size()),
		MTimeMs: fi.ModTime().UnixMilli(),
	}
	log.Info("artifact stored", slog.Any("size", artifact.Size))
	return artifact, nil
}

func (s *ArtifactStore) writeAtomic(path string, data []byte) error {
	tmp := filepath.Join(s.dir, "."+ulid.Make().String()+".tmp")
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		s.fs.Remove(tmp)
		return err
	}
	return nil
}

// List reads the store directory fresh and returns recognized
// artifacts sorted by modification time descending - the UI assumes
// index 0 is the newest.
func (s *ArtifactStore) List() (models.Artifacts, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, err
	}

	artifacts := models.Artifacts{}
	for _, fi := range infos {
		name := fi.Name()
		if fi.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !IsArtifactName(name) {
			continue
		}
		artifacts = append(artifacts, &models.Artifact{
			Name:    name,
			URL:     "/img/" + name,
			Size:    types.Size(fi.Size()),
			MTimeMs: fi.ModTime().UnixMilli(),
		})
	}

	sort.SliceStable(artifacts, func(i, j int) bool {
		return artifacts[i].MTimeMs > artifacts[j].MTimeMs
	})
	return artifacts, nil
}

// LatestPath returns the path of the latest pointer file.
func (s *ArtifactStore) LatestPath() (string, error) {
	path := filepath.Join(s.dir, s.latestName)
	if lib.NoSuchFile(s.fs, path) {
		return "", errors.ErrNoLatestArtifact
	}
	return path, nil
}

// Latest stats the latest pointer file.
func (s *ArtifactStore) Latest() (os.FileInfo, error) {
	path, err := s.LatestPath()
	if err != nil {
		return nil, err
	}
	return s.fs.Stat(path)
}

// Open returns the named artifact for reading. The name must be a
// bare file name - no path elements.
func (s *ArtifactStore) Open(name string) (ports.File, error) {
	if !lib.IsSecureFileName(name) {
		return nil, errors.ErrUnsecureFileName
	}
	path := filepath.Join(s.dir, name)
	if lib.NoSuchFile(s.fs, path) {
		return nil, errors.ErrArtifactNotFound
	}
	return s.fs.Open(path)
}
