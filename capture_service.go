package cam

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/infra"
	"github.com/rythmn1111/final-cam/ports"
	"github.com/spf13/afero"
)

// CaptureService drives one capture end to end: acquire a raw frame
// from the camera, run it through the converter, store the result
// atomically and announce it on the bus. Only one capture may be in
// flight - a concurrent request is rejected with ErrCaptureBusy.
type CaptureService struct {
	log     ports.Logger
	bus     ports.EventBus
	fs      ports.FS
	store   *ArtifactStore
	camera  ports.Camera
	conv    ports.Converter
	tmpDir  string
	timeout time.Duration
	mu      sync.Mutex
}

func NewCaptureService(log ports.Logger, bus ports.EventBus, fs ports.FS, store *ArtifactStore, camera ports.Camera, conv ports.Converter, tmpDir string, timeout time.Duration) (*CaptureService, error) {
	log = log.With(slog.String("entity", "CaptureService"))

	if err := fs.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, err
	}

	s := &CaptureService{
		log:     log,
		bus:     bus,
		fs:      fs,
		store:   store,
		camera:  camera,
		conv:    conv,
		tmpDir:  tmpDir,
		timeout: timeout,
	}
	log.Info("created")
	return s, nil
}

// Capture blocks while the hardware and the codec work. On success
// exactly one captured event is published; on failure the store is
// left untouched and nothing is published.
func (s *CaptureService) Capture(ctx context.Context) (*models.Artifact, error) {
	if !s.mu.TryLock() {
		return nil, errors.ErrCaptureBusy
	}
	defer s.mu.Unlock()
	log := s.log

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	id := ulid.Make().String()
	raw := filepath.Join(s.tmpDir, "shot-"+id+".jpg")
	out := filepath.Join(s.tmpDir, "shot-"+id+".webp")
	defer s.fs.Remove(raw)
	defer s.fs.Remove(out)

	log.Info("capturing")
	if err := s.camera.Acquire(ctx, raw); err != nil {
		log.Error("acquisition failed", slog.Any("err", err))
		infra.CapturesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if err := s.conv.Convert(ctx, raw, out); err != nil {
		log.Error("conversion failed", slog.Any("err", err))
		infra.CapturesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, out)
	if err != nil {
		log.Error("unable to read converted frame", slog.Any("err", err))
		infra.CapturesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	now := time.Now()
	name := now.Format("20060102_150405") + ".webp"
	artifact, err := s.store.WriteArtifact(name, data)
	if err != nil {
		infra.CapturesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.bus.Pub(ports.TopicCaptured, ports.Event{strconv.FormatInt(now.UnixMilli(), 10)})
	infra.CapturesTotal.WithLabelValues("ok").Inc()
	log.Info("captured", slog.String("name", artifact.Name), slog.Any("size", artifact.Size))
	return artifact, nil
}
