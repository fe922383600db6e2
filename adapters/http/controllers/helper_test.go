package controllers_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	cam "github.com/rythmn1111/final-cam"
	"github.com/rythmn1111/final-cam/ports"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func init() {
	level := new(slog.LevelVar)
	handler := slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	level.Set(slog.LevelDebug)
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

// testCamera writes a fixed frame, optionally pausing until released.
type testCamera struct {
	fs      ports.FS
	frame   []byte
	started chan struct{}
	release chan struct{}
}

func (c *testCamera) Acquire(ctx context.Context, dest string) error {
	if c.started != nil {
		close(c.started)
	}
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return afero.WriteFile(c.fs, dest, c.frame, 0o644)
}

type testConverter struct {
	fs ports.FS
}

func (c *testConverter) Convert(ctx context.Context, src, dest string) error {
	data, err := afero.ReadFile(c.fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(c.fs, dest, data, 0o644)
}

type testUploader struct {
	uploadCalls int
	err         error
}

func (u *testUploader) Connect(ctx context.Context) error { return nil }

func (u *testUploader) Upload(ctx context.Context, req *ports.UploadRequest) (*ports.UploadReceipt, error) {
	u.uploadCalls++
	if u.err != nil {
		return nil, u.err
	}
	return &ports.UploadReceipt{ID: "tx-test"}, nil
}

func newTestStore(t *testing.T, fs ports.FS) *cam.ArtifactStore {
	assert := require.New(t)
	store, err := cam.NewArtifactStore(slog.Default(), fs, "/var/lib/cam/photos", "latest.webp")
	assert.NoError(err)
	return store
}

func newTestCaptureService(t *testing.T, fs ports.FS, bus ports.EventBus, store *cam.ArtifactStore, camera ports.Camera) *cam.CaptureService {
	assert := require.New(t)
	service, err := cam.NewCaptureService(slog.Default(), bus, fs, store, camera, &testConverter{fs: fs}, "/tmp/cam", time.Second)
	assert.NoError(err)
	return service
}
