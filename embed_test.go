package cam

import (
	"log/slog"
	"testing"

	"github.com/rythmn1111/final-cam/infra/config"
	"github.com/stretchr/testify/require"
)

// The embedded cam.yml is the last config layer, so it must load and
// validate on its own with nothing but the environment.
func TestEmbeddedConfigLoads(t *testing.T) {
	assert := require.New(t)
	t.Setenv("HOME", "/home/cam")

	cfg, err := config.LoadConfig(slog.Default(), appFS)
	assert.NoError(err)
	assert.Equal("/home/cam/photos", cfg.PhotosDir)
	assert.Equal("/home/cam/photos/wallet.json", cfg.Wallet)
	assert.Equal("latest.webp", cfg.LatestName)
	assert.EqualValues(100*1024, cfg.MaxUploadBytes)
}
