package controllers_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rythmn1111/final-cam/adapters/http/controllers"
	"github.com/rythmn1111/final-cam/lib/random"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestGalleryControllerGet(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	store := newTestStore(t, fs)

	_, err := store.WriteArtifact("20240101_120000.webp", random.ByteSliceN(1024))
	assert.NoError(err)
	time.Sleep(10 * time.Millisecond)
	_, err = store.WriteArtifact("20240101_120005.webp", random.ByteSliceN(2048))
	assert.NoError(err)

	controller := controllers.NewGalleryController(slog.Default(), store)
	r := httptest.NewRequest(http.MethodGet, "/gallery.json", nil)
	w := httptest.NewRecorder()
	controller.Get(w, r)

	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Header().Get("Content-Type"), "application/json")

	var body struct {
		OK    bool `json:"ok"`
		Local []struct {
			Name    string `json:"name"`
			URL     string `json:"url"`
			Size    int64  `json:"size"`
			MTimeMs int64  `json:"mtimeMs"`
		} `json:"local"`
	}
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(body.OK)
	assert.NotEmpty(body.Local)
	for i := 1; i < len(body.Local); i++ {
		assert.GreaterOrEqual(body.Local[i-1].MTimeMs, body.Local[i].MTimeMs)
	}
	for _, a := range body.Local {
		assert.Equal("/img/"+a.Name, a.URL)
		assert.Greater(a.Size, int64(0))
	}
}

func TestGalleryControllerGetEmpty(t *testing.T) {
	assert := require.New(t)
	store := newTestStore(t, afero.NewMemMapFs())

	controller := controllers.NewGalleryController(slog.Default(), store)
	r := httptest.NewRequest(http.MethodGet, "/gallery.json", nil)
	w := httptest.NewRecorder()
	controller.Get(w, r)

	assert.Equal(http.StatusOK, w.Code)
	var body struct {
		OK    bool              `json:"ok"`
		Local []json.RawMessage `json:"local"`
	}
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(body.OK)
	assert.NotNil(body.Local)
	assert.Len(body.Local, 0)
}
