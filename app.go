package cam

import (
	"embed"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"github.com/rythmn1111/final-cam/adapters/arweave"
	"github.com/rythmn1111/final-cam/adapters/camera"
	"github.com/rythmn1111/final-cam/adapters/http"
	"github.com/rythmn1111/final-cam/adapters/http/controllers"
	"github.com/rythmn1111/final-cam/adapters/ledger"
	"github.com/rythmn1111/final-cam/adapters/repository"
	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/infra"
	"github.com/rythmn1111/final-cam/infra/config"
	"github.com/rythmn1111/final-cam/lib"
	"github.com/rythmn1111/final-cam/ports"
)

// App executes the camera daemon and returns error, when complete by ctrl-c.
// The application reads config(s), templates and static web files
// from layered filesystem.
// Layered filesystem consists of next layers:
//   - ./ of ${CAM_ROOT} (optional)
//   - ./ of current working directory
//   - embed.fs given as parameter (cmdFS)
//   - package own embed.fs (appFS)
func App(log ports.Logger, cmdFS embed.FS) error {
	var realFS ports.FS = afero.NewOsFs()

	// EventBus
	var bus ports.EventBus = infra.NewEventBus()
	defer bus.Shutdown()

	// Create layered filesystem
	fs, err := infra.NewLayerFileSystem(config.TopRootFileSystemPath, os.Getwd, cmdFS, appFS)
	if err != nil {
		log.Error("unable to create layered filesystem!!!", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetLayerFilesystemError)
	}

	// Load configuration
	cfg, err := config.LoadConfig(log, fs)
	if err != nil {
		log.Error("unable to load config!!!", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetLoadConfigError)
	}
	if err := realFS.MkdirAll(cfg.PhotosDir, 0o755); err != nil {
		log.Error("unable to create photos dir", slog.Any("err", err), slog.String("dir", cfg.PhotosDir))
		return lib.NewErrorCode(err, errors.RetCreateArtifactStoreError)
	}

	// Open database for local publish history
	driver := infra.DriverSqlite
	source := filepath.Join(cfg.PhotosDir, config.RecordsFileName)
	db, closeDb, err := infra.NewDatabase(log, driver, source)
	if err != nil {
		log.Error("unable to create database", slog.Any("err", err), slog.String("driver", driver), slog.String("source", source))
		return lib.NewErrorCode(err, errors.RetCreateDatabaseError)
	}
	defer closeDb()
	// Sync database
	if err := db.AutoMigrate(new(models.PublishRecord)); err != nil {
		log.Error("unable sync database", slog.Any("err", err), slog.String("driver", driver), slog.String("source", source))
		return lib.NewErrorCode(err, errors.RetMigrateDatabaseError)
	}
	// Create repositories
	publishRepository, err := repository.NewPublishRepository(db)
	if err != nil {
		log.Error("unable create publish repository", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetCreatePublishRepoError)
	}

	// Create artifact store over the photo directory
	store, err := NewArtifactStore(log, realFS, cfg.PhotosDir, cfg.LatestName)
	if err != nil {
		log.Error("unable to create artifact store", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetCreateArtifactStoreError)
	}

	// Create capture service:
	// - drive the camera and converter commands
	// - write artifacts and move the latest pointer
	// - publish captured events
	shooter := camera.NewExecCamera(log, cfg.CaptureCmd)
	conv := camera.NewExecConverter(log, cfg.ConvertCmd)
	tmpDir := filepath.Join(os.TempDir(), "cam")
	captureService, err := NewCaptureService(log, bus, realFS, store, shooter, conv, tmpDir, time.Duration(cfg.CaptureTimeout))
	if err != nil {
		log.Error("unable to create capture service", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetCreateCaptureServiceError)
	}
	// Create filesystem watcher so files synced into the photo
	// directory from outside still show up live in the UI
	photoWatcher, err := infra.NewWatcherService(log, bus, IsArtifactName)
	if err != nil {
		log.Error("unable to create new watcher service", slog.Any("err", err))
		return lib.NewErrorCode(err, errors.RetCreatePhotoWatcherError)
	}
	defer photoWatcher.Close()
	bus.Pub(ports.TopicPhotoDirUpdated, ports.Event{cfg.PhotosDir})

	// Create publish pipeline
	// The uploader connects lazily on first publish
	uploader := arweave.NewUploader(log, realFS, cfg.Wallet, cfg.Node)
	var metadataLedger ports.Ledger
	if lcfg := ledger.FromEnv(); lcfg.Enabled() {
		l, closeLedger, err := ledger.New(log, lcfg)
		if err != nil {
			// The device keeps capturing and publishing without it
			log.Error("unable to create metadata ledger", slog.Any("err", err))
		} else {
			defer closeLedger()
			metadataLedger = l
		}
	}
	pipeline := NewPublishPipeline(log, realFS, uploader, metadataLedger, publishRepository, cfg.Gateway, cfg.MaxUploadBytes)

	// Create router
	router := http.NewRouter(log)
	// Create render object
	// It also loads templates
	render := infra.NewRender(fs, "layout")
	// Create controllers
	frontPageController := controllers.NewFrontPageController(log, render, store, publishRepository)
	captureController := controllers.NewCaptureController(log, captureService, store)
	eventsController := controllers.NewEventsController(log, bus)
	galleryController := controllers.NewGalleryController(log, store)
	artifactController := controllers.NewArtifactController(log, store)
	publishController := controllers.NewPublishController(log, store, pipeline)
	publishedController := controllers.NewPublishedController(log, publishRepository)
	// Add routes
	router.Get("/", frontPageController.Index)
	router.With(httprate.LimitByIP(10, time.Minute)).Post("/capture", captureController.Post)
	router.Get("/events", eventsController.Get)
	router.Get("/gallery.json", galleryController.Get)
	router.Get("/"+cfg.LatestName, artifactController.GetLatest)
	router.Get("/img/{name}", artifactController.GetByName)
	router.Post("/publish", publishController.Post)
	router.Get("/published.json", publishedController.Get)
	router.Get("/healthz", controllers.Healthz)
	router.Handle("/metrics", promhttp.Handler())
	// Static file handler
	fileServer := http.FileServer(http.FS(fs))
	router.Handle("/static/*", fileServer)
	// 404 handler
	router.NotFound(frontPageController.NotFound)
	// Create http server
	// The router must has all routes already
	// It will start server in separate goroutine
	addr := config.Listen
	httpServer, err := infra.NewWebServer(log, addr, router)
	if err != nil {
		log.Error("unable create web server", slog.Any("err", err), slog.String("addr", addr))
		return lib.NewErrorCode(err, errors.RetCreateWebServerError)
	}

	// Add ctrl-c shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	log.Info("press ctrl-c to exit")
	// Wait for ctrl-c
	<-c

	// Close http server
	httpServer.Close()

	// Close watcher by ctrl-c
	photoWatcher.Close()
	return nil
}
