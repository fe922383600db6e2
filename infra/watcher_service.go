package infra

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/lib"
	"github.com/rythmn1111/final-cam/ports"
	"github.com/spf13/afero"
)

// WatcherService watches the photo directory for artifacts which
// appear outside of the capture path (synced in over the network,
// copied from another host). Every recognized image file settling in
// the directory is announced on TopicArtifactUpdated with its base
// name, so open clients can refresh their gallery.
type WatcherService struct {
	log                    ports.Logger
	bus                    ports.EventBus
	isArtifact             func(name string) bool
	chTopicPhotoDirUpdated chan ports.Event
	watcher                *fsnotify.Watcher
	closeWg                sync.WaitGroup
}

func NewWatcherService(log ports.Logger, bus ports.EventBus, isArtifact func(name string) bool) (*WatcherService, error) {
	log = log.With(slog.String("entity", "WatcherService"))
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &WatcherService{
		log:                    log,
		bus:                    bus,
		isArtifact:             isArtifact,
		chTopicPhotoDirUpdated: bus.Sub(ports.TopicPhotoDirUpdated),
		watcher:                watcher,
	}
	log.Info("created")

	s.closeWg.Add(1)
	go func() {
		defer s.closeWg.Done()
		log.Info("process started")
		defer log.Warn("process complete")
		s.background()
	}()

	return s, nil
}

func (s *WatcherService) Close() {
	if s == nil {
		return
	}
	if s.watcher == nil {
		return
	}

	s.log.Info("closing")
	s.bus.Unsub(s.chTopicPhotoDirUpdated)
	s.watcher.Close()
	s.closeWg.Wait()
	s.watcher = nil
}

func (s *WatcherService) addDir(path string) error {
	log := s.log
	if abspath, err := filepath.Abs(path); abspath != path || err != nil {
		log.Error("add dir failed!!!", slog.Any("err", err), slog.String("path", path), slog.String("abspath", abspath))
		return errors.ErrMustBeAbsPath
	}
	log.Info("add dir", slog.String("path", path))
	err := s.watcher.Add(path)
	if err != nil {
		log.Error("add dir failed!!!", slog.Any("err", err), slog.String("path", path))
	}
	return err
}

func (s *WatcherService) background() {
	log, bus, fs := s.log, s.bus, afero.NewOsFs()
	for {
		select {
		case event, ok := <-s.chTopicPhotoDirUpdated:
			log.Debug("watcher event", slog.Any("event", event))
			if !ok {
				return
			}
			for _, path := range event {
				s.addDir(path)
			}
		case err, ok := <-s.watcher.Errors:
			if err != nil {
				log.Error("watcher error", slog.Any("err", err))
			}
			if !ok {
				return
			}
		case event, ok := <-s.watcher.Events:
			log.Debug("watcher event", slog.Any("event", event))
			if !ok {
				return
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			file := event.Name
			name := filepath.Base(file)
			// Temp names from the atomic rename discipline start
			// with a dot and are never announced.
			if strings.HasPrefix(name, ".") {
				continue
			}
			if !s.isArtifact(name) {
				continue
			}
			size := lib.FileSize(fs, file)
			log.Debug("artifact updated", slog.String("name", name), slog.Int64("size", size))
			bus.Pub(ports.TopicArtifactUpdated, ports.Event{name})
		}
	}
}
