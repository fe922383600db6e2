package cam

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rythmn1111/final-cam/domain"
	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/infra"
	"github.com/rythmn1111/final-cam/lib/types"
	"github.com/rythmn1111/final-cam/ports"
	"github.com/spf13/afero"
)

// MaxUploadBytes is the hard payload ceiling of the publish pipeline.
// The storage network's economics favor small payloads, so this is a
// precondition, not a soft warning.
const MaxUploadBytes = int64(100 * 1024)

// PublishPipeline turns one local file into a permanent
// network-addressed object: validate size, establish the signing
// identity, upload in a single attempt, then best-effort bookkeeping.
// No automatic retry anywhere - a caller re-invokes Publish to retry,
// which is safe since the network is content-addressed.
type PublishPipeline struct {
	log      ports.Logger
	fs       ports.FS
	uploader ports.Uploader
	ledger   ports.Ledger             // nil - metadata step skipped
	records  domain.PublishRepository // nil - no local history
	gateway  string
	maxBytes int64
}

func NewPublishPipeline(log ports.Logger, fs ports.FS, uploader ports.Uploader, ledger ports.Ledger, records domain.PublishRepository, gateway string, maxBytes int64) *PublishPipeline {
	log = log.With(slog.String("entity", "PublishPipeline"))
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	return &PublishPipeline{
		log:      log,
		fs:       fs,
		uploader: uploader,
		ledger:   ledger,
		records:  records,
		gateway:  gateway,
		maxBytes: maxBytes,
	}
}

func (p *PublishPipeline) Publish(ctx context.Context, path string, opts models.PublishOptions) (*models.PublishResult, error) {
	log := p.log.With(slog.String("file", path))
	result := &models.PublishResult{
		File:      path,
		StartedAt: time.Now(),
	}
	fail := func(err error) (*models.PublishResult, error) {
		result.OK = false
		result.Error = err.Error()
		result.FinishedAt = time.Now()
		infra.PublishesTotal.WithLabelValues("error").Inc()
		return result, err
	}
	progress := func(step string, processed, total int64) {
		if opts.Progress == nil {
			return
		}
		opts.Progress(models.PublishProgress{Step: step, ProcessedBytes: processed, TotalBytes: total})
	}

	// Validating
	fi, err := p.fs.Stat(path)
	if err != nil {
		log.Error("input file missing", slog.Any("err", err))
		return fail(errors.ErrFileNotFound)
	}
	size := fi.Size()
	result.Size = size
	if size > p.maxBytes {
		log.Error("input file over size ceiling", slog.Int64("size", size), slog.Int64("limit", p.maxBytes))
		return fail(errors.SizeLimitError{Size: size, Limit: p.maxBytes})
	}
	progress(models.StepValidate, 0, size)

	// Authenticating
	if err := p.uploader.Connect(ctx); err != nil {
		log.Error("unable to connect uploader", slog.Any("err", err))
		return fail(err)
	}
	progress(models.StepAuthenticate, 0, size)

	// Uploading - single attempt, runs to completion or failure
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return fail(errors.UploadError{Step: models.StepUpload, Err: err})
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "image/webp"
	}
	receipt, err := p.uploader.Upload(ctx, &ports.UploadRequest{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		log.Error("upload failed", slog.Any("err", err))
		return fail(errors.UploadError{Step: models.StepUpload, Err: err})
	}
	progress(models.StepUpload, size, size)

	result.OK = true
	result.ID = receipt.ID
	result.URL = p.gateway + "/" + receipt.ID
	result.FinishedAt = time.Now()
	log.Info("uploaded", slog.String("id", result.ID), slog.String("url", result.URL))

	// Succeeded.InsertingMetadata - best-effort, can not revert OK
	p.insertMetadata(ctx, result)
	progress(models.StepMetadata, size, size)
	p.appendRecord(result)

	infra.PublishesTotal.WithLabelValues("ok").Inc()
	return result, nil
}

func (p *PublishPipeline) insertMetadata(ctx context.Context, result *models.PublishResult) {
	if p.ledger == nil {
		// Not configured - skipped, not failed
		result.Metadata = models.MetadataResult{OK: false, Error: nil}
		return
	}
	if err := p.ledger.Insert(ctx, result.URL); err != nil {
		p.log.Error("metadata insert failed", slog.Any("err", err))
		msg := err.Error()
		result.Metadata = models.MetadataResult{OK: false, Error: &msg}
		return
	}
	result.Metadata = models.MetadataResult{OK: true}
}

func (p *PublishPipeline) appendRecord(result *models.PublishResult) {
	if p.records == nil {
		return
	}
	record := &models.PublishRecord{
		ID:        uuid.NewString(),
		TxID:      result.ID,
		URL:       result.URL,
		File:      filepath.Base(result.File),
		Size:      types.Size(result.Size),
		CreatedAt: result.FinishedAt.UnixMilli(),
	}
	if err := p.records.Create(record); err != nil {
		p.log.Error("unable to append publish record", slog.Any("err", err))
	}
}
