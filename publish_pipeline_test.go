package cam

import (
	"context"
	"log/slog"
	"testing"

	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/lib"
	"github.com/rythmn1111/final-cam/lib/random"
	"github.com/rythmn1111/final-cam/ports"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	connectCalls int
	uploadCalls  int
	connectErr   error
	uploadErr    error
	lastRequest  *ports.UploadRequest
}

func (u *fakeUploader) Connect(ctx context.Context) error {
	u.connectCalls++
	return u.connectErr
}

func (u *fakeUploader) Upload(ctx context.Context, req *ports.UploadRequest) (*ports.UploadReceipt, error) {
	u.uploadCalls++
	u.lastRequest = req
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	return &ports.UploadReceipt{ID: "tx-abc123"}, nil
}

type fakeLedger struct {
	links []string
	err   error
}

func (l *fakeLedger) Insert(ctx context.Context, link string) error {
	if l.err != nil {
		return l.err
	}
	l.links = append(l.links, link)
	return nil
}

type memRecords struct {
	records models.PublishRecords
}

func (r *memRecords) Create(record *models.PublishRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *memRecords) FindAll() (models.PublishRecords, error) {
	return r.records, nil
}

const testGateway = "https://gateway.example"

func TestPublishPipelineHappyPath(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	data := random.ByteSliceN(32 * 1024)
	assert.NoError(afero.WriteFile(fs, "/photos/latest.webp", data, 0o644))

	uploader := &fakeUploader{}
	ledger := &fakeLedger{}
	records := &memRecords{}
	pipeline := NewPublishPipeline(slog.Default(), fs, uploader, ledger, records, testGateway, MaxUploadBytes)

	steps := []string{}
	result, err := pipeline.Publish(context.Background(), "/photos/latest.webp", models.PublishOptions{
		Progress: func(p models.PublishProgress) { steps = append(steps, p.Step) },
	})
	assert.NoError(err)
	assert.True(result.OK)
	assert.Equal("tx-abc123", result.ID)
	assert.Equal(testGateway+"/tx-abc123", result.URL)
	assert.EqualValues(len(data), result.Size)
	assert.Equal([]string{models.StepValidate, models.StepAuthenticate, models.StepUpload, models.StepMetadata}, steps)

	// single attempt
	assert.Equal(1, uploader.uploadCalls)
	assert.Equal(data, uploader.lastRequest.Data)
	assert.Equal("image/webp", uploader.lastRequest.ContentType)

	// metadata recorded with the gateway link
	assert.True(result.Metadata.OK)
	assert.Nil(result.Metadata.Error)
	assert.Equal([]string{result.URL}, ledger.links)

	// local history appended
	assert.Len(records.records, 1)
	assert.Equal("tx-abc123", records.records[0].TxID)
}

func TestPublishPipelineOversize(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	assert.NoError(afero.WriteFile(fs, "/photos/big.webp", random.ByteSliceN(int(MaxUploadBytes)+1), 0o644))

	uploader := &fakeUploader{}
	pipeline := NewPublishPipeline(slog.Default(), fs, uploader, nil, nil, testGateway, MaxUploadBytes)

	result, err := pipeline.Publish(context.Background(), "/photos/big.webp", models.PublishOptions{})
	assert.Error(err)
	var sizeErr errors.SizeLimitError
	assert.ErrorAs(err, &sizeErr)
	assert.Contains(err.Error(), "100 KB")
	assert.False(result.OK)

	// rejected before any network interaction
	assert.Equal(0, uploader.connectCalls)
	assert.Equal(0, uploader.uploadCalls)
}

func TestPublishPipelineMissingFile(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	uploader := &fakeUploader{}
	pipeline := NewPublishPipeline(slog.Default(), fs, uploader, nil, nil, testGateway, MaxUploadBytes)

	result, err := pipeline.Publish(context.Background(), "/photos/nope.webp", models.PublishOptions{})
	assert.ErrorIs(err, errors.ErrFileNotFound)
	assert.False(result.OK)
	assert.Equal(0, uploader.uploadCalls)
}

func TestPublishPipelineNoLedgerConfigured(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	assert.NoError(afero.WriteFile(fs, "/photos/latest.webp", random.ByteSlice(1024), 0o644))

	pipeline := NewPublishPipeline(slog.Default(), fs, &fakeUploader{}, nil, nil, testGateway, MaxUploadBytes)

	result, err := pipeline.Publish(context.Background(), "/photos/latest.webp", models.PublishOptions{})
	assert.NoError(err)
	assert.True(result.OK)
	// skipped, not failed - no error message at all
	assert.False(result.Metadata.OK)
	assert.Nil(result.Metadata.Error)
}

func TestPublishPipelineLedgerFailureKeepsOK(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	assert.NoError(afero.WriteFile(fs, "/photos/latest.webp", random.ByteSlice(1024), 0o644))

	ledger := &fakeLedger{err: lib.Error("relation does not exist")}
	pipeline := NewPublishPipeline(slog.Default(), fs, &fakeUploader{}, ledger, nil, testGateway, MaxUploadBytes)

	result, err := pipeline.Publish(context.Background(), "/photos/latest.webp", models.PublishOptions{})
	assert.NoError(err)
	assert.True(result.OK)
	assert.False(result.Metadata.OK)
	assert.NotNil(result.Metadata.Error)
	assert.Contains(*result.Metadata.Error, "relation does not exist")
}

func TestPublishPipelineUploadFailure(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	assert.NoError(afero.WriteFile(fs, "/photos/latest.webp", random.ByteSlice(1024), 0o644))

	uploader := &fakeUploader{uploadErr: lib.Error("node unreachable")}
	records := &memRecords{}
	pipeline := NewPublishPipeline(slog.Default(), fs, uploader, nil, records, testGateway, MaxUploadBytes)

	result, err := pipeline.Publish(context.Background(), "/photos/latest.webp", models.PublishOptions{})
	assert.Error(err)
	var upErr errors.UploadError
	assert.ErrorAs(err, &upErr)
	assert.Equal(models.StepUpload, upErr.Step)
	assert.False(result.OK)

	// one attempt, no retry, no history entry
	assert.Equal(1, uploader.uploadCalls)
	assert.Len(records.records, 0)
}

func TestPublishPipelineConnectFailure(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	assert.NoError(afero.WriteFile(fs, "/photos/latest.webp", random.ByteSlice(1024), 0o644))

	uploader := &fakeUploader{connectErr: errors.ErrWalletNotFound}
	pipeline := NewPublishPipeline(slog.Default(), fs, uploader, nil, nil, testGateway, MaxUploadBytes)

	result, err := pipeline.Publish(context.Background(), "/photos/latest.webp", models.PublishOptions{})
	assert.ErrorIs(err, errors.ErrWalletNotFound)
	assert.False(result.OK)
	assert.Equal(0, uploader.uploadCalls)
}
