// Package arweave adapts the goar SDK to the ports.Uploader boundary.
// The wallet key file is read lazily on Connect and its contents are
// never logged.
package arweave

import (
	"context"
	"log/slog"
	"sync"

	"github.com/everFinance/goar"
	"github.com/everFinance/goar/types"
	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/lib"
	"github.com/rythmn1111/final-cam/ports"
	"github.com/spf13/afero"
)

type Uploader struct {
	log        ports.Logger
	fs         ports.FS
	walletPath string
	node       string

	mu     sync.Mutex
	wallet *goar.Wallet
}

func NewUploader(log ports.Logger, fs ports.FS, walletPath, node string) *Uploader {
	log = log.With(slog.String("entity", "ArweaveUploader"))
	return &Uploader{
		log:        log,
		fs:         fs,
		walletPath: walletPath,
		node:       node,
	}
}

// Connect loads the wallet key file and establishes the signing
// identity. A missing key file is fatal for the pipeline.
func (u *Uploader) Connect(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.wallet != nil {
		return nil
	}

	if lib.NoSuchFile(u.fs, u.walletPath) {
		u.log.Error("wallet file missing", slog.String("path", u.walletPath))
		return errors.ErrWalletNotFound
	}
	blob, err := afero.ReadFile(u.fs, u.walletPath)
	if err != nil {
		return errors.ErrWalletNotFound
	}

	wallet, err := goar.NewWallet(blob, u.node)
	if err != nil {
		u.log.Error("unable to build signing identity", slog.Any("err", err))
		return errors.ErrAuth
	}
	u.wallet = wallet
	u.log.Info("connected", slog.String("node", u.node), slog.String("address", wallet.Signer.Address))
	return nil
}

// Upload posts one tagged data transaction. Single attempt - the
// pipeline owns the no-retry policy.
func (u *Uploader) Upload(ctx context.Context, req *ports.UploadRequest) (*ports.UploadReceipt, error) {
	u.mu.Lock()
	wallet := u.wallet
	u.mu.Unlock()
	if wallet == nil {
		return nil, errors.ErrAuth
	}

	tags := []types.Tag{
		{Name: "Content-Type", Value: req.ContentType},
		{Name: "App-Name", Value: "final-cam"},
	}
	tx, err := wallet.SendData(req.Data, tags)
	if err != nil {
		return nil, err
	}
	u.log.Info("transaction sent", slog.String("id", tx.ID), slog.String("name", req.Name))
	return &ports.UploadReceipt{ID: tx.ID}, nil
}
