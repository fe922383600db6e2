package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	cam "github.com/rythmn1111/final-cam"
	"github.com/rythmn1111/final-cam/adapters/arweave"
	"github.com/rythmn1111/final-cam/adapters/ledger"
	"github.com/rythmn1111/final-cam/adapters/repository"
	"github.com/rythmn1111/final-cam/domain"
	"github.com/rythmn1111/final-cam/domain/models"
	"github.com/rythmn1111/final-cam/infra"
	"github.com/rythmn1111/final-cam/infra/config"
	"github.com/rythmn1111/final-cam/ports"
)

type PublishOptions struct {
	File        string
	Wallet      string
	Node        string
	Gateway     string
	ContentType string
	Timeout     time.Duration
	JSON        bool
	Verbose     bool

	out     io.Writer
	errOut  io.Writer
	log     ports.Logger
	cfg     *config.Config
	emitted bool
}

func NewPublishOptions(out, errOut io.Writer) *PublishOptions {
	return &PublishOptions{
		out:    out,
		errOut: errOut,
	}
}

func NewPublishCommand(o *PublishOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "campub [file]",
		DisableFlagsInUseLine: true,
		Short:                 "Publish a capture to the permanent storage network",
		Long: `Publish a local file to the permanent storage network and print the
resulting gateway link. Without a file argument the latest capture is
published. Files over the size ceiling are rejected before any network
call is made.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return o.fail(err)
			}
			if err := o.Validate(); err != nil {
				return o.fail(err)
			}
			if err := o.Run(); err != nil {
				return o.fail(err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.Wallet, "wallet", "w", "", "wallet key file (default: <photos>/wallet.json)")
	flags.StringVarP(&o.Node, "node", "n", "", "storage network node URL")
	flags.StringVarP(&o.Gateway, "gateway", "g", "", "gateway URL for result links")
	flags.StringVarP(&o.ContentType, "content-type", "c", "image/webp", "content type tag for the upload")
	flags.DurationVarP(&o.Timeout, "timeout", "t", 2*time.Minute, "total publish timeout")
	flags.BoolVar(&o.JSON, "json", false, "structured mode: exactly one JSON object on stdout")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func (o *PublishOptions) Complete(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	// All diagnostics go to stderr. Stdout carries the result only.
	o.log = newLogger(o.errOut, level)

	// Config file from cwd when present, package defaults otherwise.
	fs, err := infra.NewLayerFileSystem(os.Getwd)
	if err != nil {
		return err
	}
	o.cfg, err = config.LoadConfig(o.log, fs)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		o.File = args[0]
	} else {
		o.File = filepath.Join(o.cfg.PhotosDir, o.cfg.LatestName)
	}
	if o.Wallet == "" {
		o.Wallet = o.cfg.Wallet
	}
	if o.Node == "" {
		o.Node = o.cfg.Node
	}
	if o.Gateway == "" {
		o.Gateway = o.cfg.Gateway
	}
	return nil
}

func (o *PublishOptions) Validate() error {
	if o.File == "" {
		return fmt.Errorf("file is required")
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func (o *PublishOptions) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	var realFS ports.FS = afero.NewOsFs()
	uploader := arweave.NewUploader(o.log, realFS, o.Wallet, o.Node)

	var metadataLedger ports.Ledger
	if lcfg := ledger.FromEnv(); lcfg.Enabled() {
		l, closeLedger, err := ledger.New(o.log, lcfg)
		if err != nil {
			o.log.Warn("metadata ledger unavailable", slog.Any("err", err))
		} else {
			defer closeLedger()
			metadataLedger = l
		}
	}

	// Best effort local history, shared with the daemon
	var records domain.PublishRepository
	source := filepath.Join(o.cfg.PhotosDir, config.RecordsFileName)
	if db, closeDb, err := infra.NewDatabase(o.log, infra.DriverSqlite, source); err == nil {
		defer closeDb()
		if err := db.AutoMigrate(new(models.PublishRecord)); err == nil {
			records, _ = repository.NewPublishRepository(db)
		}
	} else {
		o.log.Warn("publish history unavailable", slog.Any("err", err))
	}

	pipeline := cam.NewPublishPipeline(o.log, realFS, uploader, metadataLedger, records, o.Gateway, o.cfg.MaxUploadBytes)

	opts := models.PublishOptions{ContentType: o.ContentType}
	if !o.JSON {
		opts.Progress = func(p models.PublishProgress) {
			fmt.Fprintf(o.errOut, "%v... %v/%v bytes\n", p.Step, p.ProcessedBytes, p.TotalBytes)
		}
	}

	result, err := pipeline.Publish(ctx, o.File, opts)

	if o.JSON {
		enc := json.NewEncoder(o.out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			return encErr
		}
		o.emitted = true
		return err
	}

	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "published %v (%v bytes)\n", result.File, result.Size)
	fmt.Fprintf(o.out, "%v\n", result.URL)
	if result.Metadata.OK {
		fmt.Fprintln(o.out, "metadata: recorded")
	} else if result.Metadata.Error != nil {
		fmt.Fprintf(o.out, "metadata: failed: %v\n", *result.Metadata.Error)
	}
	return nil
}

// fail reports the error on stderr and propagates it so main exits 1.
// Structured mode still gets its single JSON object when the failure
// happened before the pipeline could produce one.
func (o *PublishOptions) fail(err error) error {
	if o.JSON && !o.emitted {
		_ = json.NewEncoder(o.out).Encode(map[string]any{"ok": false, "error": err.Error()})
		o.emitted = true
	}
	fmt.Fprintf(o.errOut, "error: %v\n", err)
	return err
}
