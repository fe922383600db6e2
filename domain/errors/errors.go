package errors

import (
	"errors"
	"fmt"

	"github.com/rythmn1111/final-cam/lib"
)

const ErrCaptureBusy = lib.Error("capture already in flight")
const ErrNoLatestArtifact = lib.Error("no latest artifact")
const ErrArtifactNotFound = lib.Error("artifact not found")
const ErrUnsecureFileName = lib.Error("unsecure file name")
const ErrFileNotFound = lib.Error("file not found")
const ErrWalletNotFound = lib.Error("wallet not found")
const ErrAuth = lib.Error("unable to establish signing identity")
const ErrMustBeAbsPath = lib.Error("must be absolute path")
const ErrLedgerNotConfigured = lib.Error("metadata ledger not configured")

// SizeLimitError rejects a publish before any network call is made.
type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e SizeLimitError) Error() string {
	return fmt.Sprintf("file is %v bytes (> %v KB) - please shrink it first",
		e.Size, e.Limit/1024)
}

// UploadError carries the last pipeline step reached before the
// transfer failed. It is never retried automatically.
type UploadError struct {
	Step string
	Err  error
}

func (e UploadError) Error() string {
	return fmt.Sprintf("upload failed at %v: %v", e.Step, e.Err)
}

func (e UploadError) Unwrap() error { return e.Err }

var Is = errors.Is
var As = errors.As
