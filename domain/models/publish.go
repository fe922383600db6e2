package models

import "time"

// Pipeline step names, surfaced through progress callbacks and
// upload errors.
const (
	StepValidate     = "validate"
	StepAuthenticate = "authenticate"
	StepUpload       = "upload"
	StepMetadata     = "metadata"
)

type PublishProgress struct {
	Step           string
	ProcessedBytes int64
	TotalBytes     int64
}

type PublishOptions struct {
	ContentType string
	// Progress is advisory only. A nil callback changes nothing.
	Progress func(PublishProgress)
}

type MetadataResult struct {
	OK    bool    `json:"ok"`
	Error *string `json:"error"`
}

// PublishResult is produced once per pipeline invocation and is
// immutable after creation. OK reflects the upload alone - a failed
// metadata insert is recorded but never flips OK.
type PublishResult struct {
	OK         bool           `json:"ok"`
	ID         string         `json:"id,omitempty"`
	URL        string         `json:"url,omitempty"`
	File       string         `json:"file,omitempty"`
	Size       int64          `json:"size"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Error      string         `json:"error,omitempty"`
	Metadata   MetadataResult `json:"metadata"`
}
