package ports

import "context"

type UploadRequest struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadReceipt is the permanent handle returned by the storage network.
type UploadReceipt struct {
	ID string
}

// Uploader pushes one blob to the permanent storage network.
// Connect loads the credential and establishes the signing identity;
// it must be called before Upload and may be called per publish.
type Uploader interface {
	Connect(ctx context.Context) error
	Upload(ctx context.Context, req *UploadRequest) (*UploadReceipt, error)
}
