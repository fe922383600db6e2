package ports

import "context"

// Camera acquires one raw frame from the image sensor and writes it
// to dest. The call may block for as long as the hardware needs.
type Camera interface {
	Acquire(ctx context.Context, dest string) error
}

// Converter turns the raw frame src into the final artifact format at
// dest. The codec is a black box - file in, file out.
type Converter interface {
	Convert(ctx context.Context, src, dest string) error
}
