package random

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteSlice(t *testing.T) {
	assert := require.New(t)
	for x := 0; x < 100; x++ {
		assert.LessOrEqual(len(ByteSlice(64)), 64)
	}
}

func TestByteSliceN(t *testing.T) {
	assert := require.New(t)
	for _, n := range []int{0, 1, 512, 100*1024 + 1} {
		assert.Len(ByteSliceN(n), n)
	}
}
