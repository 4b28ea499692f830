package copier

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBlockSize(t *testing.T) {
	tests := []struct {
		size int
		want string
	}{
		{512, "512B"},
		{1024, "1KB"},
		{4 * 1024, "4KB"},
		{64 * 1024, "64KB"},
		{1024 * 1024, "1MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBlockSize(tt.size))
	}
}

func TestStrategies_Order(t *testing.T) {
	got := Strategies([]int{1024, 4096, 65536})
	require.Len(t, got, 5)

	assert.Equal(t, KindByte, got[0].Kind)
	assert.Equal(t, KindBlock, got[1].Kind)
	assert.Equal(t, 1024, got[1].BlockSize)
	assert.Equal(t, 4096, got[2].BlockSize)
	assert.Equal(t, 65536, got[3].BlockSize)
	assert.Equal(t, KindLine, got[4].Kind)

	assert.Equal(t, "Copy a file byte-by-byte", got[0].Description())
	assert.Equal(t, "Copy a file using a 1KB block", got[1].Description())
	assert.Equal(t, "Copy a file using a 64KB block", got[3].Description())
	assert.Equal(t, "Copy a file line-by-line", got[4].Description())
}

func TestStrategies_NoBlockSizes(t *testing.T) {
	got := Strategies(nil)
	require.Len(t, got, 2)
	assert.Equal(t, KindByte, got[0].Kind)
	assert.Equal(t, KindLine, got[1].Kind)
}

func TestStrategy_Pads(t *testing.T) {
	assert.False(t, Byte().Pads(1000))
	assert.False(t, Line().Pads(1000))
	assert.False(t, Block(1024).Pads(2048))
	assert.True(t, Block(1024).Pads(2049))
	assert.False(t, BlockExact(1024).Pads(2049))
	assert.False(t, Block(1024).Pads(0))
}

func TestStrategy_CopyBindsBlockSize(t *testing.T) {
	var dst bytes.Buffer
	n, err := Block(4).Copy(&dst, bytes.NewReader([]byte("abcdefghij")))
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	dst.Reset()
	n, err = BlockExact(4).Copy(&dst, bytes.NewReader([]byte("abcdefghij")))
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.Equal(t, "abcdefghij", dst.String())
}

func TestDetail(t *testing.T) {
	assert.Equal(t, "", Detail(nil))
	assert.Equal(t, "plain", Detail(errors.New("plain")))

	err := fail(errors.New("disk full"), "failed to write block")
	assert.Equal(t, "copy failed", err.Error())
	assert.Contains(t, Detail(err), "disk full")
}
